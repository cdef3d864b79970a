package store

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/folio/document"
	"github.com/tsawler/folio/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testContext(text string) *model.Context {
	ctx := model.NewContext()
	page := ctx.AddPage(model.NewPage(1, 100, 100))
	page.Append(ctx.Allocate(), model.NewTextElement(1, model.NewRect(20, 80, 80, 90), text))
	return ctx
}

func documentText(t *testing.T, s *Store, id string) string {
	t.Helper()
	var text string
	err := s.View(id, func(d *document.Document) error {
		text = d.DocumentText()
		return nil
	})
	if err != nil {
		t.Fatalf("view %q: %v", id, err)
	}
	return text
}

func TestCreateAndView(t *testing.T) {
	s, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Create("a", testContext("hello")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := documentText(t, s, "a"); got != "hello\n" {
		t.Errorf("text = %q, want %q", got, "hello\n")
	}
}

func TestViewMissing(t *testing.T) {
	s, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = s.View("nope", func(d *document.Document) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMutatePersists(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Create("a", testContext("hello")); err != nil {
		t.Fatalf("create: %v", err)
	}

	err = s.Mutate("a", func(d *document.Document) (bool, error) {
		return d.ToggleVisible(0), nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	// A fresh store over the same directory sees the mutation.
	s2, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := documentText(t, s2, "a"); got != "" {
		t.Errorf("text after reopen = %q, want empty", got)
	}
}

func TestMutateUnchangedSkipsSnapshot(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Create("a", testContext("hello")); err != nil {
		t.Fatalf("create: %v", err)
	}

	path := filepath.Join(dir, "a.json")
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	// Toggling a missing key reports no change.
	err = s.Mutate("a", func(d *document.Document) (bool, error) {
		return d.ToggleVisible(99), nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Errorf("snapshot rewritten for a no-op mutation")
	}
}

func TestOpenSkipsCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Create("good", testContext("hello")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s2, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	infos := s2.List()
	if len(infos) != 1 || infos[0].ID != "good" {
		t.Errorf("list = %+v, want only the good document", infos)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Create("a", testContext("hello")); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("snapshot still on disk after delete")
	}
	if err := s.Delete("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestListSorted(t *testing.T) {
	s, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, id := range []string{"c", "a", "b"} {
		if _, err := s.Create(id, testContext(id)); err != nil {
			t.Fatalf("create %q: %v", id, err)
		}
	}
	infos := s.List()
	want := []string{"a", "b", "c"}
	if len(infos) != len(want) {
		t.Fatalf("list = %+v", infos)
	}
	for i, id := range want {
		if infos[i].ID != id {
			t.Errorf("list[%d].ID = %q, want %q", i, infos[i].ID, id)
		}
	}
}
