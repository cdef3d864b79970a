// Package store holds the open documents for the HTTP server and keeps
// each one mirrored to a snapshot on disk. Documents mutate under a
// single writer: every mutation runs through [Store.Mutate] so edits
// and their snapshot writes never interleave.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tsawler/folio/document"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/snapshot"
)

// ErrNotFound marks a document ID with no open document.
var ErrNotFound = errors.New("store: document not found")

// Info is the listing entry for one open document.
type Info struct {
	ID    string `json:"id"`
	Pages int    `json:"pages"`
}

// Store maps document IDs to open documents backed by snapshots under
// a single directory.
type Store struct {
	dir string
	log *slog.Logger

	mu   sync.Mutex
	docs map[string]*document.Document
}

// Open creates the snapshot directory if needed and loads every
// snapshot found there. Corrupt snapshots are logged and skipped so one
// bad file never blocks startup.
func Open(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	s := &Store{
		dir:  dir,
		log:  log,
		docs: make(map[string]*document.Document),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan snapshot dir: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		ctx, err := snapshot.Load(filepath.Join(dir, name))
		if err != nil {
			log.Warn("skipping snapshot", "id", id, "error", err)
			continue
		}
		s.docs[id] = document.New(ctx)
	}

	return s, nil
}

// Create opens a new document over a freshly ingested context and
// writes its first snapshot. An existing document with the same ID is
// replaced.
func (s *Store) Create(id string, ctx *model.Context) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := document.NewFresh(ctx)
	if err := snapshot.Save(d.Context(), s.path(id)); err != nil {
		return nil, err
	}
	s.docs[id] = d
	return d, nil
}

// View runs fn against the document under the store lock. Reads use it
// too: derived text views walk state a concurrent mutation would tear.
func (s *Store) View(id string, fn func(d *document.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	return fn(d)
}

// Mutate runs fn against the document under the store lock and, when
// fn reports a change, writes the updated snapshot before returning.
func (s *Store) Mutate(id string, fn func(d *document.Document) (changed bool, err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	changed, err := fn(d)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return snapshot.Save(d.Context(), s.path(id))
}

// Delete closes the document and removes its snapshot. A missing
// snapshot file is not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

// List returns the open documents sorted by ID.
func (s *Store) List() []Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]Info, 0, len(s.docs))
	for id, d := range s.docs {
		infos = append(infos, Info{ID: id, Pages: d.PageCount()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
