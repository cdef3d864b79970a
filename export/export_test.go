package export

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/tsawler/folio/document"
	"github.com/tsawler/folio/model"
)

// buildDoc assembles a document from per-page text lines, one element
// per line, inside the default safe area of a 100x100 page.
func buildDoc(t *testing.T, pages ...[]string) *document.Document {
	t.Helper()
	ctx := model.NewContext()
	for i, lines := range pages {
		page := ctx.AddPage(model.NewPage(i+1, 100, 100))
		for row, line := range lines {
			top := 90 - float64(row)*10
			e := model.NewTextElement(i+1, model.NewRect(20, top-8, 80, top), line)
			page.Append(ctx.Allocate(), e)
		}
	}
	return document.NewFresh(ctx)
}

// ============================================================================
// Markdown
// ============================================================================

func TestMarkdownStructure(t *testing.T) {
	d := buildDoc(t, []string{
		"ABSTRACT",
		"This paper studies nothing in particular.",
		"1. Introduction",
		"We begin at the beginning.",
	})

	md := Markdown(d, "Paper")

	// Parse the output back with goldmark and collect headings and
	// paragraphs from the AST.
	src := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var headings []string
	var paragraphs []string
	err := gast.Walk(root, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *gast.Heading:
			headings = append(headings, string(v.Lines().Value(src)))
		case *gast.Paragraph:
			paragraphs = append(paragraphs, string(v.Lines().Value(src)))
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	wantHeadings := []string{"Paper", "ABSTRACT", "1. Introduction"}
	if len(headings) != len(wantHeadings) {
		t.Fatalf("headings = %q, want %q", headings, wantHeadings)
	}
	for i, want := range wantHeadings {
		if strings.TrimSpace(headings[i]) != want {
			t.Errorf("heading %d = %q, want %q", i, headings[i], want)
		}
	}

	if len(paragraphs) != 2 {
		t.Fatalf("paragraphs = %q, want 2 entries", paragraphs)
	}
	if !strings.Contains(paragraphs[0], "nothing in particular") {
		t.Errorf("first paragraph = %q", paragraphs[0])
	}
}

func TestMarkdownJoinsChainedRuns(t *testing.T) {
	ctx := model.NewContext()
	page := ctx.AddPage(model.NewPage(1, 100, 100))
	head := model.NewTextElement(1, model.NewRect(20, 82, 80, 90), "broken across")
	head.Marker = model.MarkerConcat
	tail := model.NewTextElement(1, model.NewRect(20, 72, 80, 80), "two fragments")
	page.Append(ctx.Allocate(), head)
	page.Append(ctx.Allocate(), tail)
	d := document.NewFresh(ctx)

	md := Markdown(d, "")
	if !strings.Contains(md, "broken across two fragments") {
		t.Errorf("chained run not joined:\n%s", md)
	}
	if strings.Count(md, "two fragments") != 1 {
		t.Errorf("continuation text appears more than once:\n%s", md)
	}
}

func TestIsLikelyHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"ABSTRACT", true},
		{"1. Introduction", true},
		{"2.3 Experimental Setup", true},
		{"Conclusion", true},
		{"References", true},
		{"A perfectly ordinary sentence about the weather today.", false},
		{"It was 4.5 degrees outside.", false},
		{"ok", false},
		{"", false},
		{strings.Repeat("LOUD ", 25), false},
	}
	for _, tt := range tests {
		if got := isLikelyHeading(tt.line); got != tt.want {
			t.Errorf("isLikelyHeading(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

// ============================================================================
// HTML
// ============================================================================

func TestHTMLStructure(t *testing.T) {
	d := buildDoc(t,
		[]string{"first page line"},
		[]string{"second page line", "and another"},
	)

	out := HTML(d, "Report & Co")

	root, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var sections int
	var paragraphs []string
	var h1 string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "section":
				sections++
			case "p":
				if n.FirstChild != nil {
					paragraphs = append(paragraphs, n.FirstChild.Data)
				}
			case "h1":
				if n.FirstChild != nil {
					h1 = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if h1 != "Report & Co" {
		t.Errorf("h1 = %q", h1)
	}
	if sections != 2 {
		t.Errorf("sections = %d, want 2", sections)
	}
	want := []string{"first page line", "second page line", "and another"}
	if len(paragraphs) != len(want) {
		t.Fatalf("paragraphs = %q, want %q", paragraphs, want)
	}
	for i := range want {
		if paragraphs[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, paragraphs[i], want[i])
		}
	}
}

func TestHTMLEscapesContent(t *testing.T) {
	d := buildDoc(t, []string{"<script>alert(1)</script>"})

	out := HTML(d, "t")
	if strings.Contains(out, "<script>") {
		t.Fatalf("unescaped markup in output:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("escaped text missing:\n%s", out)
	}
}

func TestHTMLSkipsEmptyPages(t *testing.T) {
	ctx := model.NewContext()
	ctx.AddPage(model.NewPage(1, 100, 100))
	d := document.NewFresh(ctx)

	out := HTML(d, "t")
	if strings.Contains(out, "<section>") {
		t.Errorf("empty page produced a section:\n%s", out)
	}
}
