package model

import (
	"strings"
	"testing"
)

// ============================================================================
// Rect Tests
// ============================================================================

func TestRectNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"already normalized", NewRect(1, 2, 3, 4), NewRect(1, 2, 3, 4)},
		{"swapped x", NewRect(3, 2, 1, 4), NewRect(1, 2, 3, 4)},
		{"swapped y", NewRect(1, 4, 3, 2), NewRect(1, 2, 3, 4)},
		{"swapped both", NewRect(3, 4, 1, 2), NewRect(1, 2, 3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalized(); got != tt.want {
				t.Errorf("Normalized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"identical", NewRect(0, 0, 10, 10), NewRect(0, 0, 10, 10), true},
		{"partial overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 15, 15), true},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 2, 8, 8), true},
		{"touching right edge", NewRect(0, 0, 10, 10), NewRect(10, 0, 20, 10), true},
		{"touching top edge", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 20), true},
		{"touching corner", NewRect(0, 0, 10, 10), NewRect(10, 10, 20, 20), true},
		{"entirely right", NewRect(0, 0, 10, 10), NewRect(11, 0, 20, 10), false},
		{"entirely above", NewRect(0, 0, 10, 10), NewRect(0, 11, 10, 20), false},
		{"denormalized corners", NewRect(10, 10, 0, 0), NewRect(8, 8, 15, 15), true},
		{"denormalized no overlap", NewRect(10, 10, 0, 0), NewRect(20, 20, 11, 11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 5, 5)
	b := NewRect(3, 3, 10, 12)
	want := NewRect(0, 0, 10, 12)
	if got := a.Union(b); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

// ============================================================================
// Marker Tests
// ============================================================================

func TestMarkerNext(t *testing.T) {
	tests := []struct {
		name string
		in   Marker
		want Marker
	}{
		{"none to concat", MarkerNone, MarkerConcat},
		{"concat to join", MarkerConcat, MarkerJoin},
		{"join to none", MarkerJoin, MarkerNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Next(); got != tt.want {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarkerCycleReturnsToStart(t *testing.T) {
	m := MarkerNone
	for i := 0; i < 3; i++ {
		m = m.Next()
	}
	if m != MarkerNone {
		t.Errorf("three toggles from none = %v, want none", m)
	}
}

// ============================================================================
// Element Tests
// ============================================================================

func TestNewTextElementChildren(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantChildren int
		canSplit     bool
	}{
		{"single line", "one line", 0, false},
		{"two lines", "first\nsecond", 2, true},
		{"blank lines skipped", "first\n\n \nsecond\nthird", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewTextElement(1, NewRect(0, 0, 100, 30), tt.text)
			if len(e.Children) != tt.wantChildren {
				t.Fatalf("children = %d, want %d", len(e.Children), tt.wantChildren)
			}
			if e.CanBeSplit() != tt.canSplit {
				t.Errorf("CanBeSplit() = %v, want %v", e.CanBeSplit(), tt.canSplit)
			}
		})
	}
}

func TestNewTextElementChildGeometry(t *testing.T) {
	e := NewTextElement(1, NewRect(0, 0, 100, 30), "a\nb\nc")

	// Children stack top to bottom inside the parent box.
	first := e.Children[0].BBox.Normalized()
	last := e.Children[2].BBox.Normalized()
	if first.Y2 != 30 || first.Y1 != 20 {
		t.Errorf("first child band = [%v, %v], want [20, 30]", first.Y1, first.Y2)
	}
	if last.Y2 != 10 || last.Y1 != 0 {
		t.Errorf("last child band = [%v, %v], want [0, 10]", last.Y1, last.Y2)
	}
	if e.Children[0].Text != "a" || e.Children[2].Text != "c" {
		t.Errorf("child texts = %q, %q", e.Children[0].Text, e.Children[2].Text)
	}
}

func TestElementDisplayText(t *testing.T) {
	e := NewTextElement(1, Rect{}, "original")
	if got := e.DisplayText(); got != "original" {
		t.Errorf("DisplayText() = %q, want %q", got, "original")
	}
	e.Translated = "translated"
	if got := e.DisplayText(); got != "translated" {
		t.Errorf("DisplayText() = %q, want %q", got, "translated")
	}
}

func TestImageElementCapabilities(t *testing.T) {
	e := NewImageElement(1, NewRect(0, 0, 10, 10))
	if e.Body {
		t.Error("image element should not be body")
	}
	if e.CanBeSplit() || e.CanBeMerged() || e.CanBeTranslated() {
		t.Error("image element should have no text capabilities")
	}
}

func TestFromMerge(t *testing.T) {
	a := NewTextElement(2, NewRect(0, 0, 50, 10), "alpha")
	a.Marker = MarkerConcat
	b := NewTextElement(2, NewRect(60, 20, 100, 30), "beta")
	b.Marker = MarkerJoin
	b.Body = false

	tests := []struct {
		name     string
		mode     MergeMode
		wantText string
	}{
		{"concat", MergeConcat, "alpha beta"},
		{"join", MergeJoin, "alpha\nbeta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := FromMerge(2, []*Element{a, b}, tt.mode)
			if merged.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", merged.Text, tt.wantText)
			}
			if want := NewRect(0, 0, 100, 30); merged.BBox != want {
				t.Errorf("BBox = %+v, want %+v", merged.BBox, want)
			}
			if !merged.Body {
				t.Error("merged element should be body when any source is body")
			}
			if merged.Marker != MarkerJoin {
				t.Errorf("Marker = %v, want marker of last source", merged.Marker)
			}
			if merged.Page != 2 {
				t.Errorf("Page = %d, want 2", merged.Page)
			}
		})
	}
}

func TestFromMergeEmpty(t *testing.T) {
	if got := FromMerge(1, nil, MergeConcat); got != nil {
		t.Errorf("FromMerge(nil) = %+v, want nil", got)
	}
}

// ============================================================================
// Page and Context Tests
// ============================================================================

func TestPageIndexOf(t *testing.T) {
	p := NewPage(1, 612, 792)
	p.Append(3, NewTextElement(1, Rect{}, "x"))
	p.Append(7, NewTextElement(1, Rect{}, "y"))

	if got := p.IndexOf(7); got != 1 {
		t.Errorf("IndexOf(7) = %d, want 1", got)
	}
	if got := p.IndexOf(99); got != -1 {
		t.Errorf("IndexOf(99) = %d, want -1", got)
	}
}

func TestContextAllocate(t *testing.T) {
	ctx := NewContext()
	seen := make(map[int]bool)
	prev := -1
	for i := 0; i < 10; i++ {
		key := ctx.Allocate()
		if seen[key] {
			t.Fatalf("key %d allocated twice", key)
		}
		if key <= prev {
			t.Fatalf("key %d not strictly increasing after %d", key, prev)
		}
		seen[key] = true
		prev = key
	}
}

func TestContextDefaults(t *testing.T) {
	ctx := NewContext()
	if ctx.Margin != DefaultMargin {
		t.Errorf("Margin = %+v, want %+v", ctx.Margin, DefaultMargin)
	}
	if ctx.Page(0) != nil {
		t.Error("Page(0) on empty context should be nil")
	}
	p := ctx.AddPage(NewPage(1, 612, 792))
	if ctx.PageCount() != 1 || ctx.Page(0) != p {
		t.Error("AddPage/Page mismatch")
	}
}

func TestSplitLinesPreservesContent(t *testing.T) {
	e := NewTextElement(1, NewRect(0, 0, 10, 10), "a\nb")
	joined := strings.Join([]string{e.Children[0].Text, e.Children[1].Text}, "\n")
	if joined != "a\nb" {
		t.Errorf("children lose text: %q", joined)
	}
}
