package model

import "strings"

// ElementType represents the kind of content an element carries.
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeText
	ElementTypeImage
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeText:
		return "Text"
	case ElementTypeImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// Marker is the three-state continuation marker: it declares whether an
// element continues into the next fragment and how the two texts join.
type Marker int

const (
	// MarkerNone: the element does not continue into the next fragment.
	MarkerNone Marker = iota
	// MarkerConcat: continues, joined with a single space (same sentence).
	MarkerConcat
	// MarkerJoin: continues, joined with a line break (same block, new line).
	MarkerJoin
)

func (m Marker) String() string {
	switch m {
	case MarkerConcat:
		return "concat"
	case MarkerJoin:
		return "join"
	default:
		return "none"
	}
}

// Next returns the marker that follows m in the toggle cycle
// none -> concat -> join -> none.
func (m Marker) Next() Marker {
	switch m {
	case MarkerNone:
		return MarkerConcat
	case MarkerConcat:
		return MarkerJoin
	default:
		return MarkerNone
	}
}

// MergeMode selects how a merge factory joins the source texts. It
// mirrors the continuation marker join semantics.
type MergeMode int

const (
	// MergeConcat joins source texts with a single space.
	MergeConcat MergeMode = iota
	// MergeJoin joins source texts with a line break.
	MergeJoin
)

func (m MergeMode) separator() string {
	if m == MergeConcat {
		return " "
	}
	return "\n"
}

// Element is one spatially-bounded fragment of a page. Elements are
// identified by an integer key assigned by the owning Context; the key
// lives in the page slot, not here.
type Element struct {
	Type ElementType `json:"type"`
	// Page is the 1-indexed number of the page the element belongs to.
	Page int    `json:"page"`
	BBox Rect   `json:"bbox"`
	Text string `json:"text"`

	Visible bool `json:"visible"`
	Body    bool `json:"body"`
	// Safe is maintained exclusively by the safe-area evaluator; it is a
	// pure function of the current margin and BBox.
	Safe bool `json:"safe"`

	Marker Marker `json:"marker"`

	// Translated is an optional translation overlay. Empty means none.
	Translated string `json:"translated,omitempty"`

	// Children holds the precomputed split products. An element with two
	// or more children can be split in place.
	Children []*Element `json:"children,omitempty"`
}

// NewTextElement creates a visible body text element. Multi-line text
// produces per-line children so the element can later be split: each
// line gets a full-width band of the bounding box, stacked top to
// bottom.
func NewTextElement(pageNumber int, bbox Rect, text string) *Element {
	e := &Element{
		Type:    ElementTypeText,
		Page:    pageNumber,
		BBox:    bbox,
		Text:    text,
		Visible: true,
		Body:    true,
	}

	lines := splitLines(text)
	if len(lines) > 1 {
		b := bbox.Normalized()
		lineHeight := b.Height() / float64(len(lines))
		for i, line := range lines {
			top := b.Y2 - float64(i)*lineHeight
			e.Children = append(e.Children, &Element{
				Type:    ElementTypeText,
				Page:    pageNumber,
				BBox:    NewRect(b.X1, top-lineHeight, b.X2, top),
				Text:    line,
				Visible: true,
				Body:    true,
			})
		}
	}

	return e
}

// NewImageElement creates a visible non-body image element.
func NewImageElement(pageNumber int, bbox Rect) *Element {
	return &Element{
		Type:    ElementTypeImage,
		Page:    pageNumber,
		BBox:    bbox,
		Visible: true,
	}
}

// CanBeSplit reports whether the element can be replaced by its
// precomputed children.
func (e *Element) CanBeSplit() bool {
	return e.Type == ElementTypeText && len(e.Children) >= 2
}

// CanBeMerged reports whether the element may participate in a merge.
func (e *Element) CanBeMerged() bool {
	return e.Type == ElementTypeText
}

// CanBeTranslated reports whether a translation overlay makes sense for
// the element.
func (e *Element) CanBeTranslated() bool {
	return e.Type == ElementTypeText
}

// DisplayText returns the translation overlay when present, otherwise
// the element's own text.
func (e *Element) DisplayText() string {
	if e.Translated != "" {
		return e.Translated
	}
	return e.Text
}

// FromMerge builds a single replacement element from two or more source
// elements. The merged element covers the union of the source boxes,
// joins the texts per mode in the order given, is body when any source
// is body, and continues the way the last source did. Any translation
// overlay on the sources is dropped as stale.
func FromMerge(pageNumber int, elems []*Element, mode MergeMode) *Element {
	if len(elems) == 0 {
		return nil
	}

	bbox := elems[0].BBox
	body := false
	texts := make([]string, 0, len(elems))
	for _, src := range elems {
		bbox = bbox.Union(src.BBox)
		body = body || src.Body
		texts = append(texts, src.Text)
	}

	return &Element{
		Type:    ElementTypeText,
		Page:    pageNumber,
		BBox:    bbox,
		Text:    strings.Join(texts, mode.separator()),
		Visible: true,
		Body:    body,
		Marker:  elems[len(elems)-1].Marker,
	}
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
