package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/tsawler/folio/model"
)

// Standard US Letter dimensions in points, used when a page carries no
// usable MediaBox.
const (
	letterWidth  = 612.0
	letterHeight = 792.0
)

// PDF ingests positioned text from a born-digital PDF file. Text
// fragments are grouped into rows by baseline, one element per row,
// with the row's real bounding box.
type PDF struct {
	Path string

	// RowTolerance is the y-coordinate tolerance for grouping fragments
	// into one row, in points. Zero means the default of 3pt.
	RowTolerance float64
}

// Ingest reads the file and builds a context with one page per PDF
// page.
func (p *PDF) Ingest(ctx context.Context) (*model.Context, error) {
	f, reader, err := pdflib.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	tol := p.RowTolerance
	if tol <= 0 {
		tol = 3.0
	}

	dctx := model.NewContext()
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src := reader.Page(pageNum)
		if src.V.IsNull() {
			continue
		}

		width, height := pageExtent(src)
		page := dctx.AddPage(model.NewPage(pageNum, width, height))

		for _, row := range groupRows(src.Content().Text, tol) {
			elem := model.NewTextElement(pageNum, row.bbox, row.text)
			page.Append(dctx.Allocate(), elem)
		}
	}

	return dctx, nil
}

// pageExtent reads the page MediaBox, falling back to US Letter.
func pageExtent(page pdflib.Page) (width, height float64) {
	box := page.V.Key("MediaBox")
	if box.IsNull() || box.Len() < 4 {
		return letterWidth, letterHeight
	}
	x1, y1 := box.Index(0).Float64(), box.Index(1).Float64()
	x2, y2 := box.Index(2).Float64(), box.Index(3).Float64()
	width, height = x2-x1, y2-y1
	if width <= 0 || height <= 0 {
		return letterWidth, letterHeight
	}
	return width, height
}

// textRow is one baseline-grouped row of fragments.
type textRow struct {
	text string
	bbox model.Rect
}

// fragment is the position slice of a PDF text chunk needed for row
// grouping; it mirrors the fields of pdf.Text so the grouping logic can
// be tested without a PDF file.
type fragment struct {
	s        string
	x, y, w  float64
	fontSize float64
}

// groupRows buckets fragments whose baselines sit within tol of each
// other, sorts each row left to right, and joins the pieces with word
// spacing inferred from the horizontal gaps.
func groupRows(texts []pdflib.Text, tol float64) []textRow {
	frags := make([]fragment, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		frags = append(frags, fragment{s: t.S, x: t.X, y: t.Y, w: t.W, fontSize: t.FontSize})
	}
	return groupFragmentRows(frags, tol)
}

func groupFragmentRows(frags []fragment, tol float64) []textRow {
	type bucket struct {
		yMin, yMax float64
		frags      []fragment
	}

	var buckets []bucket
	for _, f := range frags {
		placed := false
		for i := range buckets {
			if f.y >= buckets[i].yMin-tol && f.y <= buckets[i].yMax+tol {
				buckets[i].frags = append(buckets[i].frags, f)
				if f.y < buckets[i].yMin {
					buckets[i].yMin = f.y
				}
				if f.y > buckets[i].yMax {
					buckets[i].yMax = f.y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: f.y, yMax: f.y, frags: []fragment{f}})
		}
	}

	// Top of page first: PDF y grows upward.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	rows := make([]textRow, 0, len(buckets))
	for _, b := range buckets {
		sort.SliceStable(b.frags, func(i, j int) bool {
			return b.frags[i].x < b.frags[j].x
		})

		var sb strings.Builder
		left, right := b.frags[0].x, b.frags[0].x
		maxFont := 0.0
		for i, f := range b.frags {
			if i > 0 {
				prev := b.frags[i-1]
				gap := f.x - (prev.x + prev.w)
				if gap > wordGap(prev.fontSize) {
					sb.WriteString(" ")
				}
			}
			sb.WriteString(f.s)
			if f.x < left {
				left = f.x
			}
			if f.x+f.w > right {
				right = f.x + f.w
			}
			if f.fontSize > maxFont {
				maxFont = f.fontSize
			}
		}
		if maxFont == 0 {
			maxFont = 12
		}

		rows = append(rows, textRow{
			text: sb.String(),
			bbox: model.NewRect(left, b.yMin, right, b.yMax+maxFont),
		})
	}
	return rows
}

// wordGap returns the horizontal distance treated as a word boundary
// for the given font size.
func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = 12
	}
	return fontSize * 0.3
}
