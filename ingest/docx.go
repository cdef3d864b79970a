package ingest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/tsawler/folio/model"
)

// DOCX ingests a Microsoft Word document. Word files carry no page
// geometry, so paragraphs are laid out top to bottom on synthesized
// US Letter pages, ParagraphsPerPage at a time, each paragraph taking
// an equal full-width band. Heading-styled paragraphs come in as
// non-body elements so they stay out of chain reconstruction.
type DOCX struct {
	Path string

	// ParagraphsPerPage controls pagination of the synthesized layout.
	// Zero means the default of 12.
	ParagraphsPerPage int
}

// Ingest reads the file and builds a context with synthesized page
// geometry.
func (d *DOCX) Ingest(ctx context.Context) (*model.Context, error) {
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat docx: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	perPage := d.ParagraphsPerPage
	if perPage <= 0 {
		perPage = 12
	}

	type para struct {
		text    string
		heading bool
	}
	var paras []para
	for _, item := range doc.Document.Body.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(p)
		if text == "" {
			continue
		}
		paras = append(paras, para{text: text, heading: isHeading(p)})
	}

	dctx := model.NewContext()
	for start := 0; start < len(paras); start += perPage {
		end := start + perPage
		if end > len(paras) {
			end = len(paras)
		}
		chunk := paras[start:end]

		pageNum := len(dctx.Pages) + 1
		page := dctx.AddPage(model.NewPage(pageNum, letterWidth, letterHeight))
		bandHeight := letterHeight / float64(perPage)

		for i, pr := range chunk {
			top := letterHeight - float64(i)*bandHeight
			bbox := model.NewRect(0, top-bandHeight, letterWidth, top)
			elem := model.NewTextElement(pageNum, bbox, pr.text)
			if pr.heading {
				elem.Body = false
			}
			page.Append(dctx.Allocate(), elem)
		}
	}

	return dctx, nil
}

func isHeading(p *docx.Paragraph) bool {
	if p.Properties == nil || p.Properties.Style == nil {
		return false
	}
	style := strings.ToLower(p.Properties.Style.Val)
	return strings.HasPrefix(style, "heading")
}

func paragraphText(p *docx.Paragraph) string {
	var sb strings.Builder
	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				sb.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
