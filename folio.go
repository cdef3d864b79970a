// Package folio provides a fluent API for building editable document
// models from source files and snapshots.
//
// Basic usage:
//
//	doc, err := folio.Open("report.pdf").Load(ctx)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Print(doc.DocumentText())
//
// With options:
//
//	doc, err := folio.Open("scan.png").
//	    OCRLanguage("deu").
//	    Upscale(2).
//	    Load(ctx)
//
// For advanced use cases, the lower-level ingest, document, and
// snapshot packages are also available.
package folio

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	"github.com/tsawler/folio/document"
	"github.com/tsawler/folio/ingest"
	"github.com/tsawler/folio/snapshot"
)

// Open prepares a source file for ingestion and returns a Builder for
// fluent configuration. The file is not touched until Load is called.
//
// Example:
//
//	doc, err := folio.Open("document.pdf").Load(ctx)
func Open(filename string) *Builder {
	return &Builder{
		filename:     filename,
		rowTolerance: 3.0,
		ocrLanguage:  "eng",
		upscale:      1,
	}
}

// Builder configures ingestion of one source file.
type Builder struct {
	filename     string
	rowTolerance float64
	ocrLanguage  string
	upscale      float64
}

// RowTolerance sets the vertical tolerance, in points, used to group
// PDF text fragments into rows.
func (b *Builder) RowTolerance(tol float64) *Builder {
	b.rowTolerance = tol
	return b
}

// OCRLanguage sets the Tesseract language for scanned sources.
func (b *Builder) OCRLanguage(lang string) *Builder {
	b.ocrLanguage = lang
	return b
}

// Upscale sets the factor scanned page images are enlarged by before
// recognition. Values at or below 1 leave images untouched.
func (b *Builder) Upscale(factor float64) *Builder {
	b.upscale = factor
	return b
}

// Load ingests the source and returns a fresh document with safe flags
// evaluated and chains derived.
func (b *Builder) Load(ctx context.Context) (*document.Document, error) {
	data, err := os.ReadFile(b.filename)
	if err != nil {
		return nil, err
	}

	var ing ingest.Ingester
	switch format := ingest.DetectFormat(b.filename, data); format {
	case ingest.FormatPDF:
		ing = &ingest.PDF{Path: b.filename, RowTolerance: b.rowTolerance}
	case ingest.FormatDOCX:
		ing = &ingest.DOCX{Path: b.filename}
	case ingest.FormatImage:
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		ing = &ingest.Scanned{
			Pages: []ingest.PageImage{{
				Data:   data,
				Width:  float64(cfg.Width),
				Height: float64(cfg.Height),
			}},
			Language:      b.ocrLanguage,
			UpscaleFactor: b.upscale,
		}
	default:
		return nil, fmt.Errorf("unsupported source %s", b.filename)
	}

	mctx, err := ing.Ingest(ctx)
	if err != nil {
		return nil, err
	}
	return document.NewFresh(mctx), nil
}

// LoadSnapshot opens a document previously stored with SaveSnapshot.
// Safe flags come from the snapshot; chains are rebuilt.
func LoadSnapshot(path string) (*document.Document, error) {
	ctx, err := snapshot.Load(path)
	if err != nil {
		return nil, err
	}
	return document.New(ctx), nil
}

// SaveSnapshot writes the document's full state to path atomically.
func SaveSnapshot(d *document.Document, path string) error {
	return snapshot.Save(d.Context(), path)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	doc := folio.Must(folio.LoadSnapshot("report.json"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
