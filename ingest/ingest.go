// Package ingest populates fresh document contexts from source files.
//
// An [Ingester] is the upstream collaborator of the document model: it
// produces the initial pages and keyed elements that the model then
// manages. Three ingesters ship with folio:
//
//   - [PDF] reads positioned text from born-digital PDFs.
//   - [DOCX] reads Word paragraphs, synthesizing page geometry.
//   - [Scanned] recognizes page images with Tesseract (requires the
//     "ocr" build tag; see the ocr.go/ocr_stub.go pair).
//
// All ingesters allocate element keys from the context counter, so keys
// handed to the model are unique and below the allocator watermark.
package ingest

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/tsawler/folio/model"
)

// Ingester produces a populated context from a source document.
type Ingester interface {
	Ingest(ctx context.Context) (*model.Context, error)
}

// Format represents a supported source format.
type Format int

const (
	// FormatUnknown indicates an unrecognized source.
	FormatUnknown Format = iota
	// FormatPDF indicates a PDF document.
	FormatPDF
	// FormatDOCX indicates a Microsoft Word (.docx) document.
	FormatDOCX
	// FormatImage indicates a page image (JPEG or PNG) for OCR.
	FormatImage
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "PDF"
	case FormatDOCX:
		return "DOCX"
	case FormatImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// DetectFormat determines the source format from the filename extension,
// falling back to magic bytes when the extension is unknown.
func DetectFormat(filename string, head []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".jpg", ".jpeg", ".png":
		return FormatImage
	}

	switch {
	case bytes.HasPrefix(head, []byte("%PDF-")):
		return FormatPDF
	case bytes.HasPrefix(head, []byte("PK\x03\x04")):
		// Zip container; .docx is the only zip format folio ingests.
		return FormatDOCX
	case bytes.HasPrefix(head, []byte{0xff, 0xd8, 0xff}),
		bytes.HasPrefix(head, []byte("\x89PNG")):
		return FormatImage
	}
	return FormatUnknown
}
