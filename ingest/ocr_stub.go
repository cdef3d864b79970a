//go:build !ocr

// Stub for scanned-page ingestion, compiled when the "ocr" build tag is
// not set. All recognition calls report ErrOCRNotEnabled. To enable OCR
// ingestion, install Tesseract and rebuild with:
//
//	go build -tags ocr
package ingest

import (
	"context"
	"errors"

	"github.com/tsawler/folio/model"
)

// ErrOCRNotEnabled is returned when OCR ingestion is requested but OCR
// support was not compiled in. Rebuild with -tags ocr.
var ErrOCRNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Scanned ingests pre-rendered page images through OCR. This is the
// stub variant; Ingest always fails with ErrOCRNotEnabled.
type Scanned struct {
	Pages         []PageImage
	Language      string
	UpscaleFactor float64
}

// PageImage is one page raster handed to the OCR engine.
type PageImage struct {
	Data          []byte
	Width, Height float64
}

// Ingest returns ErrOCRNotEnabled.
func (s *Scanned) Ingest(ctx context.Context) (*model.Context, error) {
	return nil, ErrOCRNotEnabled
}
