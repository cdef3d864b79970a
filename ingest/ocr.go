//go:build ocr

// Scanned-page ingestion backed by the Tesseract OCR engine via
// gosseract. Requires Tesseract to be installed on the system and the
// "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag the stub implementation in ocr_stub.go compiles
// instead and Scanned.Ingest returns ErrOCRNotEnabled.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/folio/model"
)

// ErrOCRNotEnabled is returned by the stub build only; with the "ocr"
// tag it is never returned but kept so callers can errors.Is
// unconditionally.
var ErrOCRNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Scanned ingests pre-rendered page images through OCR. Recognized
// text is split into lines; each line gets a synthesized full-width
// band of the page, stacked top to bottom, since Tesseract's plain
// text output carries no positions.
type Scanned struct {
	// Pages holds one raster per page, in order.
	Pages []PageImage

	// Language is the Tesseract language spec ("eng", "eng+kor", ...).
	// Empty means the engine default.
	Language string

	// UpscaleFactor enlarges each raster before recognition; values
	// below 1 leave the raster alone. Scanned sources are typically
	// rendered around 72dpi and recognize much better at 300dpi, so 4
	// is a reasonable choice.
	UpscaleFactor float64
}

// PageImage is one page raster handed to the OCR engine.
type PageImage struct {
	// Data holds the encoded image (JPEG or PNG).
	Data []byte
	// Width and Height are the page dimensions in document units.
	Width, Height float64
}

// Ingest recognizes every page image and builds a context. The raster
// bytes are kept on the pages for later re-display.
func (s *Scanned) Ingest(ctx context.Context) (*model.Context, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if s.Language != "" {
		if err := client.SetLanguage(s.Language); err != nil {
			return nil, fmt.Errorf("set ocr language: %w", err)
		}
	}

	dctx := model.NewContext()
	for i, img := range s.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageNum := i + 1
		page := dctx.AddPage(model.NewPage(pageNum, img.Width, img.Height))
		page.ImageData = img.Data

		data := img.Data
		if s.UpscaleFactor > 1 {
			scaled, err := Upscale(data, s.UpscaleFactor)
			if err != nil {
				return nil, fmt.Errorf("page %d: upscale: %w", pageNum, err)
			}
			data = scaled
		}

		if err := client.SetImageFromBytes(data); err != nil {
			return nil, fmt.Errorf("page %d: set image: %w", pageNum, err)
		}
		text, err := client.Text()
		if err != nil {
			return nil, fmt.Errorf("page %d: recognize: %w", pageNum, err)
		}

		for _, slot := range lineElements(pageNum, img.Width, img.Height, strings.TrimSpace(text)) {
			page.Append(dctx.Allocate(), slot)
		}
	}

	return dctx, nil
}
