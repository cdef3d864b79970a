//go:build !ocr

package ingest

import (
	"context"
	"errors"
	"testing"
)

func TestScannedStub(t *testing.T) {
	s := &Scanned{Pages: []PageImage{{Data: []byte{0xff, 0xd8}, Width: 612, Height: 792}}}
	_, err := s.Ingest(context.Background())
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("stub Ingest error = %v, want ErrOCRNotEnabled", err)
	}
}
