package ingest

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Upscale decodes an encoded page raster (JPEG or PNG), enlarges it by
// factor with Catmull-Rom resampling, and re-encodes it in the source
// format. OCR engines resolve small glyphs far better on enlarged
// rasters; the upstream renderer typically emits 72dpi while engines
// want around 300.
func Upscale(data []byte, factor float64) ([]byte, error) {
	if factor <= 1 {
		return data, nil
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(
		0, 0,
		int(float64(bounds.Dx())*factor),
		int(float64(bounds.Dy())*factor),
	))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		return nil, fmt.Errorf("encode raster: %w", err)
	}
	return buf.Bytes(), nil
}
