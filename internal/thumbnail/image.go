package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	// Register decoders for the formats we accept.
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/mediastash/mediastash/internal/models"
)

// ImageGenerator thumbnails still images in-process: decode, aspect-fit
// scale, JPEG encode. No external dependencies beyond the decoder set.
type ImageGenerator struct {
	width  int
	height int
}

func NewImageGenerator(width, height int) *ImageGenerator {
	return &ImageGenerator{width: width, height: height}
}

func (g *ImageGenerator) Supports(ft models.FileType) bool {
	return ft == models.TypeImage
}

func (g *ImageGenerator) Generate(ctx context.Context, src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	dst := image.NewRGBA(fitRect(img.Bounds(), g.width, g.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// fitRect scales the source bounds to fit inside maxW x maxH while keeping
// the aspect ratio. Images already smaller than the box keep their size.
func fitRect(src image.Rectangle, maxW, maxH int) image.Rectangle {
	w, h := src.Dx(), src.Dy()
	if w <= maxW && h <= maxH {
		return image.Rect(0, 0, w, h)
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scaleW {
		scale = scaleH
	}
	outW := int(float64(w) * scale)
	outH := int(float64(h) * scale)
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	return image.Rect(0, 0, outW, outH)
}
