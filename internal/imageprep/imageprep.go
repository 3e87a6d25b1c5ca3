// Package imageprep normalizes captured photos before they are uploaded.
package imageprep

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// JPEGQuality matches the quality used when the camera output is compressed.
const JPEGQuality = 90

var (
	ErrEmptyImage        = errors.New("image is empty")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Info describes a decoded image header.
type Info struct {
	Format string `json:"format" yaml:"format"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// Inspect reads only the image header.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmptyImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Prepare decodes data, downscales it to fit within maxDim on its longest side
// and re-encodes it as JPEG. A maxDim of zero keeps the original size.
func Prepare(data []byte, maxDim int) ([]byte, Info, error) {
	if len(data) == 0 {
		return nil, Info{}, ErrEmptyImage
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	img = fit(img, maxDim)
	b := img.Bounds()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, Info{}, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), Info{Format: "jpeg", Width: b.Dx(), Height: b.Dy()}, nil
}

func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxDim <= 0 || (width <= maxDim && height <= maxDim) {
		return img
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = maxDim
		newHeight = max(1, int(float64(height)*float64(maxDim)/float64(width)))
	} else {
		newHeight = maxDim
		newWidth = max(1, int(float64(width)*float64(maxDim)/float64(height)))
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
