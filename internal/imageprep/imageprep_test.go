package imageprep

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	info, err := Inspect(encodePNG(t, 40, 20))
	require.NoError(t, err)
	assert.Equal(t, Info{Format: "png", Width: 40, Height: 20}, info)

	_, err = Inspect(nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = Inspect([]byte("not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxDim     int
		wantWidth  int
		wantHeight int
	}{
		{"landscape downscaled", 400, 200, 100, 100, 50},
		{"portrait downscaled", 150, 600, 300, 75, 300},
		{"small image kept", 64, 48, 1024, 64, 48},
		{"zero max keeps size", 300, 100, 0, 300, 100},
		{"extreme ratio keeps one pixel", 1000, 1, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, info, err := Prepare(encodePNG(t, tt.w, tt.h), tt.maxDim)
			require.NoError(t, err)

			assert.Equal(t, "jpeg", info.Format)
			assert.Equal(t, tt.wantWidth, info.Width)
			assert.Equal(t, tt.wantHeight, info.Height)

			cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, cfg.Width)
			assert.Equal(t, tt.wantHeight, cfg.Height)
		})
	}
}

func TestPrepare_Errors(t *testing.T) {
	_, _, err := Prepare(nil, 100)
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, _, err = Prepare([]byte{0xFF, 0xD8, 0xFF, 0x00}, 100)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
