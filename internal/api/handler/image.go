package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/imageprep"
)

const (
	maxImageSize = 10 * 1024 * 1024 // 10MB
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// ImageOptions controls how uploaded photos are normalized before they are sent on.
type ImageOptions struct {
	MaxDim int
}

// extractImage reads the "image" form file, checks it and re-encodes it as JPEG.
func extractImage(c *fiber.Ctx, opts ImageOptions) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrImageRequired.WithError(err)
	}

	if file.Size == 0 || file.Size > maxImageSize {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	// the declared type is not trusted; sniff the bytes instead
	if !validImageTypes[http.DetectContentType(raw)] {
		return nil, domain.ErrInvalidImage.WithError(errors.New("unsupported content type"))
	}

	prepared, _, err := imageprep.Prepare(raw, opts.MaxDim)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	return prepared, nil
}
