package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
)

const (
	recognizeImageField = "face_image"
	recognizeImageName  = "face.jpg"
)

// CheckHealth calls GET /health
func (c *Client) CheckHealth(ctx context.Context) (*domain.HealthStatus, error) {
	resp, err := doJSON[healthResponse](ctx, c, http.MethodGet, "/health", "", nil)
	if err != nil {
		return nil, err
	}
	return &domain.HealthStatus{Status: resp.Status, Message: resp.Message}, nil
}

// Recognize calls POST /recognize with the image as multipart part "face_image"
func (c *Client) Recognize(ctx context.Context, image []byte) (*domain.Recognition, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writeImagePart(writer, recognizeImageField, recognizeImageName, image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	resp, err := doJSON[recognizeResponse](ctx, c, http.MethodPost, "/recognize", writer.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}

	out := resp.toDomain()
	return &out, nil
}

// writeImagePart adds image as a file part, typed by sniffing its content
func writeImagePart(writer *multipart.Writer, field, filename string, image []byte) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", http.DetectContentType(image))

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return fmt.Errorf("write image data: %w", err)
	}
	return nil
}
