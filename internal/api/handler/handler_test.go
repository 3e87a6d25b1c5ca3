package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
	"github.com/saturnino-fabrica-de-software/facerecon/internal/store"
)

const testBaseURL = "http://backend.test:8000/"

// MockSession is a mock implementation of Session
type MockSession struct {
	mock.Mock
}

func (m *MockSession) state(args mock.Arguments) store.ViewState {
	return args.Get(0).(store.ViewState)
}

func (m *MockSession) Snapshot() store.ViewState {
	return m.state(m.Called())
}

func (m *MockSession) CheckHealth(ctx context.Context) store.ViewState {
	return m.state(m.Called(ctx))
}

func (m *MockSession) CaptureAndRecognize(ctx context.Context, image []byte) store.ViewState {
	return m.state(m.Called(ctx, image))
}

func (m *MockSession) ClearResult() store.ViewState {
	return m.state(m.Called())
}

func (m *MockSession) LoadUsers(ctx context.Context) store.ViewState {
	return m.state(m.Called(ctx))
}

func (m *MockSession) LoadUser(ctx context.Context, id string) store.ViewState {
	return m.state(m.Called(ctx, id))
}

func (m *MockSession) RegisterUser(ctx context.Context, fields domain.UserFields, image []byte) store.ViewState {
	return m.state(m.Called(ctx, fields, image))
}

func (m *MockSession) UpdateUser(ctx context.Context, id string, fields domain.UserFields) store.ViewState {
	return m.state(m.Called(ctx, id, fields))
}

func (m *MockSession) DeleteUser(ctx context.Context, id string) store.ViewState {
	return m.state(m.Called(ctx, id))
}

func (m *MockSession) DismissAlert() store.ViewState {
	return m.state(m.Called())
}

func (m *MockSession) DismissNotice() store.ViewState {
	return m.state(m.Called())
}

func (m *MockSession) DismissError() store.ViewState {
	return m.state(m.Called())
}

// testLogger returns a logger that discards all output
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testApp mounts every handler the way the router does, with a minimal
// AppError renderer.
func testApp(session Session) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *domain.AppError
			if errors.As(err, &appErr) {
				return c.Status(appErr.StatusCode).JSON(appErr)
			}
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).SendString(fiberErr.Message)
			}
			return c.Status(500).SendString(err.Error())
		},
	})

	presenter := NewPresenter(testBaseURL)
	images := ImageOptions{MaxDim: 64}

	stateHandler := NewStateHandler(session, presenter)
	recognitionHandler := NewRecognitionHandler(session, presenter, images, testLogger())
	userHandler := NewUserHandler(session, presenter, images)

	app.Get("/v1/state", stateHandler.Get)
	app.Post("/v1/health-check", stateHandler.CheckHealth)
	app.Post("/v1/alert/dismiss", stateHandler.DismissAlert)
	app.Post("/v1/notice/dismiss", stateHandler.DismissNotice)
	app.Post("/v1/error/dismiss", stateHandler.DismissError)
	app.Post("/v1/recognize", recognitionHandler.Recognize)
	app.Post("/v1/recognition/clear", recognitionHandler.Clear)
	app.Get("/v1/users", userHandler.List)
	app.Get("/v1/users/:id", userHandler.Get)
	app.Post("/v1/users", userHandler.Register)
	app.Put("/v1/users/:id", userHandler.Update)
	app.Delete("/v1/users/:id", userHandler.Delete)

	return app
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// createMultipartRequest builds a form with the given fields and, when
// imageContent is not nil, an "image" file part.
func createMultipartRequest(t *testing.T, fields map[string]string, imageContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}

	if imageContent != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="face.png"`)
		h.Set("Content-Type", "image/png")

		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, _ = part.Write(imageContent)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeState(t *testing.T, resp *http.Response) StateResponse {
	t.Helper()
	var state StateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

func decodeAppError(t *testing.T, resp *http.Response) domain.AppError {
	t.Helper()
	var appErr domain.AppError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&appErr))
	return appErr
}
