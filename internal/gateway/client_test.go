package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
)

// jpegHeader is enough for http.DetectContentType to report image/jpeg
var jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.BaseURL = server.URL + "/"
	config.Timeout = 2 * time.Second
	return NewClient(config)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_CheckHealth(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantStatus  int
		validateRes func(*testing.T, *domain.HealthStatus)
	}{
		{
			name:   "healthy backend",
			status: http.StatusOK,
			body:   `{"status":"healthy","message":"API is running"}`,
			validateRes: func(t *testing.T, h *domain.HealthStatus) {
				assert.Equal(t, "healthy", h.Status)
				assert.Equal(t, "API is running", h.Message)
			},
		},
		{
			name:       "server error 500",
			status:     http.StatusInternalServerError,
			body:       `{"detail":"boom"}`,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:    "empty body",
			status:  http.StatusOK,
			body:    "",
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "null body",
			status:  http.StatusOK,
			body:    "null",
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "invalid json response",
			status:  http.StatusOK,
			body:    "not a valid json",
			wantErr: ErrDecode,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				assert.Equal(t, http.MethodGet, r.Method)
				assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			res, err := client.CheckHealth(context.Background())

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantStatus != 0:
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
				assert.Contains(t, err.Error(), "status 500")
			default:
				require.NoError(t, err)
				tt.validateRes(t, res)
			}
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: url, Timeout: time.Second})
	_, err := client.ListUsers(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	_, err := client.CheckHealth(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CheckHealth(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStatusError_IsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&StatusError{StatusCode: 404}))
	assert.False(t, IsNotFound(&StatusError{StatusCode: 500}))
	assert.False(t, IsNotFound(ErrTransport))
	assert.Equal(t, "backend returned status 404", (&StatusError{StatusCode: 404}).Error())
}

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		ref     string
		want    string
	}{
		{"relative with slash", "http://10.0.2.2:8000/", "/uploads/a.jpg", "http://10.0.2.2:8000/uploads/a.jpg"},
		{"relative without slash", "http://10.0.2.2:8000", "uploads/a.jpg", "http://10.0.2.2:8000/uploads/a.jpg"},
		{"absolute http", "http://10.0.2.2:8000/", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"empty", "http://10.0.2.2:8000/", "", ""},
		{"blank", "http://10.0.2.2:8000/", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveImageURL(tt.baseURL, tt.ref))
		})
	}
}

func TestClient_ImageURL(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://facerecon-api.onrender.com/"})
	assert.Equal(t, "https://facerecon-api.onrender.com", client.BaseURL())
	assert.Equal(t, "https://facerecon-api.onrender.com/static/1.jpg", client.ImageURL("/static/1.jpg"))
}
