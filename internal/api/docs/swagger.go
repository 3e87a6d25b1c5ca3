package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// UserData is a directory entry as rendered by the control surface
type UserData struct {
	ID         string  `json:"id" example:"42"`
	GivenName  string  `json:"given_name" example:"Luis"`
	FamilyName string  `json:"family_name" example:"Perez"`
	FullName   string  `json:"full_name" example:"Luis Perez"`
	Initials   string  `json:"initials" example:"LP"`
	Email      string  `json:"email,omitempty" example:"luis@example.pe"`
	Phone      string  `json:"phone,omitempty" example:"999888777"`
	Wanted     bool    `json:"wanted" example:"true"`
	PhotoURL   string  `json:"photo_url,omitempty" example:"https://facerecon-api.onrender.com/static/fotos/42.jpg"`
	Confidence float64 `json:"confidence,omitempty" example:"0.87"`
	Distance   float64 `json:"distance,omitempty" example:"0.31"`
}

// RecognitionData is the outcome of the last recognition
type RecognitionData struct {
	Matched     bool      `json:"matched" example:"true"`
	MatchedUser *UserData `json:"matched_user,omitempty"`
	Message     string    `json:"message,omitempty" example:"Usuario reconocido"`
	Distance    float64   `json:"distance,omitempty" example:"0.31"`
	Threshold   float64   `json:"threshold,omitempty" example:"0.6"`
	AlertFlag   bool      `json:"alert_flag" example:"true"`
}

// NoticeData is the transient confirmation message
type NoticeData struct {
	Message string `json:"message" example:"User registered successfully: Luis Perez"`
	Visible bool   `json:"visible" example:"true"`
	Success bool   `json:"success" example:"true"`
}

// HealthData is the last backend health check result
type HealthData struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message" example:"API is running"`
}

// StateResponse is returned by every intent endpoint
type StateResponse struct {
	Version         uint64           `json:"version" example:"12"`
	Loading         bool             `json:"loading" example:"false"`
	Users           []UserData       `json:"users"`
	LastRecognition *RecognitionData `json:"last_recognition,omitempty"`
	ErrorMessage    string           `json:"error_message,omitempty" example:"Failed to load users: could not reach the server"`
	AlertActive     bool             `json:"alert_active" example:"true"`
	Notice          *NoticeData      `json:"notice,omitempty"`
	Health          *HealthData      `json:"health,omitempty"`
	SelectedUser    *UserData        `json:"selected_user,omitempty"`
	LastUpdatedUser *UserData        `json:"last_updated_user,omitempty"`
}

// LivenessResponse is returned by GET /health
type LivenessResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"0.1.0"`
	Backend string `json:"backend" example:"render"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code      string `json:"code" example:"VALIDATION_FAILED"`
	Message   string `json:"message" example:"Request validation failed"`
	RequestID string `json:"request_id,omitempty" example:"3f1c2a9e-5b7d-4e0a-9c1f-2d8e6b4a7c90"`
}

var (
	errRateLimited = response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded, please try again later"}, "429", "Too Many Requests")
	errInternal    = response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error")
	errValidation  = response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity")
	errImage       = response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity")
)

func stateOK(description string) []response.Response {
	return []response.Response{
		response.New(StateResponse{}, "200", description),
	}
}

// intent documents a POST endpoint that takes no payload and returns the state.
func intent(path, tag, summary, description string) *endpoint.EndPoint {
	return endpoint.New(
		endpoint.POST,
		path,
		endpoint.WithTags(tag),
		endpoint.WithSummary(summary),
		endpoint.WithDescription(description),
		endpoint.WithProduce([]mime.MIME{mime.JSON}),
		endpoint.WithSuccessfulReturns(stateOK("State after the intent")),
		endpoint.WithErrors([]response.Response{errRateLimited, errInternal}),
	)
}

// NewSwagger documents the local control surface
func NewSwagger(host string) *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "facerecon control surface",
		Version:     "v1.0.0",
		Description: "Local HTTP surface over the face recognition client. Every intent returns the resulting view state; GET /v1/ws streams state.changed events.",
		Host:        host,
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		endpoint.New(
			endpoint.GET,
			"/state",
			endpoint.WithTags("State"),
			endpoint.WithSummary("Current view state"),
			endpoint.WithDescription("Returns the latest snapshot without contacting the backend"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns(stateOK("Current state")),
			endpoint.WithErrors([]response.Response{errRateLimited}),
		),

		intent("/health-check", "State", "Check backend health",
			"Probes the backend /health endpoint. Failures set error_message and clear health."),
		intent("/alert/dismiss", "State", "Acknowledge the wanted-person alert",
			"Clears alert_active and keeps the recognition result. No-op when no alert is active."),
		intent("/notice/dismiss", "State", "Hide the notice",
			"Hides the notice before it expires on its own. No-op when no notice is visible."),
		intent("/error/dismiss", "State", "Clear the error message",
			"No-op when no error is set."),

		endpoint.New(
			endpoint.POST,
			"/recognize",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Recognize a face"),
			endpoint.WithDescription("Uploads the multipart file field \"image\" (jpeg, png, webp or bmp). The photo is downscaled, re-encoded as JPEG and sent to the backend. alert_active is set when the server raised an alert or the matched user is wanted."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns(stateOK("State with last_recognition, or error_message when the call failed")),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "IMAGE_REQUIRED", Message: "An image is required"}, "422", "Unprocessable Entity"),
				errImage,
				errRateLimited,
				errInternal,
			}),
		),
		intent("/recognition/clear", "Recognition", "Clear the recognition result",
			"Clears last_recognition and alert_active."),

		endpoint.New(
			endpoint.GET,
			"/users",
			endpoint.WithTags("Users"),
			endpoint.WithSummary("Reload the user directory"),
			endpoint.WithDescription("Fetches the full list from the backend and replaces users. On failure the previous list is kept and error_message is set."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns(stateOK("State with users")),
			endpoint.WithErrors([]response.Response{errRateLimited, errInternal}),
		),
		endpoint.New(
			endpoint.GET,
			"/users/{id}",
			endpoint.WithTags("Users"),
			endpoint.WithSummary("Load one user"),
			endpoint.WithDescription("Fetches a single user into selected_user"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Server-assigned user id")),
			),
			endpoint.WithSuccessfulReturns(stateOK("State with selected_user")),
			endpoint.WithErrors([]response.Response{errRateLimited, errInternal}),
		),
		endpoint.New(
			endpoint.POST,
			"/users",
			endpoint.WithTags("Users"),
			endpoint.WithSummary("Register a user"),
			endpoint.WithDescription("Multipart form with given_name, family_name, email, phone, wanted (bool) and the file field \"image\". The outcome is reported through notice; on success the directory is reloaded."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns(stateOK("State with notice")),
			endpoint.WithErrors([]response.Response{errValidation, errImage, errRateLimited, errInternal}),
		),
		endpoint.New(
			endpoint.PUT,
			"/users/{id}",
			endpoint.WithTags("Users"),
			endpoint.WithSummary("Update a user"),
			endpoint.WithDescription("JSON body {given_name, family_name, email, phone, wanted}. On success last_updated_user is set and the directory is reloaded."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Server-assigned user id")),
			),
			endpoint.WithSuccessfulReturns(stateOK("State after the update")),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				errValidation,
				errRateLimited,
				errInternal,
			}),
		),
		endpoint.New(
			endpoint.DELETE,
			"/users/{id}",
			endpoint.WithTags("Users"),
			endpoint.WithSummary("Delete a user"),
			endpoint.WithDescription("Deletes the user on the backend and reloads the directory"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Server-assigned user id")),
			),
			endpoint.WithSuccessfulReturns(stateOK("State after the delete")),
			endpoint.WithErrors([]response.Response{errRateLimited, errInternal}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
