package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
)

type UserHandler struct {
	session   Session
	presenter *Presenter
	images    ImageOptions
}

func NewUserHandler(session Session, presenter *Presenter, images ImageOptions) *UserHandler {
	return &UserHandler{
		session:   session,
		presenter: presenter,
		images:    images,
	}
}

// UserRequest is the JSON body accepted by PUT /v1/users/:id.
type UserRequest struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Wanted     bool   `json:"wanted"`
}

func (r UserRequest) fields() domain.UserFields {
	return domain.UserFields{
		GivenName:  r.GivenName,
		FamilyName: r.FamilyName,
		Email:      r.Email,
		Phone:      r.Phone,
		Wanted:     r.Wanted,
	}.Trimmed()
}

// List GET /v1/users - reload the directory from the backend
func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.presenter.State(h.session.LoadUsers(c.UserContext())))
}

// Get GET /v1/users/:id - load one user into the selection
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	return c.JSON(h.presenter.State(h.session.LoadUser(c.UserContext(), id)))
}

// Register POST /v1/users - multipart form with the user fields and an image
func (h *UserHandler) Register(c *fiber.Ctx) error {
	wanted := false
	if raw := strings.TrimSpace(c.FormValue("wanted")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.ErrValidationFailed.WithError(errors.New("wanted must be a boolean"))
		}
		wanted = parsed
	}

	fields := domain.UserFields{
		GivenName:  c.FormValue("given_name"),
		FamilyName: c.FormValue("family_name"),
		Email:      c.FormValue("email"),
		Phone:      c.FormValue("phone"),
		Wanted:     wanted,
	}.Trimmed()
	if err := fields.Validate(); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	image, err := extractImage(c, h.images)
	if err != nil {
		return err
	}

	return c.JSON(h.presenter.State(h.session.RegisterUser(c.UserContext(), fields, image)))
}

// Update PUT /v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req UserRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	fields := req.fields()
	if err := fields.Validate(); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	return c.JSON(h.presenter.State(h.session.UpdateUser(c.UserContext(), id, fields)))
}

// Delete DELETE /v1/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}
	return c.JSON(h.presenter.State(h.session.DeleteUser(c.UserContext(), id)))
}

func userID(c *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return "", domain.ErrValidationFailed.WithError(errors.New("id is required"))
	}
	return id, nil
}
