package handler

import (
	"github.com/gofiber/fiber/v2"
)

// StateHandler serves the snapshot and the intents that need no payload.
type StateHandler struct {
	session   Session
	presenter *Presenter
}

func NewStateHandler(session Session, presenter *Presenter) *StateHandler {
	return &StateHandler{session: session, presenter: presenter}
}

// Get GET /v1/state
func (h *StateHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.presenter.State(h.session.Snapshot()))
}

// CheckHealth POST /v1/health-check
func (h *StateHandler) CheckHealth(c *fiber.Ctx) error {
	return c.JSON(h.presenter.State(h.session.CheckHealth(c.UserContext())))
}

// DismissAlert POST /v1/alert/dismiss
func (h *StateHandler) DismissAlert(c *fiber.Ctx) error {
	return c.JSON(h.presenter.State(h.session.DismissAlert()))
}

// DismissNotice POST /v1/notice/dismiss
func (h *StateHandler) DismissNotice(c *fiber.Ctx) error {
	return c.JSON(h.presenter.State(h.session.DismissNotice()))
}

// DismissError POST /v1/error/dismiss
func (h *StateHandler) DismissError(c *fiber.Ctx) error {
	return c.JSON(h.presenter.State(h.session.DismissError()))
}
