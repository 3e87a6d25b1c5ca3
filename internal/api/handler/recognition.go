package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

type RecognitionHandler struct {
	session   Session
	presenter *Presenter
	images    ImageOptions
	logger    *slog.Logger
}

func NewRecognitionHandler(session Session, presenter *Presenter, images ImageOptions, logger *slog.Logger) *RecognitionHandler {
	return &RecognitionHandler{
		session:   session,
		presenter: presenter,
		images:    images,
		logger:    logger,
	}
}

// Recognize POST /v1/recognize - identify the face in the uploaded photo
func (h *RecognitionHandler) Recognize(c *fiber.Ctx) error {
	image, err := extractImage(c, h.images)
	if err != nil {
		return err
	}

	state := h.session.CaptureAndRecognize(c.UserContext(), image)
	if state.AlertActive {
		h.logger.Warn("wanted person recognized",
			slog.String("request_id", requestID(c)),
		)
	}

	return c.JSON(h.presenter.State(state))
}

// Clear POST /v1/recognition/clear
func (h *RecognitionHandler) Clear(c *fiber.Ctx) error {
	return c.JSON(h.presenter.State(h.session.ClearResult()))
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
