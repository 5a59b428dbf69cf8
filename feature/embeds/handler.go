package embeds

import (
	"errors"

	"embed-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for embed previews.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the embeds routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/embeds")
	group.Get("/:channel", h.HandlePreview)
}

// HandlePreview returns the compiled messages of a local channel directory.
// @Summary Preview Channel Messages
// @Description Parses and compiles the definition files of a channel directory without contacting Discord.
// @Tags embeds
// @Accept json
// @Produce json
// @Param channel path string true "Channel name"
// @Success 200 {object} embeds.Preview "Compiled messages"
// @Failure 404 {object} map[string]string "Channel directory not found"
// @Failure 422 {object} map[string]string "Invalid definition file"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /embeds/{channel} [get]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	channel := c.Params("channel")

	preview, err := h.service.Preview(channel)
	if err != nil {
		switch {
		case errors.Is(err, ErrChannelNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrInvalidDefinition):
			l.Warn("Invalid definition", zap.String("channel", channel), zap.Error(err))
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			l.Error("Preview failed", zap.String("channel", channel), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(preview)
}
