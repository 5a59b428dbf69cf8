package sync

import (
	"errors"

	"embed-sync/core/journal"
	"embed-sync/core/logger"
	"embed-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response is the body returned by POST /sync.
type Response struct {
	Summary reconcile.Summary `json:"summary"`
	Report  *reconcile.Report `json:"report"`
	Error   string            `json:"error,omitempty"`
}

// Handler handles HTTP requests for sync runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = journal.Run{}
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleSync)
	group.Get("/runs", h.HandleRuns)
}

// HandleSync runs a reconciliation.
// @Summary Sync Channels
// @Description Purges previous bot messages and re-posts the local definitions. Runs are sequential; identical concurrent requests share one run.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body Request false "Channels and options"
// @Success 200 {object} Response "Run report"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} Response "Run failed"
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}
	if req.PurgeScope != "" {
		if _, err := reconcile.ParsePurgeScope(req.PurgeScope); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	l.Info("Sync requested", zap.Strings("channels", req.Channels), zap.Bool("dry_run", req.DryRun))

	report, err := h.service.Sync(c.Context(), req)
	h.service.logReport(l, report)

	resp := Response{Report: report}
	if report != nil {
		resp.Summary = report.Summary()
	}
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
		resp.Error = err.Error()
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}

	return c.JSON(resp)
}

// HandleRuns lists recent runs from the journal.
// @Summary List Sync Runs
// @Description Returns the most recent runs with their per-channel results, newest first.
// @Tags sync
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} journal.Run "Runs"
// @Failure 503 {object} map[string]string "Journal disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/runs [get]
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.Runs(c.Context(), c.QueryInt("limit", journal.DefaultListLimit))
	if err != nil {
		if errors.Is(err, ErrJournalDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(runs)
}
