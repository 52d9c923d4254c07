package report

import (
	"bytes"
	"errors"
	"fmt"

	"fleetwash/core/logger"
	"fleetwash/core/middleware/auth"
	"fleetwash/core/reconcile"
	"fleetwash/feature/wash"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for weekly reports.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reports")
	group.Get("/:week", h.HandleWeek)
	group.Get("/:week/csv", h.HandleWeekCSV)
}

// HandleWeek returns the week's reconciliation.
// @Summary Week Report
// @Description Lists washed and not washed units of a week. Supervisors only see their own depot.
// @Tags reports
// @Produce json
// @Param week path string true "Week key (YYYY-Www) or date (YYYY-MM-DD)"
// @Param depot query string false "Depot id or name"
// @Param segment query string false "Segment id or alias"
// @Success 200 {object} Report
// @Failure 400 {object} map[string]string "Invalid week"
// @Router /reports/{week} [get]
func (h *Handler) HandleWeek(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	rep, err := h.build(c)
	if err != nil {
		return h.writeError(c, l, err)
	}
	return c.JSON(rep)
}

// HandleWeekCSV returns the week's reconciliation as CSV.
// @Summary Week Report CSV
// @Description CSV summary with one line per washed record and per not washed unit.
// @Tags reports
// @Produce text/csv
// @Param week path string true "Week key (YYYY-Www) or date (YYYY-MM-DD)"
// @Param depot query string false "Depot id or name"
// @Param segment query string false "Segment id or alias"
// @Success 200 {string} string "CSV"
// @Router /reports/{week}/csv [get]
func (h *Handler) HandleWeekCSV(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	rep, err := h.build(c)
	if err != nil {
		return h.writeError(c, l, err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		return h.writeError(c, l, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="report-%s.csv"`, rep.Week))
	return c.Send(buf.Bytes())
}

func (h *Handler) build(c *fiber.Ctx) (*Report, error) {
	p, _ := auth.FromContext(c)
	depot, segment := h.service.Catalog().Directory().ResolveFilter(c.Query("depot"), c.Query("segment"))
	return h.service.Week(c.Context(), p, c.Params("week"), reconcile.Filter{Depot: depot, Segment: segment})
}

func (h *Handler) writeError(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case errors.Is(err, wash.ErrValidation):
		l.Warn("Report request rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, wash.ErrForbidden):
		l.Warn("Report request rejected", zap.Error(err))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Report failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
