package catalog

import (
	"fleetwash/core/logger"
	"fleetwash/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the unit catalog.
type Handler struct {
	catalog *Catalog
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(catalog *Catalog, logger *zap.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleList)
	group.Get("/units", h.HandleVisibleUnits)
}

// HandleList returns the merged catalog.
// @Summary List Catalog Units
// @Description Loads every catalog source and returns the merged units, optionally filtered.
// @Tags catalog
// @Produce json
// @Param depot query string false "Depot id or name"
// @Param segment query string false "Segment id or alias"
// @Success 200 {object} map[string]interface{} "Units and stats"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	roster, err := h.catalog.Load(c.Context())
	if err != nil {
		l.Error("Catalog load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	depot, segment := h.filters(c)
	return c.JSON(fiber.Map{
		"units": roster.Filter(depot, segment),
		"stats": roster.Stats(),
	})
}

// HandleVisibleUnits returns the units the caller may submit washes for.
// @Summary List Selectable Units
// @Description Supervisors get their assigned or depot units; administrators get the whole catalog.
// @Tags catalog
// @Produce json
// @Param segment query string false "Segment id or alias"
// @Success 200 {array} Unit
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/units [get]
func (h *Handler) HandleVisibleUnits(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	roster, err := h.catalog.Load(c.Context())
	if err != nil {
		l.Error("Catalog load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	depot, segment := h.filters(c)
	p, _ := auth.FromContext(c)
	if p.IsSupervisor() {
		return c.JSON(VisibleUnits(roster, h.catalog.Directory(), p.SupervisorID, segment))
	}
	return c.JSON(roster.Filter(depot, segment))
}

func (h *Handler) filters(c *fiber.Ctx) (string, string) {
	return h.catalog.Directory().ResolveFilter(c.Query("depot"), c.Query("segment"))
}
