package health

import (
	"fleetwash/core/logger"
	"fleetwash/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleHealth)
	group.Get("/database", h.HandleDatabase)
	group.Get("/storage", h.HandleStorage)
	group.Get("/catalog", h.HandleCatalog)
}

// HandleHealth runs every check.
// @Summary Health
// @Description Checks the database schema, the evidence bucket and the catalog sources.
// @Tags health
// @Produce json
// @Success 200 {object} Report
// @Failure 503 {object} Report
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Run(c.Context())
	status := fiber.StatusOK
	if report.Status == StatusError {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(report)
}

// HandleDatabase checks the database.
// @Summary Check Database
// @Tags health
// @Produce json
// @Success 200 {object} Check
// @Router /health/database [get]
func (h *Handler) HandleDatabase(c *fiber.Ctx) error {
	return writeCheck(c, h.service.CheckDatabase(c.Context()))
}

// HandleStorage checks and optionally fixes the evidence bucket.
// @Summary Check Storage
// @Description Checks the evidence bucket. Administrators may pass fix=true to create it.
// @Tags health
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} Check
// @Router /health/storage [get]
func (h *Handler) HandleStorage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if c.Query("fix") == "true" {
		if p, ok := auth.FromContext(c); !ok || !p.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "only administrators may fix storage"})
		}
		l.Info("Creating evidence bucket")
		if err := h.service.FixStorage(c.Context()); err != nil {
			l.Error("Failed to fix storage", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	return writeCheck(c, h.service.CheckStorage(c.Context()))
}

// HandleCatalog checks the catalog sources.
// @Summary Check Catalog
// @Tags health
// @Produce json
// @Success 200 {object} Check
// @Router /health/catalog [get]
func (h *Handler) HandleCatalog(c *fiber.Ctx) error {
	return writeCheck(c, h.service.CheckCatalog(c.Context()))
}

func writeCheck(c *fiber.Ctx, check Check) error {
	if check.Status == StatusError {
		return c.Status(fiber.StatusServiceUnavailable).JSON(check)
	}
	return c.JSON(check)
}
