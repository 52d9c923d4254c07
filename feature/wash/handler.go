package wash

import (
	"errors"
	"fmt"
	"io"

	"fleetwash/core/logger"
	"fleetwash/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for wash records.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the wash routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/washes")
	group.Post("/", auth.RequireRole(auth.RoleSupervisor), h.HandleSubmit)
	group.Get("/:week", h.HandleList)
	group.Delete("/record/:id", auth.RequireRole(auth.RoleSupervisor), h.HandleDeleteRecord)
	group.Delete("/:week", auth.RequireRole(auth.RoleAdmin), h.HandleDeleteWeek)
}

// HandleSubmit records a wash.
// @Summary Submit Wash
// @Description Uploads the four photos of a unit wash. Photos already used in any stored wash are rejected.
// @Tags washes
// @Accept multipart/form-data
// @Produce json
// @Param unit formData string true "Unit id"
// @Param week formData string false "Week key (YYYY-Www) or date (YYYY-MM-DD); defaults to the current week"
// @Param front formData file true "Front photo"
// @Param back formData file true "Back photo"
// @Param side formData file true "Side photo"
// @Param cab formData file true "Cab photo"
// @Success 201 {object} View
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 409 {object} map[string]interface{} "Duplicate photo or store conflict"
// @Router /washes [post]
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	p, _ := auth.FromContext(c)

	week := c.FormValue("week")
	if week == "" {
		week = c.FormValue("date")
	}
	sub := Submission{UnitID: c.FormValue("unit"), Week: week}

	for _, slot := range Slots {
		fh, err := c.FormFile(string(slot))
		if err != nil {
			continue
		}
		if fh.Size > h.service.cfg.MaxPhotoBytes() {
			return h.writeError(c, l, &ValidationError{Field: "photos", Reason: fmt.Sprintf("%s photo exceeds %d MB", slot, h.service.cfg.MaxPhotoBytes()>>20)})
		}
		f, err := fh.Open()
		if err != nil {
			return h.writeError(c, l, fmt.Errorf("failed to open %s photo: %w", slot, err))
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return h.writeError(c, l, fmt.Errorf("failed to read %s photo: %w", slot, err))
		}
		sub.Photos = append(sub.Photos, Photo{Slot: slot, Filename: fh.Filename, Data: data})
	}

	rec, err := h.service.Submit(c.Context(), p, sub)
	if err != nil {
		return h.writeError(c, l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec.View())
}

// HandleList lists the records of a week.
// @Summary List Washes
// @Description Returns the week's wash records, newest first. Supervisors only see their own.
// @Tags washes
// @Produce json
// @Param week path string true "Week key (YYYY-Www) or date (YYYY-MM-DD)"
// @Success 200 {array} View
// @Failure 400 {object} map[string]interface{} "Invalid week"
// @Router /washes/{week} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	p, _ := auth.FromContext(c)

	records, err := h.service.ListWeek(c.Context(), p, c.Params("week"))
	if err != nil {
		return h.writeError(c, l, err)
	}
	views := make([]View, 0, len(records))
	for _, r := range records {
		views = append(views, r.View())
	}
	return c.JSON(views)
}

// HandleDeleteRecord deletes one record.
// @Summary Delete Wash
// @Description Deletes one wash record. Only the supervisor who submitted it may delete it.
// @Tags washes
// @Param id path string true "Record id"
// @Success 204
// @Failure 403 {object} map[string]interface{} "Forbidden"
// @Failure 404 {object} map[string]interface{} "Not found"
// @Router /washes/record/{id} [delete]
func (h *Handler) HandleDeleteRecord(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	p, _ := auth.FromContext(c)

	if err := h.service.DeleteRecord(c.Context(), p, c.Params("id")); err != nil {
		return h.writeError(c, l, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteWeek deletes a whole week.
// @Summary Delete Week
// @Description Deletes every wash record of a week and its photos.
// @Tags washes
// @Produce json
// @Param week path string true "Week key (YYYY-Www) or date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Deleted count"
// @Router /washes/{week} [delete]
func (h *Handler) HandleDeleteWeek(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	p, _ := auth.FromContext(c)

	n, err := h.service.DeleteWeek(c.Context(), p, c.Params("week"))
	if err != nil {
		return h.writeError(c, l, err)
	}
	return c.JSON(fiber.Map{"status": "deleted", "deleted": n})
}

// writeError maps workflow errors to status codes and bodies naming the failed condition.
func (h *Handler) writeError(c *fiber.Ctx, l *zap.Logger, err error) error {
	if IsClientError(err) {
		l.Warn("Wash request rejected", zap.Error(err))
	} else {
		l.Error("Wash request failed", zap.Error(err))
	}

	var (
		validation *ValidationError
		inSub      *DuplicateInSubmissionError
		reused     *DuplicatePhotoReusedError
		conflict   *StoreConflictError
	)
	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "code": "validation", "field": validation.Field})
	case errors.As(err, &inSub):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "code": "duplicate_in_submission", "slots": inSub.Slots})
	case errors.As(err, &reused):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "duplicate_photo_reused",
			"slots": reused.Slots,
			"unit":  reused.UnitID,
			"week":  reused.Week,
			"depot": reused.Depot,
		})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "code": "store_conflict", "retryable": conflict.Retryable()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error(), "code": "forbidden"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "code": "internal"})
	}
}
