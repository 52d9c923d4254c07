package users

import (
	"errors"

	"fleetwash/core/logger"
	"fleetwash/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// View is the API representation of a user. Password material is never returned.
type View struct {
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         auth.Role `json:"role"`
	SupervisorID string    `json:"supervisor_id,omitempty"`
}

// NewView returns the public representation of u.
func NewView(u User) View {
	return View{Username: u.Username, Name: u.DisplayName(), Role: u.EffectiveRole(), SupervisorID: u.SupervisorID}
}

// Handler handles HTTP requests for user management.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the user routes. Administrators only.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/users", auth.RequireRole(auth.RoleAdmin))
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
}

// HandleList lists the users.
// @Summary List Users
// @Tags users
// @Produce json
// @Success 200 {array} View
// @Router /users [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	list, err := h.store.List()
	if err != nil {
		l.Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	views := make([]View, 0, len(list))
	for _, u := range list {
		views = append(views, NewView(u))
	}
	return c.JSON(views)
}

// HandleCreate creates a user.
// @Summary Create User
// @Tags users
// @Accept json
// @Produce json
// @Param user body NewUser true "New user"
// @Success 201 {object} View
// @Failure 400 {object} map[string]string "Invalid user"
// @Failure 409 {object} map[string]string "Username taken"
// @Router /users [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var in NewUser
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	u, err := h.store.Add(in)
	switch {
	case errors.Is(err, ErrInvalidUser):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Failed to create user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("User created", zap.String("username", u.Username), zap.String("role", string(u.Role)))
	return c.Status(fiber.StatusCreated).JSON(NewView(u))
}
