package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

// Role is the access level of an authenticated principal.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
)

// HeaderAPIKey carries the service API key.
const HeaderAPIKey = "X-API-Key"

const localsKey = "principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	SupervisorID string `json:"supervisor_id,omitempty"`
}

// IsAdmin reports whether the principal has administrator rights.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// IsSupervisor reports whether the principal is a supervisor.
func (p Principal) IsSupervisor() bool { return p.Role == RoleSupervisor }

// ServicePrincipal is assigned to requests authenticated with the API key.
var ServicePrincipal = Principal{Username: "service", Name: "Service", Role: RoleAdmin}

// Users verifies credentials and resolves usernames to principals.
type Users interface {
	Authenticate(username, password string) bool
	Principal(username string) (Principal, bool)
}

// Config configures the authentication middleware.
type Config struct {
	// ApiKey, when set, authenticates requests carrying it in X-API-Key as ServicePrincipal.
	ApiKey string
	// Realm is the basic auth realm.
	Realm string
	// Users is the user directory for basic auth.
	Users Users
}

// New returns a middleware that authenticates every request by API key or HTTP basic auth
// and stores the resulting Principal in the context.
func New(cfg Config) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Next: func(c *fiber.Ctx) bool {
			if validAPIKey(cfg.ApiKey, c.Get(HeaderAPIKey)) {
				c.Locals(localsKey, ServicePrincipal)
				return true
			}
			return false
		},
		Realm:      cfg.Realm,
		Authorizer: cfg.Users.Authenticate,
	})
}

// validAPIKey compares in constant time. An empty expected key never matches.
func validAPIKey(expected, got string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

// Resolve returns a middleware that loads the Principal for the basic auth username.
// It must be registered right after New.
func Resolve(users Users) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals(localsKey).(Principal); ok {
			return c.Next()
		}
		username, _ := c.Locals("username").(string)
		p, ok := users.Principal(username)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown user", "code": "unauthorized"})
		}
		c.Locals(localsKey, p)
		return c.Next()
	}
}

// FromContext returns the Principal stored by the middleware.
func FromContext(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(localsKey).(Principal)
	return p, ok
}

// WithPrincipal stores p in the context.
func WithPrincipal(c *fiber.Ctx, p Principal) {
	c.Locals(localsKey, p)
}

// RequireRole rejects requests whose principal does not have one of roles.
func RequireRole(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := FromContext(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not authenticated", "code": "unauthorized"})
		}
		for _, r := range roles {
			if p.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "role " + string(p.Role) + " is not allowed", "code": "forbidden"})
	}
}
