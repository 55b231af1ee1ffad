package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/access-gate/internal/domain"
)

// ViewsHandler produces the protected payloads for guarded routes. Each
// method is a content function: it runs only after the gate allows access.
type ViewsHandler struct {
	serviceName string
}

// NewViewsHandler constructs handler.
func NewViewsHandler(serviceName string) *ViewsHandler {
	return &ViewsHandler{serviceName: serviceName}
}

// Dashboard is the default landing view for any authenticated user.
func (h *ViewsHandler) Dashboard(c *fiber.Ctx, user *domain.User) interface{} {
	return fiber.Map{
		"view":    "dashboard",
		"service": h.serviceName,
		"user": fiber.Map{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		},
		"generated_at": time.Now().UTC(),
	}
}

// AdminPanel requires the ADMIN role.
func (h *ViewsHandler) AdminPanel(c *fiber.Ctx, user *domain.User) interface{} {
	return fiber.Map{
		"view":     "admin",
		"operator": user.Name,
		"sections": []string{"users", "sessions", "audit"},
	}
}

// IndustrialConsole requires the INDUSTRIAL role.
func (h *ViewsHandler) IndustrialConsole(c *fiber.Ctx, user *domain.User) interface{} {
	return fiber.Map{
		"view":     "industrial",
		"operator": user.Name,
		"sections": []string{"fleet", "telemetry", "contracts"},
	}
}

// Account requires the INDIVIDUAL role.
func (h *ViewsHandler) Account(c *fiber.Ctx, user *domain.User) interface{} {
	return fiber.Map{
		"view": "account",
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	}
}
