package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/access-gate/internal/authsource"
	"github.com/spec-kit/access-gate/internal/config"
	"github.com/spec-kit/access-gate/internal/domain"
	"github.com/spec-kit/access-gate/internal/events"
	"github.com/spec-kit/access-gate/internal/gate"
	"github.com/spec-kit/access-gate/internal/navigation"
	"github.com/spec-kit/access-gate/internal/notify"
	"github.com/spec-kit/access-gate/internal/observability"
)

// warningHeader carries the gate's notification back to the client alongside
// the redirect.
const warningHeader = "X-Access-Warning"

// SourceFactory builds the authentication status source for one request.
type SourceFactory func(c *fiber.Ctx) authsource.Source

// Resolver is a source that performs its status resolution on demand.
type Resolver interface {
	authsource.Source
	Resolve(ctx context.Context)
}

// ContentFunc produces the protected payload once access is allowed.
type ContentFunc func(c *fiber.Ctx, user *domain.User) interface{}

// ViewGuard mounts one access gate per guarded request and maps its render
// outcome to an HTTP response.
type ViewGuard struct {
	sources    SourceFactory
	sink       notify.Sink
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	routes     config.RoutesConfig
}

// NewViewGuard constructs the guard. The dispatcher is optional; when set,
// silent login redirects are published as events for downstream handlers.
func NewViewGuard(sources SourceFactory, sink notify.Sink, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger, routes config.RoutesConfig) *ViewGuard {
	return &ViewGuard{
		sources:    sources,
		sink:       sink,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		routes:     routes,
	}
}

// Protect returns a handler that gates the content behind the optional role
// requirement. The content function runs only when the gate allows access.
func (g *ViewGuard) Protect(requirement *domain.Role, content ContentFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		source := g.sources(c)

		accessGate := gate.New(gate.Config{
			Source:        source,
			Navigation:    &redirectController{ctx: c},
			Notifications: notify.MultiSink{g.sink, &headerSink{ctx: c}},
			Requirement:   requirement,
			Content:       content,
			LoginPath:     g.routes.LoginPath,
			LandingPath:   g.routes.LandingPath,
		})
		accessGate.Mount()
		defer accessGate.Unmount()

		if resolver, ok := source.(Resolver); ok {
			resolver.Resolve(c.UserContext())
		}

		view := accessGate.Render()
		g.metrics.RecordDecision(c.Path(), view.Kind.String())

		switch view.Kind {
		case gate.ViewContent:
			payload := view.Content.(ContentFunc)(c, source.Current().User)
			return c.JSON(fiber.Map{"data": payload})
		case gate.ViewRedirecting:
			// Location is already set by the navigation controller.
			g.publishLoginRedirect(c)
			return c.JSON(fiber.Map{"view": view.Kind.String()})
		case gate.ViewDenied:
			return c.JSON(fiber.Map{
				"view":    view.Kind.String(),
				"message": gate.AccessDeniedMessage,
			})
		default:
			return c.Status(http.StatusAccepted).JSON(fiber.Map{"view": view.Kind.String()})
		}
	}
}

func (g *ViewGuard) publishLoginRedirect(c *fiber.Ctx) {
	if g.dispatcher == nil {
		return
	}
	_ = g.dispatcher.Publish(c.UserContext(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLoginRedirected,
		Timestamp: time.Now(),
		Payload:   events.LoginRedirectedPayload{Path: c.Path()},
	})
}

// redirectController maps gate navigation onto an HTTP redirect.
type redirectController struct {
	ctx *fiber.Ctx
}

var _ navigation.Controller = (*redirectController)(nil)

// NavigateTo sets a see-other redirect on the response. Fire-and-forget.
func (r *redirectController) NavigateTo(path string) {
	_ = r.ctx.Redirect(path, fiber.StatusSeeOther)
}

// headerSink surfaces gate warnings to the client as a response header.
type headerSink struct {
	ctx *fiber.Ctx
}

// Warn implements notify.Sink.
func (h *headerSink) Warn(message string) {
	h.ctx.Set(warningHeader, message)
}

// NewSessionSourceFactory builds per-request session sources from the
// request's bearer token.
func NewSessionSourceFactory(tokens authsource.TokenParser, sessions authsource.SessionGetter, users authsource.UserGetter, logger *zap.Logger) SourceFactory {
	return func(c *fiber.Ctx) authsource.Source {
		return authsource.NewSessionSource(bearerToken(c), tokens, sessions, users, logger)
	}
}

// bearerToken extracts the session token from the Authorization header,
// falling back to the access_token cookie for browser navigation.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Cookies("access_token")
}
