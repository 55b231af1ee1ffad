package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/access-gate/internal/authsource"
	"github.com/spec-kit/access-gate/internal/config"
	"github.com/spec-kit/access-gate/internal/domain"
	"github.com/spec-kit/access-gate/internal/notify"
	"github.com/spec-kit/access-gate/internal/observability"
)

type guardFixture struct {
	app      *fiber.App
	metrics  *observability.Metrics
	warnings []string
}

func newGuardFixture(t *testing.T, status domain.AuthStatus) *guardFixture {
	t.Helper()

	f := &guardFixture{
		app:     fiber.New(),
		metrics: observability.NewMetrics(),
	}

	factory := func(c *fiber.Ctx) authsource.Source {
		return authsource.NewStaticSource(status)
	}
	sink := notify.SinkFunc(func(message string) {
		f.warnings = append(f.warnings, message)
	})
	guard := NewViewGuard(factory, sink, nil, f.metrics, zap.NewNop(), config.RoutesConfig{
		LoginPath:   "/auth/login",
		LandingPath: "/dashboard",
	})

	admin := domain.RoleAdmin
	f.app.Get("/admin", guard.Protect(&admin, func(c *fiber.Ctx, user *domain.User) interface{} {
		return fiber.Map{"operator": user.Name}
	}))
	f.app.Get("/dashboard", guard.Protect(nil, func(c *fiber.Ctx, user *domain.User) interface{} {
		return fiber.Map{"user_id": user.ID}
	}))
	return f
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	f := newGuardFixture(t, domain.StatusAuthenticated(&domain.User{ID: "u1", Name: "Ada", Role: domain.RoleAdmin}))

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.Empty(t, f.warnings)
	assert.Equal(t, int64(1), f.metrics.DecisionCount("/admin", "content"))
}

func TestGuardRedirectsUnauthenticatedToLogin(t *testing.T) {
	f := newGuardFixture(t, domain.StatusUnauthenticated())

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
	assert.Empty(t, f.warnings, "login redirect is silent")
	assert.Equal(t, int64(1), f.metrics.DecisionCount("/admin", "redirecting"))
}

func TestGuardDeniesWrongRole(t *testing.T) {
	f := newGuardFixture(t, domain.StatusAuthenticated(&domain.User{ID: "u1", Role: domain.RoleIndividual}))

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	assert.Equal(t, "Access denied. Insufficient permissions.", resp.Header.Get("X-Access-Warning"))
	require.Len(t, f.warnings, 1)
	assert.Equal(t, int64(1), f.metrics.DecisionCount("/admin", "denied"))
}

func TestGuardAdmitsAnyAuthenticatedUserWithoutRequirement(t *testing.T) {
	f := newGuardFixture(t, domain.StatusAuthenticated(&domain.User{ID: "u9", Role: domain.RoleIndustrial}))

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuardReportsPendingAsLoading(t *testing.T) {
	// A static source has no Resolve step, so the status stays pending.
	f := newGuardFixture(t, domain.StatusPending())

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.Equal(t, int64(1), f.metrics.DecisionCount("/admin", "loading"))
}

func TestBearerToken(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/probe", func(c *fiber.Ctx) error {
		got = bearerToken(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Basic abc123")
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	req = httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie-token"})
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "cookie-token", got)
}
