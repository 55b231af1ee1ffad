// Package gate implements the per-view access gate: it observes an
// authentication status source, derives an authorization decision, fires
// navigation and notification side effects on status transitions, and maps
// the latest decision to a render outcome.
package gate

import (
	"sync"

	"github.com/spec-kit/access-gate/internal/authsource"
	"github.com/spec-kit/access-gate/internal/domain"
	"github.com/spec-kit/access-gate/internal/navigation"
	"github.com/spec-kit/access-gate/internal/notify"
)

// AccessDeniedMessage is the notification emitted on a role mismatch.
const AccessDeniedMessage = "Access denied. Insufficient permissions."

// Default navigation targets when the host application configures none.
const (
	DefaultLoginPath   = "/auth/login"
	DefaultLandingPath = "/dashboard"
)

// ViewKind identifies what the host should display.
type ViewKind int

const (
	ViewLoading ViewKind = iota
	ViewRedirecting
	ViewDenied
	ViewContent
)

// String returns a stable label for logs and responses.
func (k ViewKind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewRedirecting:
		return "redirecting"
	case ViewDenied:
		return "denied"
	case ViewContent:
		return "content"
	default:
		return "unknown"
	}
}

// View is the render outcome. Content is populated only for ViewContent; the
// protected payload is withheld on every other kind.
type View struct {
	Kind    ViewKind
	Content interface{}
}

// Config bundles the gate's collaborators and policy inputs. Source,
// Navigation and Notifications are required; Requirement is optional and
// immutable for the gate's lifetime.
type Config struct {
	Source        authsource.Source
	Navigation    navigation.Controller
	Notifications notify.Sink
	Requirement   *domain.Role
	Content       interface{}
	LoginPath     string
	LandingPath   string
}

// Gate guards one view. It owns nothing but its subscription handle and the
// last observed status, used to de-duplicate side effects on transitions.
type Gate struct {
	source        authsource.Source
	nav           navigation.Controller
	notifications notify.Sink
	requirement   *domain.Role
	content       interface{}
	loginPath     string
	landingPath   string

	mu          sync.Mutex
	last        *domain.AuthStatus
	unsubscribe func()
	mounted     bool
	closed      bool
}

// New builds a gate from the given configuration, applying default
// navigation targets where unset.
func New(cfg Config) *Gate {
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	landingPath := cfg.LandingPath
	if landingPath == "" {
		landingPath = DefaultLandingPath
	}
	return &Gate{
		source:        cfg.Source,
		nav:           cfg.Navigation,
		notifications: cfg.Notifications,
		requirement:   cfg.Requirement,
		content:       cfg.Content,
		loginPath:     loginPath,
		landingPath:   landingPath,
	}
}

// Mount applies the source's current status synchronously, then subscribes
// for subsequent changes. Mounting an already mounted gate is a no-op.
func (g *Gate) Mount() {
	g.mu.Lock()
	if g.closed || g.mounted {
		g.mu.Unlock()
		return
	}
	g.mounted = true
	g.mu.Unlock()

	g.apply(g.source.Current())

	unsubscribe := g.source.Subscribe(g.apply)

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		unsubscribe()
		return
	}
	g.unsubscribe = unsubscribe
	g.mu.Unlock()
}

// Unmount releases the subscription. Statuses delivered afterwards are
// ignored: no navigation or notification happens after teardown.
func (g *Gate) Unmount() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// apply records a newly observed status and fires the side-effect policy
// once per distinct transition. Repeated identical statuses are ignored.
func (g *Gate) apply(status domain.AuthStatus) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	if g.last != nil && g.last.Equal(status) {
		g.mu.Unlock()
		return
	}
	observed := status
	g.last = &observed
	g.mu.Unlock()

	switch Decide(status, g.requirement) {
	case DecisionDenyUnauthenticated:
		// Silent redirect; the render placeholder communicates it.
		g.nav.NavigateTo(g.loginPath)
	case DecisionDenyWrongRole:
		g.notifications.Warn(AccessDeniedMessage)
		g.nav.NavigateTo(g.landingPath)
	}
}

// Render maps the latest status snapshot to a view. It is pure over that
// snapshot and independent of whether any navigation side effect has
// completed; the protected payload is never exposed while the status is
// pending or denied.
func (g *Gate) Render() View {
	g.mu.Lock()
	var status domain.AuthStatus
	if g.last != nil {
		status = *g.last
	} else {
		status = g.source.Current()
	}
	g.mu.Unlock()

	switch Decide(status, g.requirement) {
	case DecisionDenyUnauthenticated:
		return View{Kind: ViewRedirecting}
	case DecisionDenyWrongRole:
		return View{Kind: ViewDenied}
	case DecisionAllow:
		return View{Kind: ViewContent, Content: g.content}
	default:
		return View{Kind: ViewLoading}
	}
}
