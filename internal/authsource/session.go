package authsource

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/access-gate/internal/auth"
	"github.com/spec-kit/access-gate/internal/domain"
	"github.com/spec-kit/access-gate/internal/session"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

// SessionGetter loads the server-side session record for a token.
type SessionGetter interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// UserGetter loads the identity named by a session.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// SessionSource resolves a bearer token into an AuthStatus. It starts in the
// pending phase and emits exactly once per Resolve call. Every resolution
// failure maps to unauthenticated: the source never fails open.
type SessionSource struct {
	token    string
	tokens   TokenParser
	sessions SessionGetter
	users    UserGetter
	logger   *zap.Logger

	listeners *listenerSet
}

// NewSessionSource builds a source for one request's bearer token.
func NewSessionSource(token string, tokens TokenParser, sessions SessionGetter, users UserGetter, logger *zap.Logger) *SessionSource {
	return &SessionSource{
		token:     token,
		tokens:    tokens,
		sessions:  sessions,
		users:     users,
		logger:    logger,
		listeners: newListenerSet(domain.StatusPending()),
	}
}

// Current returns the latest status snapshot.
func (s *SessionSource) Current() domain.AuthStatus {
	return s.listeners.Current()
}

// Subscribe registers a listener for status changes.
func (s *SessionSource) Subscribe(onChange func(domain.AuthStatus)) func() {
	return s.listeners.Subscribe(onChange)
}

// Resolve performs the session check and emits the outcome to listeners.
func (s *SessionSource) Resolve(ctx context.Context) {
	s.listeners.emit(s.resolve(ctx))
}

func (s *SessionSource) resolve(ctx context.Context) domain.AuthStatus {
	if strings.TrimSpace(s.token) == "" {
		return domain.StatusUnauthenticated()
	}

	claims, err := s.tokens.ParseToken(s.token)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return domain.StatusUnauthenticated()
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		s.logger.Debug("session lookup failed", zap.String("session_id", claims.SessionID), zap.Error(err))
		return domain.StatusUnauthenticated()
	}
	if sess.UserID != claims.SubjectID {
		s.logger.Debug("session subject mismatch", zap.String("session_id", claims.SessionID))
		return domain.StatusUnauthenticated()
	}

	user, err := s.users.GetByID(ctx, claims.SubjectID)
	if err != nil {
		s.logger.Debug("user lookup failed", zap.String("user_id", claims.SubjectID), zap.Error(err))
		return domain.StatusUnauthenticated()
	}
	if user.Status != domain.UserStatusActive {
		s.logger.Debug("user not active", zap.String("user_id", user.ID))
		return domain.StatusUnauthenticated()
	}

	return domain.StatusAuthenticated(user)
}
