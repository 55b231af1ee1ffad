package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/access-gate/internal/config"
	"github.com/spec-kit/access-gate/internal/domain"
	"github.com/spec-kit/access-gate/internal/session"
)

type memoryUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.nextID++
	user.ID = fmt.Sprintf("u%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type memorySessionStore struct {
	created []*session.Session
	deleted []string
	nextID  int
}

func (s *memorySessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (*session.Session, error) {
	s.nextID++
	sess := &session.Session{
		ID:        fmt.Sprintf("s%d", s.nextID),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	s.created = append(s.created, sess)
	return sess, nil
}

func (s *memorySessionStore) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestService() (*AuthService, *memoryUserRepo, *memorySessionStore) {
	users := newMemoryUserRepo()
	sessions := &memorySessionStore{}
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret",
			SessionTTLMinutes: 5,
			BcryptCost:        4,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:     users,
		SessionStore: sessions,
	})
	return svc, users, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	user, token, exp, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "pw123456", domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))
	require.Len(t, sessions.created, 1)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.SubjectID)
	assert.Equal(t, sessions.created[0].ID, claims.SessionID)

	loggedIn, token2, _, err := svc.LoginUser(ctx, "ada@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token2)
	assert.Len(t, sessions.created, 2)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, _, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "pw123456", domain.RoleIndividual)
	require.NoError(t, err)

	_, _, _, err = svc.RegisterUser(ctx, "Eve", "ada@example.com", "pw654321", domain.RoleIndividual)
	require.Error(t, err)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, _, err := svc.RegisterUser(context.Background(), "Ada", "ada@example.com", "pw123456", domain.Role("SUPERUSER"))
	require.Error(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, _, err := svc.LoginUser(ctx, "missing@example.com", "pw123456")
	require.Error(t, err)

	_, _, _, err = svc.RegisterUser(ctx, "Ada", "ada@example.com", "pw123456", domain.RoleIndividual)
	require.NoError(t, err)

	_, _, _, err = svc.LoginUser(ctx, "ada@example.com", "wrong-password")
	require.Error(t, err)
}

func TestLoginRejectsSuspendedAccount(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	user, _, _, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "pw123456", domain.RoleIndividual)
	require.NoError(t, err)

	user.Status = domain.UserStatusSuspended
	require.NoError(t, users.Update(ctx, user))

	_, _, _, err = svc.LoginUser(ctx, "ada@example.com", "pw123456")
	require.Error(t, err)
}

func TestLogout(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	_, token, _, err := svc.RegisterUser(ctx, "Ada", "ada@example.com", "pw123456", domain.RoleIndividual)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	require.Len(t, sessions.deleted, 1)
	assert.Equal(t, sessions.created[0].ID, sessions.deleted[0])

	// An invalid token is a no-op, not an error.
	require.NoError(t, svc.Logout(ctx, "garbage"))
	assert.Len(t, sessions.deleted, 1)
}
