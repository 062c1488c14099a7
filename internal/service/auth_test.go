package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aishield/internal/models"
	"aishield/internal/repository"
)

type stubAuthRepo struct {
	users map[string]*models.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: map[string]*models.User{}}
}

func (s *stubAuthRepo) CreateUser(user *models.User) error {
	s.users[user.Email] = user
	return nil
}

func (s *stubAuthRepo) GetUserByEmail(email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func newTestAuthService(repo repository.AuthRepository) AuthService {
	return NewAuthService(repo, []byte("test-secret"), time.Hour, zap.NewNop())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register("user@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "user@example.com", user.Email)
	assert.NotContains(t, user.PasswordHash, "correct horse battery")
	assert.Contains(t, user.PasswordHash, "$argon2id$")

	token, expiresAt, err := svc.Login("user@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())

	_, err := svc.Register("user@example.com", "password-one")
	require.NoError(t, err)

	_, err = svc.Register("user@example.com", "password-two")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo())
	_, err := svc.Register("user@example.com", "the right password")
	require.NoError(t, err)

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := svc.Login("user@example.com", "the wrong password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, _, err := svc.Login("nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestPasswordHashing(t *testing.T) {
	first, err := hashPassword("hunter2hunter2")
	require.NoError(t, err)
	second, err := hashPassword("hunter2hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "salts must differ between hashes")
	assert.True(t, verifyPassword(first, "hunter2hunter2"))
	assert.True(t, verifyPassword(second, "hunter2hunter2"))
	assert.False(t, verifyPassword(first, "hunter3hunter3"))
	assert.False(t, verifyPassword("not-a-hash", "hunter2hunter2"))
}
