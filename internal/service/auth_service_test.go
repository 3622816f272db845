package service_test

import (
	"testing"
	"time"

	"eduz_backend/internal/config"
	"eduz_backend/internal/model"
	"eduz_backend/internal/repository"
	"eduz_backend/internal/service"
	"eduz_backend/internal/util"

	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*service.AuthService, *config.Config) {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour

	return service.NewAuthService(repository.NewUserRepository(db), cfg), cfg
}

func TestRegisterForcesStudentRole(t *testing.T) {
	svc, _ := newAuthService(t)

	user := &model.User{
		Name:     "Manka",
		Email:    "manka@example.com",
		Password: "secret123",
		Role:     model.Admin, // must not be honored
	}
	require.NoError(t, svc.Register(user))
	require.Equal(t, model.Student, user.Role)
	require.NotEqual(t, "secret123", user.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	first := &model.User{Name: "Manka", Email: "manka@example.com", Password: "secret123"}
	require.NoError(t, svc.Register(first))

	second := &model.User{Name: "Other", Email: "manka@example.com", Password: "different"}
	require.ErrorIs(t, svc.Register(second), util.ErrEmailRegistered)
}

func TestLogin(t *testing.T) {
	svc, cfg := newAuthService(t)

	user := &model.User{Name: "Manka", Email: "manka@example.com", Password: "secret123"}
	require.NoError(t, svc.Register(user))

	token, loggedIn, err := svc.Login("manka@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, user.ID, loggedIn.ID)

	claims, err := util.ParseJWT(token, cfg.JWT.Secret)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, model.Student, claims.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	user := &model.User{Name: "Manka", Email: "manka@example.com", Password: "secret123"}
	require.NoError(t, svc.Register(user))

	_, _, err := svc.Login("manka@example.com", "wrong")
	require.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "secret123")
	require.ErrorIs(t, err, util.ErrInvalidCredentials)
}
