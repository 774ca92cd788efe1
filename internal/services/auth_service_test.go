package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpro_backend/internal/models"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.container.AuthService.Register(env.db, &dto.RegisterRequest{
		Username: "newcomer",
		Email:    "newcomer@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.UserRoleRegular, resp.User.Role)

	login, err := env.container.AuthService.Login(env.db, &dto.LoginRequest{
		Email:    "newcomer@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = env.container.AuthService.Login(env.db, &dto.LoginRequest{
		Email:    "newcomer@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
}

func TestRegister_ProfessionalFlagGrantsPowerRole(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.container.AuthService.Register(env.db, &dto.RegisterRequest{
		Username:     "specialist",
		Email:        "specialist@example.com",
		Password:     "sup3rsecret",
		Professional: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRolePower, resp.User.Role)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "existing", models.UserRoleRegular)

	_, err := env.container.AuthService.Register(env.db, &dto.RegisterRequest{
		Username: "another",
		Email:    "existing@example.com",
		Password: "sup3rsecret",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestLogin_BannedUserRejected(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", models.UserRoleAdmin)

	resp, err := env.container.AuthService.Register(env.db, &dto.RegisterRequest{
		Username: "troll",
		Email:    "troll@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	require.NoError(t, env.container.UserService.BanUser(env.db, admin.Role, resp.User.ID, "trolling"))

	_, err = env.container.AuthService.Login(env.db, &dto.LoginRequest{
		Email:    "troll@example.com",
		Password: "sup3rsecret",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestLogin_SuspendedUserRejected(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.container.AuthService.Register(env.db, &dto.RegisterRequest{
		Username: "dormant",
		Email:    "dormant@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	user, err := env.userRepo.FindByID(env.db, resp.User.ID)
	require.NoError(t, err)
	user.Status = models.UserStatusSuspended
	require.NoError(t, env.userRepo.Update(env.db, user))

	_, err = env.container.AuthService.Login(env.db, &dto.LoginRequest{
		Email:    "dormant@example.com",
		Password: "sup3rsecret",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)
}
