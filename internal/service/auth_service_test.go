package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

func TestLoginReplacesSessionAndReturnsLanding(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodPost, "/api/auth/login", http.StatusOK, "Bienvenido", map[string]interface{}{
		"accessToken": "abc", "refreshToken": "def", "nombre": "Luis", "tipoUsuario": "profesor",
	})
	deps := newDeps(t, api, models.RoleStudent)
	svc := NewAuthService(deps)

	res, sid, err := svc.Login(context.Background(), testSID, dto.LoginForm{Email: "luis@educa.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "/teacher/dashboard", res.Redirect)
	assert.Equal(t, "Luis", res.Name)
	assert.NotEqual(t, testSID, sid)

	_, err = deps.Sessions.Token(context.Background(), testSID)
	assert.ErrorIs(t, err, appErrors.ErrMissingCredential)
	token, err := deps.Sessions.Token(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	profile, err := deps.Sessions.Profile(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, profile.UserType)
}

func TestLoginWithInvalidFormSendsNothing(t *testing.T) {
	api := newFakeAPI()
	svc := NewAuthService(newDeps(t, api, models.RoleStudent))

	_, _, err := svc.Login(context.Background(), "", dto.LoginForm{Email: "no-es-correo", Password: ""})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "password")
	assert.Zero(t, api.callCount())
}

func TestLoginRefusedKeepsServerMessage(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodPost, "/api/auth/login", http.StatusUnauthorized, "Credenciales inválidas", nil)
	svc := NewAuthService(newDeps(t, api, models.RoleStudent))

	_, _, err := svc.Login(context.Background(), "", dto.LoginForm{Email: "ana@educa.com", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "Credenciales inválidas", appErrors.UserMessage(err))
}

func TestLogoutClearsSessionWhenServerFails(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodGet, "/api/auth/logout", http.StatusInternalServerError, "", nil)
	deps := newDeps(t, api, models.RoleAdmin)

	NewAuthService(deps).Logout(context.Background(), testSID)

	assert.True(t, api.called(http.MethodGet, "/api/auth/logout"))
	_, err := deps.Sessions.Profile(context.Background(), testSID)
	assert.ErrorIs(t, err, appErrors.ErrNoSession)
}

func TestRegisterSendsStudentRole(t *testing.T) {
	api := newFakeAPI()
	api.reply(http.MethodPost, "/api/auth/register", http.StatusCreated, "Usuario registrado", nil)
	svc := NewAuthService(newDeps(t, api, models.RoleStudent))

	out, err := svc.Register(context.Background(), dto.StudentRegistration{
		StudentForm: dto.StudentForm{Nombre: "Ana", Apellido: "Pérez", Cedula: "12345678", Email: "ana@educa.com", TipoUsuario: models.RoleAdmin},
		Password:    "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Usuario registrado", out.Message)
	assert.Equal(t, "estudiante", api.sent(t, http.MethodPost, "/api/auth/register")["tipoUsuario"])
}

func TestChangePasswordMismatchSendsNothing(t *testing.T) {
	api := newFakeAPI()
	svc := NewAuthService(newDeps(t, api, models.RoleStudent))

	_, err := svc.ChangePassword(context.Background(), testSID, dto.ChangePasswordForm{
		CurrentPassword: "viejo", NewPassword: "nuevo123", ConfirmPassword: "otro123",
	})
	require.Error(t, err)
	assert.Equal(t, "Las contraseñas no coinciden.", appErrors.FromError(err).Fields["confirmPassword"])
	assert.Zero(t, api.callCount())
}
