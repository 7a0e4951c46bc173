package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/session"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// AuthService handles login, logout, password recovery and password changes.
type AuthService struct {
	base
}

// NewAuthService constructs an AuthService.
func NewAuthService(deps Deps) *AuthService {
	return &AuthService{base: newBase(deps, "auth")}
}

// Login exchanges credentials for tokens and stores them under a new session
// id. The previous session, if any, is dropped.
func (s *AuthService) Login(ctx context.Context, previousSID string, form dto.LoginForm) (*dto.LoginResponse, string, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, "", err
	}
	res, _, err := s.api.Login(ctx, form)
	if err != nil {
		s.logger.Info("login refused", zap.Error(err))
		return nil, "", err
	}
	if res.AccessToken == "" || !res.TipoUsuario.Valid() {
		s.logger.Warn("login answer without usable credential", zap.String("userType", string(res.TipoUsuario)))
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, appErrors.GenericMessage)
	}

	s.sessions.ClearSession(ctx, previousSID)
	sid := s.sessions.NewID()
	rec := session.Record{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		Profile:      session.Profile{Name: res.Nombre, UserType: res.TipoUsuario},
	}
	if err := s.sessions.SetSession(ctx, sid, rec); err != nil {
		return nil, "", err
	}
	return &dto.LoginResponse{
		Name:     res.Nombre,
		UserType: string(res.TipoUsuario),
		Redirect: res.TipoUsuario.LandingPath(),
	}, sid, nil
}

// Logout invalidates the token server side when possible and always clears
// the local session.
func (s *AuthService) Logout(ctx context.Context, sid string) {
	if token, err := s.sessions.Token(ctx, sid); err == nil {
		if err := s.api.Logout(ctx, token); err != nil {
			s.logger.Warn("server logout failed", zap.Error(err))
		}
	}
	s.sessions.ClearSession(ctx, sid)
}

// Profile returns the cached profile of the session.
func (s *AuthService) Profile(ctx context.Context, sid string) (*session.Profile, error) {
	return s.sessions.Profile(ctx, sid)
}

// StartRecovery looks the account up and loads its security question.
func (s *AuthService) StartRecovery(ctx context.Context, form dto.RecoverStartForm) (*dto.RecoverState, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	ticket, _, err := s.api.StartRecovery(ctx, form)
	if err != nil {
		return nil, err
	}
	state := &dto.RecoverState{UserID: ticket.ID.String(), Email: form.Email}
	question, err := s.api.SecurityQuestion(ctx, state.UserID)
	if err != nil {
		return nil, err
	}
	state.PreguntaSeguridad = question.PreguntaSeguridad
	return state, nil
}

// SecurityQuestion resumes a recovery flow from its ticket id.
func (s *AuthService) SecurityQuestion(ctx context.Context, userID string) (*models.SecurityQuestion, error) {
	if userID == "" {
		return nil, appErrors.Validation(map[string]string{"recover": "El enlace de recuperación no es válido."})
	}
	return s.api.SecurityQuestion(ctx, userID)
}

// FinishRecovery answers the security question and sets the new password.
func (s *AuthService) FinishRecovery(ctx context.Context, form dto.RecoverFinishForm) (*Outcome, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	msg, err := s.api.FinishRecovery(ctx, form)
	if err != nil {
		return nil, err
	}
	if msg == "" {
		msg = "Contraseña actualizada correctamente."
	}
	return &Outcome{Message: msg, Notice: &models.Notice{Level: models.NoticeSuccess, Message: msg}}, nil
}

// ChangePassword changes the password of the logged in user.
func (s *AuthService) ChangePassword(ctx context.Context, sid string, form dto.ChangePasswordForm) (*Outcome, error) {
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindUpdate,
		Name:    "change_password",
		Payload: form,
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.ChangePassword(ctx, token, form)
		},
		Success: "Contraseña actualizada correctamente.",
	})
	return outcome(res, nil)
}

// Register creates a student account from the public sign-up form.
func (s *AuthService) Register(ctx context.Context, form dto.StudentRegistration) (*Outcome, error) {
	form.TipoUsuario = models.RoleStudent
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	msg, err := s.api.Register(ctx, "", form)
	if err != nil {
		s.logger.Info("registration refused", zap.Error(err))
		return nil, err
	}
	if msg == "" {
		msg = "Registro exitoso."
	}
	return &Outcome{Message: msg, Notice: &models.Notice{Level: models.NoticeSuccess, Message: msg}}, nil
}
