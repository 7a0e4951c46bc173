package client

import (
	"context"
	"net/http"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
)

// Login exchanges credentials for tokens and the user profile.
func (c *Client) Login(ctx context.Context, form dto.LoginForm) (*models.LoginResult, string, error) {
	var out models.LoginResult
	msg, err := c.fetch(ctx, call{op: "auth.login", method: http.MethodPost, path: "/api/auth/login", public: true, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// VerifyToken asks the API whether token is still valid.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{op: "auth.verify", method: http.MethodGet, path: "/api/auth/verify-token", token: token})
	return err
}

// Logout invalidates the session server side.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, call{op: "auth.logout", method: http.MethodGet, path: "/api/auth/logout", token: token})
	return err
}

// Register creates a student or teacher account; payload carries tipoUsuario.
func (c *Client) Register(ctx context.Context, token string, payload interface{}) (string, error) {
	resp, err := c.do(ctx, call{op: "auth.register", method: http.MethodPost, path: "/api/auth/register", token: token, public: true, body: payload})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ChangePassword updates the password of the token owner.
func (c *Client) ChangePassword(ctx context.Context, token string, form dto.ChangePasswordForm) (string, error) {
	resp, err := c.do(ctx, call{op: "auth.change_password", method: http.MethodPatch, path: "/api/auth/changePassword", token: token, body: form})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
