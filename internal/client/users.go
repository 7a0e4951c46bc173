package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
)

// CurrentUser loads the profile of the token owner.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.CurrentUser, error) {
	var out models.CurrentUser
	if _, err := c.fetch(ctx, call{op: "users.current", method: http.MethodGet, path: "/api/users/current", token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCurrentUser saves the "change my data" form.
func (c *Client) UpdateCurrentUser(ctx context.Context, token string, form dto.ProfileForm) (string, error) {
	resp, err := c.do(ctx, call{op: "users.update_current", method: http.MethodPatch, path: "/api/users/current", token: token, body: form})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// StartRecovery begins the password recovery flow for an email.
func (c *Client) StartRecovery(ctx context.Context, form dto.RecoverStartForm) (*models.RecoverTicket, string, error) {
	var out models.RecoverTicket
	msg, err := c.fetch(ctx, call{op: "users.recover_start", method: http.MethodPatch, path: "/api/users/recover", public: true, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// SecurityQuestion loads the question for a recovery ticket.
func (c *Client) SecurityQuestion(ctx context.Context, userID string) (*models.SecurityQuestion, error) {
	var out models.SecurityQuestion
	path := "/api/users/recover/" + url.PathEscape(userID)
	if _, err := c.fetch(ctx, call{op: "users.recover_question", method: http.MethodGet, path: path, public: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FinishRecovery answers the security question and sets the new password.
func (c *Client) FinishRecovery(ctx context.Context, form dto.RecoverFinishForm) (string, error) {
	resp, err := c.do(ctx, call{op: "users.recover_finish", method: http.MethodPut, path: "/api/users/recover", public: true, body: form})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Statistics loads the admin dashboard figures.
func (c *Client) Statistics(ctx context.Context, token string) (*models.Statistics, error) {
	var out models.Statistics
	if _, err := c.fetch(ctx, call{op: "statistics.get", method: http.MethodGet, path: "/api/statistics/", token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
