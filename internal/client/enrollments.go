package client

import (
	"context"
	"net/http"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
)

// Enrollments lists every enrollment (admin view).
func (c *Client) Enrollments(ctx context.Context, token string) ([]models.Enrollment, error) {
	var out []models.Enrollment
	_, err := c.fetch(ctx, call{op: "enrollments.list", method: http.MethodGet, path: "/api/inscripciones", token: token}, &out)
	return out, err
}

// CreateEnrollment submits an enrollment request.
func (c *Client) CreateEnrollment(ctx context.Context, token string, form dto.EnrollmentForm) (*models.Enrollment, string, error) {
	var out models.Enrollment
	msg, err := c.fetch(ctx, call{op: "enrollments.create", method: http.MethodPost, path: "/api/inscripciones/", token: token, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// DeleteEnrollment deletes an enrollment.
func (c *Client) DeleteEnrollment(ctx context.Context, token string, id models.ID) (string, error) {
	resp, err := c.do(ctx, call{op: "enrollments.delete", method: http.MethodDelete, path: "/api/inscripciones/" + id.String(), token: token})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ApproveEnrollment moves an enrollment to approved.
func (c *Client) ApproveEnrollment(ctx context.Context, token string, id models.ID) (string, error) {
	return c.transitionEnrollment(ctx, token, id, "aprobar")
}

// RejectEnrollment moves an enrollment to rejected.
func (c *Client) RejectEnrollment(ctx context.Context, token string, id models.ID) (string, error) {
	return c.transitionEnrollment(ctx, token, id, "no_aprobar")
}

func (c *Client) transitionEnrollment(ctx context.Context, token string, id models.ID, verb string) (string, error) {
	path := "/api/inscripciones/" + id.String() + "/" + verb
	resp, err := c.do(ctx, call{op: "enrollments." + verb, method: http.MethodGet, path: path, token: token})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
