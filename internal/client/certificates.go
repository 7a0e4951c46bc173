package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// CertificateOverview loads the admin certificate screen. Unlike the other
// endpoints its payload sits directly in body.
func (c *Client) CertificateOverview(ctx context.Context, token string) (*models.CertificateOverview, error) {
	resp, err := c.do(ctx, call{op: "certificates.overview", method: http.MethodGet, path: "/api/certificates/", token: token})
	if err != nil {
		return nil, err
	}
	var out models.CertificateOverview
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &out); err != nil {
			return nil, appErrors.Upstream(http.StatusBadGateway, "", fmt.Errorf("decode certificates.overview: %w", err))
		}
	}
	return &out, nil
}

// StudentCertificates lists the certificates of the logged in student.
func (c *Client) StudentCertificates(ctx context.Context, token string) ([]models.Certificate, error) {
	var out []models.Certificate
	_, err := c.fetch(ctx, call{op: "certificates.student", method: http.MethodGet, path: "/api/certificates/student/", token: token}, &out)
	return out, err
}

// CreateCertificate issues a certificate for a student in a section.
func (c *Client) CreateCertificate(ctx context.Context, token string, studentID, sectionID models.ID, form dto.CertificateForm) (*models.Certificate, string, error) {
	path := "/api/certificates/student/" + studentID.String() + "/seccion/" + sectionID.String()
	var out models.Certificate
	msg, err := c.fetch(ctx, call{op: "certificates.create", method: http.MethodPost, path: path, token: token, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// UpdateCertificate edits a certificate.
func (c *Client) UpdateCertificate(ctx context.Context, token string, id models.ID, form dto.CertificateForm) (*models.Certificate, string, error) {
	var out models.Certificate
	msg, err := c.fetch(ctx, call{op: "certificates.update", method: http.MethodPatch, path: "/api/certificates/" + id.String(), token: token, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// DeleteCertificate deletes a certificate.
func (c *Client) DeleteCertificate(ctx context.Context, token string, id models.ID) (string, error) {
	resp, err := c.do(ctx, call{op: "certificates.delete", method: http.MethodDelete, path: "/api/certificates/" + id.String(), token: token})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// CertificatePDF downloads the printable certificate.
func (c *Client) CertificatePDF(ctx context.Context, token string, id models.ID) ([]byte, string, error) {
	return c.Download(ctx, "certificates.pdf", "/api/reportCertificates/"+id.String(), token)
}
