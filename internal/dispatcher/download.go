package dispatcher

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// PDFSource fetches rendered certificates.
type PDFSource interface {
	CertificatePDF(ctx context.Context, token string, id models.ID) ([]byte, string, error)
}

// File is a binary payload ready to be served as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// DownloadCertificate fetches the PDF of certificate id. Any failure yields
// the generic download error and no bytes.
func (d *Dispatcher) DownloadCertificate(ctx context.Context, sid string, id models.ID) (*File, error) {
	token, err := d.Token(ctx, sid, "download_certificate")
	if err != nil {
		return nil, err
	}
	if d.pdf == nil {
		return nil, appErrors.ErrDownload
	}
	data, contentType, err := d.pdf.CertificatePDF(ctx, token, id)
	if err != nil || len(data) == 0 {
		d.logger.Warn("certificate download failed", zap.String("certificate", id.String()), zap.Error(err))
		return nil, appErrors.Clone(appErrors.ErrDownload, "")
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &File{Name: models.CertificateFilename, ContentType: contentType, Data: data}, nil
}
