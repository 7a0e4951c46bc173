package dispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

type pdfStub struct {
	data  []byte
	err   error
	token string
}

func (p *pdfStub) CertificatePDF(_ context.Context, token string, _ models.ID) ([]byte, string, error) {
	p.token = token
	return p.data, "application/pdf", p.err
}

func TestDownloadCertificate(t *testing.T) {
	src := &pdfStub{data: []byte("%PDF-1.4")}
	d := New(tokens{"sid": "tok"}, nil, zap.NewNop(), WithPDFSource(src))

	file, err := d.DownloadCertificate(context.Background(), "sid", 9)

	require.NoError(t, err)
	assert.Equal(t, "tok", src.token)
	assert.Equal(t, "Certificado.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), file.Data)
}

func TestDownloadCertificateFailureHasNoBytes(t *testing.T) {
	src := &pdfStub{data: []byte("%PDF-partial"), err: errors.New("reset by peer")}
	d := New(tokens{"sid": "tok"}, nil, zap.NewNop(), WithPDFSource(src))

	file, err := d.DownloadCertificate(context.Background(), "sid", 9)

	assert.Nil(t, file)
	assert.ErrorIs(t, err, appErrors.ErrDownload)
	assert.Equal(t, "No se ha podido descargar el certificado.", appErrors.UserMessage(err))
}

func TestDownloadCertificateNeedsCredential(t *testing.T) {
	src := &pdfStub{}
	d := New(tokens{}, nil, zap.NewNop(), WithPDFSource(src))

	_, err := d.DownloadCertificate(context.Background(), "sid", 9)

	assert.ErrorIs(t, err, appErrors.ErrMissingCredential)
	assert.Empty(t, src.token)
}
