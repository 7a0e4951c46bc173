package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/pkg/config"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
	"github.com/noah-isme/educa-portal/pkg/middleware/requestid"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]interface{}{"message": message}
	if data != nil {
		body["data"] = data
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"status": status, "body": body})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.APIConfig{BaseURL: srv.URL + "/", Timeout: time.Second}, zap.NewNop())
}

type recordingObserver struct {
	ops []string
}

func (r *recordingObserver) ObserveUpstream(op string, _ int, _ time.Duration) {
	r.ops = append(r.ops, op)
}

func TestSectionsDecodesEnvelopeAndSendsBearer(t *testing.T) {
	var gotAuth, gotReqID, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		writeEnvelope(w, http.StatusOK, "ok", []map[string]interface{}{
			{"id": 1, "codigo": "PROG101-A", "capacidad": 30, "salon": "A1", "cursoId": "7", "profesorId": 3},
		})
	})
	obs := &recordingObserver{}
	c.observer = obs

	ctx := requestid.WithContext(context.Background(), "req-1")
	sections, err := c.Sections(ctx, "tok", 7)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "PROG101-A", sections[0].Codigo)
	assert.Equal(t, models.ID(7), sections[0].CursoID)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "req-1", gotReqID)
	assert.Equal(t, "/api/secciones/7", gotPath)
	assert.Equal(t, []string{"sections.list"}, obs.ops)
}

func TestMissingCredentialIssuesNoRequest(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeEnvelope(w, http.StatusOK, "", nil)
	})

	_, err := c.Enrollments(context.Background(), "")
	assert.ErrorIs(t, err, appErrors.ErrMissingCredential)
	_, err = c.DeleteEnrollment(context.Background(), "", 4)
	assert.ErrorIs(t, err, appErrors.ErrMissingCredential)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, "La sección está llena", nil)
	})

	_, _, err := c.CreateEnrollment(context.Background(), "tok", dto.EnrollmentForm{ReferenciaPago: "#1"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "La sección está llena", appErrors.UserMessage(err))
	assert.True(t, IsServerRejection(err))
}

func TestErrorWithoutMessageFallsBackToGeneric(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "boom")
	})

	_, err := c.ApproveEnrollment(context.Background(), "tok", 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.GenericMessage, appErrors.UserMessage(err))
}

func TestUnreachableIsNotServerRejection(t *testing.T) {
	c := New(config.APIConfig{BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond}, nil)

	_, err := c.DeleteEnrollment(context.Background(), "tok", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUnreachable)
	assert.False(t, IsServerRejection(err))
}

func TestLoginIsPublic(t *testing.T) {
	var gotAuth string
	var gotBody dto.LoginForm
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeEnvelope(w, http.StatusOK, "Bienvenido", map[string]interface{}{
			"accessToken": "a", "refreshToken": "r", "nombre": "Ana", "tipoUsuario": "profesor",
		})
	})

	res, msg, err := c.Login(context.Background(), dto.LoginForm{Email: "ana@educa.test", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Bienvenido", msg)
	assert.Equal(t, models.RoleTeacher, res.TipoUsuario)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "ana@educa.test", gotBody.Email)
}

func TestCertificateOverviewReadsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":200,"body":{"message":"ok",
			"cursos":[{"id":1,"nombre":"Programación","codigo":"PROG101"}],
			"secciones":{"1":[{"id":10,"codigo":"PROG101-A"}]},
			"estudiantes":{"10":[{"id":5,"nombre":"Ana","estado":"Aprobado"}]},
			"certificados":[{"id":2,"titulo":"Curso","codigoSeccion":"PROG101-A"}]}}`)
	})

	ov, err := c.CertificateOverview(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, ov.Cursos, 1)
	assert.Equal(t, "PROG101-A", ov.Secciones["1"][0].Codigo)
	assert.Equal(t, models.StudentPassed, ov.Estudiantes["10"][0].Status())
	assert.Len(t, ov.Certificados, 1)
}

func TestUpdateScheduleWireFormat(t *testing.T) {
	var body map[string]interface{}
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeEnvelope(w, http.StatusOK, "Horario actualizado", map[string]interface{}{
			"id": 3, "fechaInicio": "2024-09-01", "fechaFinal": "2024-12-15", "horaInicio": "08:00", "horaFinal": "10:00",
			"diasRepeticion": []string{"lunes"}, "tipo": "Presencial",
		})
	})

	sched, _, err := c.UpdateSchedule(context.Background(), "tok", 1, 2, dto.ScheduleForm{
		FechaInicio: "2024-09-01", FechaFin: "2024-12-15", HoraInicio: "08:00", HoraFin: "10:00",
		DiasRepeticion: []models.Weekday{models.Monday}, Tipo: models.ModalityInPerson,
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/schedules/1/secciones/2/horario", path)
	assert.Equal(t, "2024-09-01T00:00:00.000Z", body["fechaInicio"])
	assert.Equal(t, "2024-12-15T00:00:00.000Z", body["fechaFinal"])
	assert.Equal(t, "10:00", body["horaFinal"])
	assert.Equal(t, "2", body["seccionId"])
	assert.Equal(t, "2024-12-15", sched.FechaFin)
	assert.Equal(t, "10:00", sched.HoraFin)
}

func TestCertificatePDF(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reportCertificates/8" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	data, ct, err := c.CertificatePDF(context.Background(), "tok", 8)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	data, _, err = c.CertificatePDF(context.Background(), "tok", 9)
	assert.ErrorIs(t, err, appErrors.ErrDownload)
	assert.Nil(t, data)
}
