package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/educa-portal/internal/cascade"
	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/guard"
	"github.com/noah-isme/educa-portal/internal/middleware"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/service"
	"github.com/noah-isme/educa-portal/internal/session"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

type responseEnvelope struct {
	Status int `json:"status"`
	Body   struct {
		Message string            `json:"message"`
		Data    json.RawMessage   `json:"data"`
		Code    string            `json:"code"`
		Fields  map[string]string `json:"fields"`
	} `json:"body"`
	Notice *models.Notice `json:"notice"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var env responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func testContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

type fakeAuthSrv struct {
	loginRes    *dto.LoginResponse
	loginSID    string
	loginErr    error
	previousSID string
	loggedOut   string
}

func (f *fakeAuthSrv) Login(_ context.Context, previousSID string, _ dto.LoginForm) (*dto.LoginResponse, string, error) {
	f.previousSID = previousSID
	return f.loginRes, f.loginSID, f.loginErr
}

func (f *fakeAuthSrv) Logout(_ context.Context, sid string) { f.loggedOut = sid }

func (f *fakeAuthSrv) Profile(context.Context, string) (*session.Profile, error) {
	return &session.Profile{Name: "Ana", UserType: models.RoleStudent}, nil
}

func (f *fakeAuthSrv) Register(context.Context, dto.StudentRegistration) (*service.Outcome, error) {
	return &service.Outcome{Message: "ok"}, nil
}

func (f *fakeAuthSrv) StartRecovery(context.Context, dto.RecoverStartForm) (*dto.RecoverState, error) {
	return &dto.RecoverState{UserID: "5"}, nil
}

func (f *fakeAuthSrv) SecurityQuestion(context.Context, string) (*models.SecurityQuestion, error) {
	return &models.SecurityQuestion{PreguntaSeguridad: "¿Color?"}, nil
}

func (f *fakeAuthSrv) FinishRecovery(context.Context, dto.RecoverFinishForm) (*service.Outcome, error) {
	return &service.Outcome{Message: "ok"}, nil
}

func (f *fakeAuthSrv) ChangePassword(context.Context, string, dto.ChangePasswordForm) (*service.Outcome, error) {
	return nil, appErrors.ErrMissingCredential
}

var testCookie = CookieConfig{Name: "educa_session", TTL: time.Hour}

func TestLoginSetsSessionCookie(t *testing.T) {
	srv := &fakeAuthSrv{loginRes: &dto.LoginResponse{Name: "Ana", UserType: "estudiante", Redirect: "/student/dashboard"}, loginSID: "new-sid"}
	h := NewAuthHandler(srv, testCookie)

	c, rec := testContext(http.MethodPost, "/portal/auth/login", map[string]string{"email": "ana@educa.com", "password": "x"})
	c.Set(middleware.ContextSessionKey, "old-sid")
	h.Login(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "old-sid", srv.previousSID)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "educa_session=new-sid")
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "HttpOnly")
	env := decode(t, rec)
	assert.Contains(t, string(env.Body.Data), "/student/dashboard")
}

func TestLoginMalformedBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuthSrv{}, testCookie)

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/portal/auth/login", bytes.NewBufferString("{"))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decode(t, rec).Body.Code)
}

func TestLoginRefusedCarriesNotice(t *testing.T) {
	srv := &fakeAuthSrv{loginErr: appErrors.Upstream(http.StatusUnauthorized, "Credenciales inválidas", nil)}
	h := NewAuthHandler(srv, testCookie)

	c, rec := testContext(http.MethodPost, "/portal/auth/login", map[string]string{"email": "ana@educa.com", "password": "x"})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Notice)
	assert.Equal(t, models.NoticeError, env.Notice.Level)
	assert.Equal(t, "Credenciales inválidas", env.Notice.Message)
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestLogoutClearsCookie(t *testing.T) {
	srv := &fakeAuthSrv{}
	h := NewAuthHandler(srv, testCookie)

	c, rec := testContext(http.MethodPost, "/portal/auth/logout", nil)
	c.Set(middleware.ContextSessionKey, "sid-1")
	h.Logout(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, "sid-1", srv.loggedOut)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestChangePasswordWithoutSessionHasNoNotice(t *testing.T) {
	h := NewAuthHandler(&fakeAuthSrv{}, testCookie)

	c, rec := testContext(http.MethodPatch, "/portal/auth/password", map[string]string{"currentPassword": "a"})
	h.ChangePassword(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, decode(t, rec).Notice)
}

type fakeCertificateSrv struct {
	file        *dispatcher.File
	downloadErr error
	overviewArg [2]models.ID
}

func (f *fakeCertificateSrv) Overview(_ context.Context, _ string, courseID, sectionID models.ID) (*service.CascadeView, error) {
	f.overviewArg = [2]models.ID{courseID, sectionID}
	return &service.CascadeView{Cursos: []models.Course{}, Seleccion: cascade.Snapshot{State: cascade.NoCourse}}, nil
}

func (f *fakeCertificateSrv) Create(context.Context, string, models.ID, models.ID, dto.CertificateForm) (*service.Outcome, error) {
	return &service.Outcome{Message: "creado", Notice: &models.Notice{Level: models.NoticeSuccess, Message: "creado"}}, nil
}

func (f *fakeCertificateSrv) Update(context.Context, string, models.ID, dto.CertificateForm) (*service.Outcome, error) {
	return &service.Outcome{}, nil
}

func (f *fakeCertificateSrv) Delete(context.Context, string, models.ID) (*service.Outcome, error) {
	return &service.Outcome{
		Message: "Certificado eliminado",
		Data:    []models.Certificate{{ID: 2}},
		Notice:  &models.Notice{Level: models.NoticeInfo, Message: "Certificado eliminado"},
	}, nil
}

func (f *fakeCertificateSrv) Download(context.Context, string, models.ID) (*dispatcher.File, error) {
	return f.file, f.downloadErr
}

func (f *fakeCertificateSrv) Mine(context.Context, string) ([]models.Certificate, error) {
	return []models.Certificate{}, nil
}

func TestDownloadServesAttachment(t *testing.T) {
	h := NewCertificateHandler(&fakeCertificateSrv{file: &dispatcher.File{Name: "Certificado.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}})

	c, rec := testContext(http.MethodGet, "/portal/admin/certificates/3/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	h.Download(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Certificado.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF", rec.Body.String())
}

func TestDownloadFailureHasNoPartialBody(t *testing.T) {
	h := NewCertificateHandler(&fakeCertificateSrv{downloadErr: appErrors.ErrDownload})

	c, rec := testContext(http.MethodGet, "/portal/admin/certificates/3/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	h.Download(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, appErrors.ErrDownload.Message, decode(t, rec).Body.Message)
}

func TestDeleteCertificateInfoNotice(t *testing.T) {
	h := NewCertificateHandler(&fakeCertificateSrv{})

	c, rec := testContext(http.MethodDelete, "/portal/admin/certificates/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Delete(c)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Notice)
	assert.Equal(t, models.NoticeInfo, env.Notice.Level)
	assert.JSONEq(t, `[{"id":2,"titulo":"","fechaExpedicion":""}]`, string(env.Body.Data))
}

func TestOverviewParsesQuery(t *testing.T) {
	srv := &fakeCertificateSrv{}
	h := NewCertificateHandler(srv)

	c, rec := testContext(http.MethodGet, "/portal/admin/certificates?cursoId=7&seccionId=1", nil)
	h.Overview(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [2]models.ID{7, 1}, srv.overviewArg)
}

func TestInvalidPathID(t *testing.T) {
	h := NewCertificateHandler(&fakeCertificateSrv{})

	c, rec := testContext(http.MethodDelete, "/portal/admin/certificates/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeChecker struct {
	decision guard.Decision
	sid      string
}

func (f *fakeChecker) Check(_ context.Context, sid string, _ models.Role) guard.Decision {
	f.sid = sid
	return f.decision
}

func newRouter(checker middleware.SessionChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, Handlers{
		Auth:         NewAuthHandler(&fakeAuthSrv{}, testCookie),
		Certificates: NewCertificateHandler(&fakeCertificateSrv{}),
	}, checker, testCookie.Name)
	return r
}

func TestGuardedRouteRedirectsBrowsers(t *testing.T) {
	checker := &fakeChecker{decision: guard.Decision{Reason: guard.ReasonExpired, Redirect: "/login"}}
	r := newRouter(checker)

	req := httptest.NewRequest(http.MethodGet, "/portal/admin/certificates", nil)
	req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: "sid-9"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, "sid-9", checker.sid)
}

func TestGuardedRouteRoleMismatchForAPI(t *testing.T) {
	r := newRouter(&fakeChecker{decision: guard.Decision{Reason: guard.ReasonRoleMismatch, Redirect: "/login"}})

	req := httptest.NewRequest(http.MethodGet, "/portal/admin/certificates", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGuardedRouteUnreachableForAPI(t *testing.T) {
	r := newRouter(&fakeChecker{decision: guard.Decision{Reason: guard.ReasonUnreachable, Redirect: "/login"}})

	req := httptest.NewRequest(http.MethodGet, "/portal/admin/certificates", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGuardedRouteAllowed(t *testing.T) {
	profile := &session.Profile{Name: "Ana", UserType: models.RoleAdmin}
	r := newRouter(&fakeChecker{decision: guard.Decision{Allowed: true, Profile: profile}})

	req := httptest.NewRequest(http.MethodGet, "/portal/admin/certificates?cursoId=7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicAuthRoutesSkipGuard(t *testing.T) {
	checker := &fakeChecker{decision: guard.Decision{Reason: guard.ReasonNoCredential, Redirect: "/login"}}
	r := newRouter(checker)

	req := httptest.NewRequest(http.MethodGet, "/portal/auth/recover/5", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, checker.sid)
}
