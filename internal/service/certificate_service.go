package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/cascade"
	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	"github.com/noah-isme/educa-portal/internal/registry"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// CascadeView is a course picker plus the selection narrowed from it.
type CascadeView struct {
	Cursos    []models.Course  `json:"cursos"`
	Seleccion cascade.Snapshot `json:"seleccion"`
}

// CertificateService backs the admin certificate screen and the student
// certificate list.
type CertificateService struct {
	base
}

// NewCertificateService constructs a CertificateService.
func NewCertificateService(deps Deps) *CertificateService {
	return &CertificateService{base: newBase(deps, "certificate")}
}

// Overview loads the certificate screen narrowed to courseID and sectionID.
// Zero ids leave the matching level unselected.
func (s *CertificateService) Overview(ctx context.Context, sid string, courseID, sectionID models.ID) (*CascadeView, error) {
	token, err := s.token(ctx, sid, "certificate_overview")
	if err != nil {
		return nil, err
	}
	ov, err := s.api.CertificateOverview(ctx, token)
	if err != nil {
		return nil, err
	}
	c := overviewCascade(ov, s.logger)
	if err := selectPath(ctx, c, courseID, sectionID); err != nil {
		return nil, err
	}
	cursos := ov.Cursos
	if cursos == nil {
		cursos = []models.Course{}
	}
	return &CascadeView{Cursos: cursos, Seleccion: c.Snapshot()}, nil
}

func overviewCascade(ov *models.CertificateOverview, logger *zap.Logger) *cascade.Cascade {
	byCourse := make(map[models.ID][]models.Section, len(ov.Secciones))
	for key, sections := range ov.Secciones {
		id, err := models.ParseID(key)
		if err != nil {
			logger.Warn("overview section key is not an id", zap.String("key", key))
			continue
		}
		byCourse[id] = sections
	}
	return cascade.New(cascade.Loaders{
		Sections: cascade.Preloaded(byCourse),
		Roster: func(_ context.Context, section models.Section) ([]models.Student, error) {
			return ov.Estudiantes[section.ID.String()], nil
		},
		Certificates: func(context.Context) ([]models.Certificate, error) {
			return ov.Certificados, nil
		},
	}, logger)
}

// selectPath walks the cascade down to the requested level.
func selectPath(ctx context.Context, c *cascade.Cascade, courseID, sectionID models.ID) error {
	if courseID.IsZero() {
		if !sectionID.IsZero() {
			return appErrors.Clone(appErrors.ErrInvalidTransition, "Seleccione un curso primero.")
		}
		return nil
	}
	if err := c.SelectCourse(ctx, courseID); err != nil {
		return err
	}
	if sectionID.IsZero() {
		return nil
	}
	return c.SelectSection(ctx, sectionID)
}

// Create issues a certificate for a student in a section. When the
// enrollment of that student in that section is known and not approved the
// request is refused before it is sent.
func (s *CertificateService) Create(ctx context.Context, sid string, studentID, sectionID models.ID, form dto.CertificateForm) (*Outcome, error) {
	if err := s.validator.Struct(form); err != nil {
		return nil, err
	}
	token, err := s.token(ctx, sid, "create_certificate")
	if err != nil {
		return nil, err
	}

	var (
		ov          *models.CertificateOverview
		enrollments []models.Enrollment
	)
	err = parallel(
		func() (err error) {
			ov, err = s.api.CertificateOverview(ctx, token)
			return err
		},
		func() (err error) {
			enrollments, err = s.api.Enrollments(ctx, token)
			return err
		},
	)
	if err != nil {
		s.logger.Warn("issuing certificate without enrollment check", zap.Error(err))
	} else if student, section, ok := locate(ov, studentID, sectionID); ok {
		if known(enrollments, student, section) && !models.CanIssueCertificate(enrollments, student, section) {
			return nil, appErrors.Clone(appErrors.ErrPrecondition, "El estudiante no tiene una inscripción aprobada en esta sección.")
		}
	}

	var created *models.Certificate
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindCreate,
		Name:    "create_certificate",
		Payload: form,
		Do: func(ctx context.Context, token string) (string, error) {
			cert, msg, err := s.api.CreateCertificate(ctx, token, studentID, sectionID, form)
			created = cert
			return msg, err
		},
		Success: "Certificado generado correctamente.",
	})
	return outcome(res, created)
}

// locate finds the student and section in the overview.
func locate(ov *models.CertificateOverview, studentID, sectionID models.ID) (models.Student, models.Section, bool) {
	var section models.Section
	found := false
	for _, sections := range ov.Secciones {
		for _, sec := range sections {
			if sec.ID == sectionID {
				section, found = sec, true
			}
		}
	}
	if !found {
		return models.Student{}, models.Section{}, false
	}
	for _, st := range ov.Estudiantes[sectionID.String()] {
		if st.ID == studentID {
			return st, section, true
		}
	}
	return models.Student{ID: studentID}, section, true
}

// known reports whether any enrollment ties the student to the section.
func known(enrollments []models.Enrollment, student models.Student, section models.Section) bool {
	for _, e := range enrollments {
		sameSection := (!e.SeccionID.IsZero() && e.SeccionID == section.ID) ||
			(e.CodigoSeccion != "" && e.CodigoSeccion == section.Codigo)
		sameStudent := (!e.EstudianteID.IsZero() && e.EstudianteID == student.ID) ||
			(e.CedulaEstudiante != "" && e.CedulaEstudiante == student.Cedula)
		if sameSection && sameStudent {
			return true
		}
	}
	return false
}

// Update edits a certificate.
func (s *CertificateService) Update(ctx context.Context, sid string, id models.ID, form dto.CertificateForm) (*Outcome, error) {
	token, err := s.token(ctx, sid, "update_certificate")
	if err != nil {
		return nil, err
	}
	reg := registry.Certificates(s.api, token, s.logger)
	var updated *models.Certificate
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:    dispatcher.KindUpdate,
		Name:    "update_certificate",
		Payload: form,
		Do: func(ctx context.Context, _ string) (string, error) {
			cert, msg, err := reg.Update(ctx, id, form)
			updated = cert
			return msg, err
		},
		Success: "Certificado actualizado correctamente.",
	})
	return outcome(res, updated)
}

// Delete removes a certificate and returns the remaining ones.
func (s *CertificateService) Delete(ctx context.Context, sid string, id models.ID) (*Outcome, error) {
	token, err := s.token(ctx, sid, "delete_certificate")
	if err != nil {
		return nil, err
	}
	reg := registry.Certificates(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		s.logger.Warn("deleting without a loaded certificate list", zap.Error(err))
	}
	res := s.dispatch.Dispatch(ctx, sid, dispatcher.Action{
		Kind:       dispatcher.KindDelete,
		Name:       "delete_certificate",
		Optimistic: dispatcher.RemoveOptimistically(reg, id),
		Do: func(ctx context.Context, token string) (string, error) {
			return s.api.DeleteCertificate(ctx, token, id)
		},
		Success: "Certificado eliminado correctamente.",
	})
	if res.Err == nil && res.Notice != nil {
		res.Notice.Level = models.NoticeInfo
	}
	return outcome(res, reg.Items())
}

// Download returns the printable certificate.
func (s *CertificateService) Download(ctx context.Context, sid string, id models.ID) (*dispatcher.File, error) {
	return s.dispatch.DownloadCertificate(ctx, sid, id)
}

// Mine lists the certificates of the logged in student.
func (s *CertificateService) Mine(ctx context.Context, sid string) ([]models.Certificate, error) {
	token, err := s.token(ctx, sid, "my_certificates")
	if err != nil {
		return nil, err
	}
	reg := registry.StudentCertificates(s.api, token, s.logger)
	if err := reg.FetchAll(ctx, ""); err != nil {
		return nil, err
	}
	return reg.Items(), nil
}
