package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/client"
	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

func parseScope(scope string) (models.ID, error) {
	id, err := models.ParseID(scope)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid scope %q", scope))
	}
	return id, nil
}

func payloadError(want string) error {
	return appErrors.Clone(appErrors.ErrInternal, "unexpected payload, want "+want)
}

// Courses lists every course.
func Courses(api *client.Client, token string, logger *zap.Logger) *Registry[models.Course] {
	return New("courses", token, models.CourseID, Source[models.Course]{
		List: func(ctx context.Context, token, _ string) ([]models.Course, error) {
			return api.Courses(ctx, token)
		},
		Create: func(ctx context.Context, token string, payload interface{}) (*models.Course, string, error) {
			form, ok := payload.(dto.CourseForm)
			if !ok {
				return nil, "", payloadError("dto.CourseForm")
			}
			return api.CreateCourse(ctx, token, form)
		},
		Update: func(ctx context.Context, token string, id models.ID, payload interface{}) (*models.Course, string, error) {
			form, ok := payload.(dto.CourseForm)
			if !ok {
				return nil, "", payloadError("dto.CourseForm")
			}
			return api.UpdateCourse(ctx, token, id, form)
		},
	}, logger)
}

// ScheduledCourses lists courses with sections and schedules embedded.
func ScheduledCourses(api *client.Client, token string, logger *zap.Logger) *Registry[models.Course] {
	return New("scheduled_courses", token, models.CourseID, Source[models.Course]{
		List: func(ctx context.Context, token, _ string) ([]models.Course, error) {
			return api.CoursesWithSchedules(ctx, token)
		},
	}, logger)
}

// Sections lists the sections of the course given as scope.
func Sections(api *client.Client, token string, logger *zap.Logger) *Registry[models.Section] {
	return New("sections", token, models.SectionID, Source[models.Section]{
		List: func(ctx context.Context, token, scope string) ([]models.Section, error) {
			courseID, err := parseScope(scope)
			if err != nil {
				return nil, err
			}
			return api.Sections(ctx, token, courseID)
		},
		Create: func(ctx context.Context, token string, payload interface{}) (*models.Section, string, error) {
			form, ok := payload.(dto.SectionForm)
			if !ok {
				return nil, "", payloadError("dto.SectionForm")
			}
			return api.CreateSection(ctx, token, form)
		},
		Update: func(ctx context.Context, token string, id models.ID, payload interface{}) (*models.Section, string, error) {
			form, ok := payload.(dto.SectionForm)
			if !ok {
				return nil, "", payloadError("dto.SectionForm")
			}
			return api.UpdateSection(ctx, token, id, form)
		},
	}, logger)
}

// TeacherSections lists the sections of the logged in teacher.
func TeacherSections(api *client.Client, token string, logger *zap.Logger) *Registry[models.Section] {
	return New("teacher_sections", token, models.SectionID, Source[models.Section]{
		List: func(ctx context.Context, token, _ string) ([]models.Section, error) {
			return api.TeacherSections(ctx, token)
		},
	}, logger)
}

// SectionRoster lists the students of the section given as scope.
func SectionRoster(api *client.Client, token string, logger *zap.Logger) *Registry[models.Student] {
	return New("section_roster", token, models.StudentID, Source[models.Student]{
		List: func(ctx context.Context, token, scope string) ([]models.Student, error) {
			sectionID, err := parseScope(scope)
			if err != nil {
				return nil, err
			}
			return api.SectionStudents(ctx, token, sectionID)
		},
	}, logger)
}

// Students lists every student.
func Students(api *client.Client, token string, logger *zap.Logger) *Registry[models.Student] {
	return New("students", token, models.StudentID, Source[models.Student]{
		List: func(ctx context.Context, token, _ string) ([]models.Student, error) {
			return api.Students(ctx, token)
		},
		Update: func(ctx context.Context, token string, id models.ID, payload interface{}) (*models.Student, string, error) {
			form, ok := payload.(dto.StudentForm)
			if !ok {
				return nil, "", payloadError("dto.StudentForm")
			}
			return api.UpdateStudent(ctx, token, id, form)
		},
	}, logger)
}

// Teachers lists every teacher.
func Teachers(api *client.Client, token string, logger *zap.Logger) *Registry[models.Teacher] {
	return New("teachers", token, models.TeacherID, Source[models.Teacher]{
		List: func(ctx context.Context, token, _ string) ([]models.Teacher, error) {
			return api.Teachers(ctx, token)
		},
		Update: func(ctx context.Context, token string, id models.ID, payload interface{}) (*models.Teacher, string, error) {
			form, ok := payload.(dto.TeacherForm)
			if !ok {
				return nil, "", payloadError("dto.TeacherForm")
			}
			return api.UpdateTeacher(ctx, token, id, form)
		},
	}, logger)
}

// Enrollments lists every enrollment.
func Enrollments(api *client.Client, token string, logger *zap.Logger) *Registry[models.Enrollment] {
	return New("enrollments", token, models.EnrollmentID, Source[models.Enrollment]{
		List: func(ctx context.Context, token, _ string) ([]models.Enrollment, error) {
			return api.Enrollments(ctx, token)
		},
		Create: func(ctx context.Context, token string, payload interface{}) (*models.Enrollment, string, error) {
			form, ok := payload.(dto.EnrollmentForm)
			if !ok {
				return nil, "", payloadError("dto.EnrollmentForm")
			}
			return api.CreateEnrollment(ctx, token, form)
		},
	}, logger)
}

// MyEnrollments lists the enrollments of the logged in student. The API has
// no per-student listing, so the full list is narrowed to the student's
// cedula taken from the current user.
func MyEnrollments(api *client.Client, token string, logger *zap.Logger) *Registry[models.Enrollment] {
	return New("my_enrollments", token, models.EnrollmentID, Source[models.Enrollment]{
		List: func(ctx context.Context, token, _ string) ([]models.Enrollment, error) {
			me, err := api.CurrentUser(ctx, token)
			if err != nil {
				return nil, err
			}
			all, err := api.Enrollments(ctx, token)
			if err != nil {
				return nil, err
			}
			out := make([]models.Enrollment, 0, len(all))
			for _, e := range all {
				if me.Cedula != "" && e.CedulaEstudiante == me.Cedula {
					out = append(out, e)
				}
			}
			return out, nil
		},
	}, logger)
}

// StudentCertificates lists the certificates of the logged in student.
func StudentCertificates(api *client.Client, token string, logger *zap.Logger) *Registry[models.Certificate] {
	return New("student_certificates", token, models.CertificateID, Source[models.Certificate]{
		List: func(ctx context.Context, token, _ string) ([]models.Certificate, error) {
			return api.StudentCertificates(ctx, token)
		},
	}, logger)
}

// Certificates is seeded from the overview and updated in place.
func Certificates(api *client.Client, token string, logger *zap.Logger) *Registry[models.Certificate] {
	return New("certificates", token, models.CertificateID, Source[models.Certificate]{
		List: func(ctx context.Context, token, _ string) ([]models.Certificate, error) {
			ov, err := api.CertificateOverview(ctx, token)
			if err != nil {
				return nil, err
			}
			return ov.Certificados, nil
		},
		Update: func(ctx context.Context, token string, id models.ID, payload interface{}) (*models.Certificate, string, error) {
			form, ok := payload.(dto.CertificateForm)
			if !ok {
				return nil, "", payloadError("dto.CertificateForm")
			}
			return api.UpdateCertificate(ctx, token, id, form)
		},
	}, logger)
}

// StudentCourses lists the catalog for the logged in student.
func StudentCourses(api *client.Client, token string, logger *zap.Logger) *Registry[models.StudentCourse] {
	return New("student_courses", token, models.StudentCourseID, Source[models.StudentCourse]{
		List: func(ctx context.Context, token, _ string) ([]models.StudentCourse, error) {
			return api.StudentCourses(ctx, token)
		},
	}, logger)
}

// EnrolledCourses lists the courses the logged in student is enrolled in.
func EnrolledCourses(api *client.Client, token string, logger *zap.Logger) *Registry[models.StudentCourse] {
	return New("enrolled_courses", token, models.StudentCourseID, Source[models.StudentCourse]{
		List: func(ctx context.Context, token, _ string) ([]models.StudentCourse, error) {
			return api.EnrolledCourses(ctx, token)
		},
	}, logger)
}
