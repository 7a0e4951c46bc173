package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/educa-portal/internal/middleware"
	"github.com/noah-isme/educa-portal/internal/models"
)

// Handlers groups every portal handler for route registration.
type Handlers struct {
	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Enrollments  *EnrollmentHandler
	Teacher      *TeacherHandler
	Certificates *CertificateHandler
	Schedules    *ScheduleHandler
	Directory    *DirectoryHandler
	Users        *UserHandler
}

// RegisterRoutes mounts the portal under /portal. Each role group is
// guarded by the session guard for that user type.
func RegisterRoutes(r gin.IRouter, h Handlers, checker middleware.SessionChecker, cookieName string) {
	portal := r.Group("/portal")
	portal.Use(middleware.Session(cookieName))

	auth := portal.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", h.Auth.Me)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/recover", h.Auth.StartRecovery)
		auth.GET("/recover/:userId", h.Auth.SecurityQuestion)
		auth.PUT("/recover", h.Auth.FinishRecovery)
		auth.PATCH("/password", h.Auth.ChangePassword)
	}

	admin := portal.Group("/admin")
	admin.Use(middleware.RequireRole(checker, models.RoleAdmin))
	{
		admin.GET("/statistics", h.Users.Statistics)

		admin.GET("/courses", h.Catalog.ListCourses)
		admin.POST("/courses", h.Catalog.CreateCourse)
		admin.GET("/courses/:id", h.Catalog.GetCourse)
		admin.PATCH("/courses/:id", h.Catalog.UpdateCourse)
		admin.DELETE("/courses/:id", h.Catalog.DeleteCourse)
		admin.GET("/courses/:id/sections", h.Catalog.ListSections)
		admin.POST("/courses/:id/sections", h.Catalog.CreateSection)
		admin.GET("/courses/:id/sections/new", h.Catalog.SectionForm)
		admin.PATCH("/courses/:id/sections/:sectionId", h.Catalog.UpdateSection)
		admin.PUT("/courses/:id/sections/:sectionId/schedule", h.Schedules.Update)
		admin.GET("/sections/:id/students", h.Catalog.SectionStudents)

		admin.GET("/schedules", h.Schedules.Viewer)

		admin.GET("/enrollments", h.Enrollments.List)
		admin.POST("/enrollments/:id/approve", h.Enrollments.Approve)
		admin.POST("/enrollments/:id/reject", h.Enrollments.Reject)
		admin.DELETE("/enrollments/:id", h.Enrollments.Delete)

		admin.GET("/certificates", h.Certificates.Overview)
		admin.POST("/certificates/students/:studentId/sections/:sectionId", h.Certificates.Create)
		admin.PATCH("/certificates/:id", h.Certificates.Update)
		admin.DELETE("/certificates/:id", h.Certificates.Delete)
		admin.GET("/certificates/:id/pdf", h.Certificates.Download)

		admin.GET("/students", h.Directory.ListStudents)
		admin.POST("/students", h.Directory.CreateStudent)
		admin.GET("/students/:id", h.Directory.GetStudent)
		admin.PATCH("/students/:id", h.Directory.UpdateStudent)
		admin.DELETE("/students/:id", h.Directory.DeleteStudent)

		admin.GET("/teachers", h.Directory.ListTeachers)
		admin.POST("/teachers", h.Directory.CreateTeacher)
		admin.GET("/teachers/:id", h.Directory.GetTeacher)
		admin.PATCH("/teachers/:id", h.Directory.UpdateTeacher)
		admin.DELETE("/teachers/:id", h.Directory.DeleteTeacher)
	}

	teacher := portal.Group("/teacher")
	teacher.Use(middleware.RequireRole(checker, models.RoleTeacher))
	{
		teacher.GET("/dashboard", h.Teacher.Dashboard)
		teacher.POST("/sections/:id/students/:studentId/pass", h.Teacher.Pass)
		teacher.POST("/sections/:id/students/:studentId/fail", h.Teacher.Fail)
	}

	student := portal.Group("/student")
	student.Use(middleware.RequireRole(checker, models.RoleStudent))
	{
		student.GET("/courses", h.Catalog.StudentCatalog)
		student.GET("/courses/me", h.Catalog.EnrolledCourses)
		student.GET("/courses/:id/enroll", h.Enrollments.EnrollForm)
		student.POST("/courses/:id/enroll", h.Enrollments.Enroll)
		student.GET("/enrollments", h.Enrollments.Mine)
		student.GET("/certificates", h.Certificates.Mine)
		student.GET("/certificates/:id/pdf", h.Certificates.Download)
	}

	for _, group := range []*gin.RouterGroup{admin, teacher, student} {
		group.GET("/profile", h.Users.Profile)
		group.PATCH("/profile", h.Users.UpdateProfile)
	}
}
