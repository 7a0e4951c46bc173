package client

import (
	"context"
	"net/http"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
)

// Courses lists every course.
func (c *Client) Courses(ctx context.Context, token string) ([]models.Course, error) {
	var out []models.Course
	_, err := c.fetch(ctx, call{op: "courses.list", method: http.MethodGet, path: "/api/courses/", token: token}, &out)
	return out, err
}

// Course loads one course.
func (c *Client) Course(ctx context.Context, token string, id models.ID) (*models.Course, error) {
	var out models.Course
	if _, err := c.fetch(ctx, call{op: "courses.get", method: http.MethodGet, path: "/api/courses/" + id.String(), token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CoursesWithSchedules lists courses with their sections and embedded
// schedules.
func (c *Client) CoursesWithSchedules(ctx context.Context, token string) ([]models.Course, error) {
	var out []models.Course
	_, err := c.fetch(ctx, call{op: "courses.schedules", method: http.MethodGet, path: "/api/courses/schedules/", token: token}, &out)
	return out, err
}

// StudentCourses lists the catalog as seen by the logged in student.
func (c *Client) StudentCourses(ctx context.Context, token string) ([]models.StudentCourse, error) {
	var out []models.StudentCourse
	_, err := c.fetch(ctx, call{op: "courses.student", method: http.MethodGet, path: "/api/courses/student/", token: token}, &out)
	return out, err
}

// EnrolledCourses lists the courses the logged in student is enrolled in.
func (c *Client) EnrolledCourses(ctx context.Context, token string) ([]models.StudentCourse, error) {
	var out []models.StudentCourse
	_, err := c.fetch(ctx, call{op: "courses.student_enrolled", method: http.MethodGet, path: "/api/courses/student/enrolled/", token: token}, &out)
	return out, err
}

// CreateCourse creates a course.
func (c *Client) CreateCourse(ctx context.Context, token string, form dto.CourseForm) (*models.Course, string, error) {
	var out models.Course
	msg, err := c.fetch(ctx, call{op: "courses.create", method: http.MethodPost, path: "/api/courses/", token: token, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// UpdateCourse edits a course.
func (c *Client) UpdateCourse(ctx context.Context, token string, id models.ID, form dto.CourseForm) (*models.Course, string, error) {
	var out models.Course
	msg, err := c.fetch(ctx, call{op: "courses.update", method: http.MethodPatch, path: "/api/courses/" + id.String(), token: token, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// DeleteCourse deletes a course.
func (c *Client) DeleteCourse(ctx context.Context, token string, id models.ID) (string, error) {
	resp, err := c.do(ctx, call{op: "courses.delete", method: http.MethodDelete, path: "/api/courses/" + id.String(), token: token})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
