package client

import (
	"context"
	"net/http"

	"github.com/noah-isme/educa-portal/internal/dto"
	"github.com/noah-isme/educa-portal/internal/models"
)

// Students lists every student.
func (c *Client) Students(ctx context.Context, token string) ([]models.Student, error) {
	var out []models.Student
	_, err := c.fetch(ctx, call{op: "students.list", method: http.MethodGet, path: "/api/students", token: token}, &out)
	return out, err
}

// Student loads one student.
func (c *Client) Student(ctx context.Context, token string, id models.ID) (*models.Student, error) {
	var out models.Student
	if _, err := c.fetch(ctx, call{op: "students.get", method: http.MethodGet, path: "/api/students/" + id.String(), token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStudent edits a student.
func (c *Client) UpdateStudent(ctx context.Context, token string, id models.ID, form dto.StudentForm) (*models.Student, string, error) {
	var out models.Student
	msg, err := c.fetch(ctx, call{op: "students.update", method: http.MethodPatch, path: "/api/students/" + id.String(), token: token, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// DeleteStudent deletes a student.
func (c *Client) DeleteStudent(ctx context.Context, token string, id models.ID) (string, error) {
	resp, err := c.do(ctx, call{op: "students.delete", method: http.MethodDelete, path: "/api/students/" + id.String(), token: token})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Teachers lists every teacher.
func (c *Client) Teachers(ctx context.Context, token string) ([]models.Teacher, error) {
	var out []models.Teacher
	_, err := c.fetch(ctx, call{op: "teachers.list", method: http.MethodGet, path: "/api/teachers/", token: token}, &out)
	return out, err
}

// Teacher loads one teacher.
func (c *Client) Teacher(ctx context.Context, token string, id models.ID) (*models.Teacher, error) {
	var out models.Teacher
	if _, err := c.fetch(ctx, call{op: "teachers.get", method: http.MethodGet, path: "/api/teachers/" + id.String(), token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTeacher edits a teacher.
func (c *Client) UpdateTeacher(ctx context.Context, token string, id models.ID, form dto.TeacherForm) (*models.Teacher, string, error) {
	var out models.Teacher
	msg, err := c.fetch(ctx, call{op: "teachers.update", method: http.MethodPatch, path: "/api/teachers/" + id.String(), token: token, body: form}, &out)
	if err != nil {
		return nil, "", err
	}
	return &out, msg, nil
}

// DeleteTeacher deletes a teacher.
func (c *Client) DeleteTeacher(ctx context.Context, token string, id models.ID) (string, error) {
	resp, err := c.do(ctx, call{op: "teachers.delete", method: http.MethodDelete, path: "/api/teachers/" + id.String(), token: token})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
