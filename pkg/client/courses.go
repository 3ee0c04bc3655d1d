package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// CourseFilter holds the query parameters of GET /api/courses.
type CourseFilter struct {
	Page     int
	Limit    int
	Search   string
	Language string
	Category string
}

// Values encodes the filter as URL query parameters.
func (f CourseFilter) Values() url.Values {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Language != "" {
		v.Set("language", f.Language)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	return v
}

// ListCourses returns the paginated course list.
func (c *Client) ListCourses(ctx context.Context, filter CourseFilter) (*models.CourseList, error) {
	var out models.CourseList
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/courses", nil, &out, http.StatusOK, WithQuery(filter.Values())); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCourse fetches one course by id.
func (c *Client) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var out models.Course
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/courses/"+id, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCourse creates a course.
func (c *Client) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	var out models.Course
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/courses", course, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCourse applies a partial update.
func (c *Client) UpdateCourse(ctx context.Context, id string, fields map[string]any) (*models.Course, error) {
	var out models.Course
	if err := c.decodeExpected(ctx, http.MethodPut, "/api/courses/"+id, fields, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourse removes a course and its enrollments.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.decodeExpected(ctx, http.MethodDelete, "/api/courses/"+id, nil, nil, http.StatusOK)
}

// CourseLanguages lists the distinct course languages.
func (c *Client) CourseLanguages(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/api/courses/languages", "languages")
}

// CourseCategories lists the distinct course categories.
func (c *Client) CourseCategories(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/api/courses/categories", "categories")
}

// CourseInstructors lists the distinct course instructors.
func (c *Client) CourseInstructors(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/api/courses/instructors", "instructors")
}

func (c *Client) stringList(ctx context.Context, path, key string) ([]string, error) {
	var out map[string][]string
	if err := c.decodeExpected(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out[key], nil
}

// Enroll enrolls a contact in a course.
func (c *Client) Enroll(ctx context.Context, courseID, contactID string) (*models.Enrollment, error) {
	var out models.Enrollment
	path := fmt.Sprintf("/api/courses/%s/enroll/%s", courseID, contactID)
	if err := c.decodeExpected(ctx, http.MethodPost, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CourseStudents lists the contacts enrolled in a course.
func (c *Client) CourseStudents(ctx context.Context, courseID string) ([]models.Contact, error) {
	var out []models.Contact
	path := fmt.Sprintf("/api/courses/%s/students", courseID)
	if err := c.decodeExpected(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEnrollments lists all enrollments.
func (c *Client) ListEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	var out []models.Enrollment
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/enrollments", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteEnrollment removes an enrollment by id.
func (c *Client) DeleteEnrollment(ctx context.Context, id string) error {
	return c.decodeExpected(ctx, http.MethodDelete, "/api/enrollments/"+id, nil, nil, http.StatusOK)
}
