package models

import "time"

// Course is a CRM course offering.
type Course struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Instructor  string     `json:"instructor,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Price       float64    `json:"price"`
	Category    string     `json:"category,omitempty"`
	Language    string     `json:"language,omitempty"`
	IsActive    bool       `json:"is_active"`
	MaxStudents *int       `json:"max_students,omitempty"`
	Source      string     `json:"source,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Enrollment links a contact to a course.
type Enrollment struct {
	ID         string         `json:"id"`
	ContactID  string         `json:"contact_id"`
	CourseID   string         `json:"course_id"`
	EnrolledAt *time.Time     `json:"enrolled_at,omitempty"`
	Status     string         `json:"status"` // active, completed, cancelled
	Source     string         `json:"source"` // manual, order, tag
	Course     map[string]any `json:"course,omitempty"`
}
