package models

import "time"

// Contact statuses accepted by the backend.
const (
	StatusLead    = "lead"
	StatusClient  = "client"
	StatusStudent = "student"
)

// Contact is a CRM contact record.
type Contact struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Address    string     `json:"address,omitempty"`
	City       string     `json:"city,omitempty"`
	PostalCode string     `json:"postal_code,omitempty"`
	Country    string     `json:"country,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Source     string     `json:"source,omitempty"`
	Status     string     `json:"status"`
	Language   string     `json:"language,omitempty"`
	Tags       []Tag      `json:"tags,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// ContactCreate is the body of POST /api/contacts.
type ContactCreate struct {
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Address    string   `json:"address,omitempty"`
	City       string   `json:"city,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	Country    string   `json:"country,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Source     string   `json:"source,omitempty"`
	Status     string   `json:"status,omitempty"`
	Language   string   `json:"language,omitempty"`
	TagIDs     []string `json:"tag_ids,omitempty"`
}

// Tag labels contacts and courses.
type Tag struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Color     string     `json:"color"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
