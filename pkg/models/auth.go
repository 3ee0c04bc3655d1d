package models

import "time"

// User is a CRM backend account. The password hash never appears in
// responses; the backend strips it before serializing.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"is_verified"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminUserCreate is the body of POST /api/admin/users. Accounts created
// this way are pre-verified.
type AdminUserCreate struct {
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// DashboardStats is the response of GET /api/dashboard/stats.
type DashboardStats struct {
	TotalContacts  int `json:"total_contacts"`
	ActiveStudents int `json:"active_students"`
	TotalOrders    int `json:"total_orders"`
	Leads          int `json:"leads"`
}
