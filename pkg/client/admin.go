package client

import (
	"context"
	"net/http"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// DashboardStats returns the headline CRM counters.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/dashboard/stats", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DashboardInitialData returns the stats, first contact page and catalogs
// the dashboard loads in one request.
func (c *Client) DashboardInitialData(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/dashboard/initial-data", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminListUsers returns all backend accounts. Admin only.
func (c *Client) AdminListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/admin/users", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminCreateUser creates a pre-verified account. Admin only.
func (c *Client) AdminCreateUser(ctx context.Context, req models.AdminUserCreate) (map[string]any, error) {
	var out map[string]any
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/admin/users", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminUpdateUser patches account fields. Admin only.
func (c *Client) AdminUpdateUser(ctx context.Context, id string, fields map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := c.decodeExpected(ctx, http.MethodPut, "/api/admin/users/"+id, fields, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminDeleteUser deletes an account. Admin only; deleting the calling
// account is rejected.
func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	return c.decodeExpected(ctx, http.MethodDelete, "/api/admin/users/"+id, nil, nil, http.StatusOK)
}

// AdminUserStats returns account totals broken down by role and
// verification state. Admin only.
func (c *Client) AdminUserStats(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/admin/users/stats", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
