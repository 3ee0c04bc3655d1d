package client

import (
	"context"
	"net/http"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// Login authenticates and installs the returned bearer token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/login", req, &out, http.StatusOK, WithoutAuth()); err != nil {
		return nil, err
	}
	c.SetToken(out.AccessToken)
	return &out, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.decodeExpected(ctx, http.MethodGet, "/api/auth/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new (unverified) account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (map[string]any, error) {
	var out map[string]any
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/register", req, &out, http.StatusOK, WithoutAuth()); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyEmail redeems an email verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	body := map[string]string{"token": token}
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/verify-email", body, &out, http.StatusOK, WithoutAuth()); err != nil {
		return nil, err
	}
	return out, nil
}

// ForgotPassword requests a password reset. The backend answers 200 whether
// or not the account exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) (map[string]any, error) {
	var out map[string]any
	body := map[string]string{"email": email}
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/forgot-password", body, &out, http.StatusOK, WithoutAuth()); err != nil {
		return nil, err
	}
	return out, nil
}

// ResetPassword redeems a reset token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (map[string]any, error) {
	var out map[string]any
	body := map[string]string{"token": token, "new_password": newPassword}
	if err := c.decodeExpected(ctx, http.MethodPost, "/api/reset-password", body, &out, http.StatusOK, WithoutAuth()); err != nil {
		return nil, err
	}
	return out, nil
}

// Health probes GET /api/health without authentication.
func (c *Client) Health(ctx context.Context) (*Response, error) {
	return c.Do(ctx, http.MethodGet, "/api/health", nil, WithoutAuth())
}
