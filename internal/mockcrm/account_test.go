package mockcrm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/client"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// newBackend is like newTestServer but also exposes the Server, so tests
// can read the tokens the real backend would deliver by email.
func newBackend(t *testing.T) (*Server, *client.Client) {
	t.Helper()
	srv, err := New(Config{WebhookSecret: testWebhookSecret}, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, client.New(ts.URL)
}

func issuedToken(srv *Server, email, typ string) string {
	srv.store.mu.RLock()
	defer srv.store.mu.RUnlock()
	user := srv.store.userByEmail(email)
	if user == nil {
		return ""
	}
	for tok, at := range srv.store.tokens {
		if at.UserID == user.ID && at.Type == typ {
			return tok
		}
	}
	return ""
}

func TestEmailVerificationFlow(t *testing.T) {
	srv, c := newBackend(t)
	ctx := context.Background()

	_, err := c.Register(ctx, models.RegisterRequest{
		Name:     "Pending User",
		Email:    "pending@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	token := issuedToken(srv, "pending@example.com", tokenTypeVerification)
	require.NotEmpty(t, token, "registration must issue a verification token")

	out, err := c.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.Contains(t, out["message"], "verified")

	_, err = c.Login(ctx, "pending@example.com", "Secret123!")
	require.NoError(t, err)

	// Tokens are single use.
	_, err = c.VerifyEmail(ctx, token)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestVerifyEmailInvalidToken(t *testing.T) {
	_, c := newBackend(t)

	_, err := c.VerifyEmail(context.Background(), "bogus")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestPasswordResetFlow(t *testing.T) {
	srv, c := newBackend(t)
	ctx := context.Background()

	out, err := c.ForgotPassword(ctx, "admin@grabovoi.com")
	require.NoError(t, err)
	assert.NotEmpty(t, out["message"])

	// Unknown addresses get the same answer and no token.
	_, err = c.ForgotPassword(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, issuedToken(srv, "nobody@example.com", tokenTypeReset))

	token := issuedToken(srv, "admin@grabovoi.com", tokenTypeReset)
	require.NotEmpty(t, token)

	_, err = c.ResetPassword(ctx, token, "NewSecret456!")
	require.NoError(t, err)

	_, err = c.Login(ctx, "admin@grabovoi.com", "admin123")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = c.Login(ctx, "admin@grabovoi.com", "NewSecret456!")
	require.NoError(t, err)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	_, c := newBackend(t)

	_, err := c.ResetPassword(context.Background(), "bogus", "whatever1")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestDashboardStats(t *testing.T) {
	_, c := newBackend(t)
	ctx := context.Background()
	loginAdmin(t, c)

	lead, err := c.CreateContact(ctx, models.ContactCreate{
		FirstName: "Lia", LastName: "Moro", Email: "lia.moro@example.com",
	})
	require.NoError(t, err)
	_, err = c.UpdateContact(ctx, lead.ID, map[string]any{"status": models.StatusStudent})
	require.NoError(t, err)
	_, err = c.CreateContact(ctx, models.ContactCreate{
		FirstName: "Ugo", LastName: "Ferri", Email: "ugo.ferri@example.com",
	})
	require.NoError(t, err)

	stats, err := c.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalContacts)
	assert.Equal(t, 1, stats.ActiveStudents)
	assert.Equal(t, 1, stats.Leads)
	assert.Equal(t, 0, stats.TotalOrders)

	initial, err := c.DashboardInitialData(ctx)
	require.NoError(t, err)
	assert.Contains(t, initial, "stats")
	assert.Contains(t, initial, "contacts")
	assert.Contains(t, initial, "products")
	assert.Contains(t, initial, "courses")
}

func TestAdminUserManagement(t *testing.T) {
	_, c := newBackend(t)
	ctx := context.Background()
	admin := loginAdmin(t, c)

	users, err := c.AdminListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@grabovoi.com", users[0].Email)

	created, err := c.AdminCreateUser(ctx, models.AdminUserCreate{
		Name:     "Ops Manager",
		Email:    "ops@example.com",
		Password: "OpsSecret1!",
		Role:     "manager",
	})
	require.NoError(t, err)
	user, _ := created["user"].(map[string]any)
	userID, _ := user["id"].(string)
	require.NotEmpty(t, userID)

	// Admin-created accounts skip verification.
	fresh := client.New(c.BaseURL)
	resp, err := fresh.Login(ctx, "ops@example.com", "OpsSecret1!")
	require.NoError(t, err)
	assert.Equal(t, "manager", resp.User.Role)
	assert.True(t, resp.User.IsVerified)

	// But they cannot manage users.
	_, err = fresh.AdminListUsers(ctx)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	_, err = c.AdminCreateUser(ctx, models.AdminUserCreate{
		Name: "Dup", Email: "ops@example.com", Password: "whatever1",
	})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	updated, err := c.AdminUpdateUser(ctx, userID, map[string]any{"role": "user", "is_active": false})
	require.NoError(t, err)
	u, _ := updated["user"].(map[string]any)
	assert.Equal(t, "user", u["role"])

	stats, err := c.AdminUserStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats["total_users"])
	byRole, _ := stats["users_by_role"].(map[string]any)
	assert.EqualValues(t, 1, byRole["admin"])
	assert.EqualValues(t, 1, byRole["user"])

	err = c.AdminDeleteUser(ctx, admin.User.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	require.NoError(t, c.AdminDeleteUser(ctx, userID))
	_, err = c.AdminUpdateUser(ctx, userID, map[string]any{"name": "Ghost"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestCSVPreview(t *testing.T) {
	_, c := newBackend(t)
	ctx := context.Background()
	loginAdmin(t, c)

	csv := []byte("first_name,last_name,email\nMario,Rossi,mario@example.com\nLuisa,Verdi,luisa@example.com\n")
	preview, err := c.ImportCSVPreview(ctx, "contacts.csv", csv)
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "first_name", "last_name"}, preview.Columns)
	assert.Equal(t, 2, preview.TotalRows)
	require.Len(t, preview.PreviewData, 2)
	assert.Equal(t, "mario@example.com", preview.PreviewData[0]["email"])

	_, err = c.ImportCSVPreview(ctx, "broken.csv", []byte("a,b\n\"oops,1\n"))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}
