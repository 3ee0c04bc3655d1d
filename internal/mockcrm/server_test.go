package mockcrm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/client"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

const testWebhookSecret = "postmark-test-secret"

func newTestServer(t *testing.T) (*httptest.Server, *client.Client) {
	t.Helper()
	srv, err := New(Config{WebhookSecret: testWebhookSecret}, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, client.New(ts.URL)
}

func loginAdmin(t *testing.T, c *client.Client) *models.LoginResponse {
	t.Helper()
	resp, err := c.Login(context.Background(), "admin@grabovoi.com", "admin123")
	require.NoError(t, err)
	return resp
}

func TestLogin(t *testing.T) {
	_, c := newTestServer(t)

	resp := loginAdmin(t, c)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.User.Role)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@grabovoi.com", me.Email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts, _ := newTestServer(t)
	c := client.New(ts.URL)

	_, err := c.Login(context.Background(), "admin@grabovoi.com", "wrong")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestUnverifiedUserCannotLogin(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	_, err := c.Register(ctx, models.RegisterRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	fresh := client.New(c.BaseURL)
	_, err = fresh.Login(ctx, "new@example.com", "Secret123!")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	ts, _ := newTestServer(t)
	c := client.New(ts.URL)

	resp, err := c.Do(context.Background(), http.MethodGet, "/api/contacts", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestContactCRUDAndPagination(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	created, err := c.CreateContact(ctx, models.ContactCreate{
		FirstName: "Mario",
		LastName:  "Rossi",
		Email:     "mario.rossi@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.StatusLead, created.Status)

	// Pagination envelope must echo the requested limit.
	list, err := c.ListContacts(ctx, client.ContactFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, list.Pagination.PerPage)
	assert.Equal(t, 1, list.Pagination.CurrentPage)
	assert.Len(t, list.Contacts, 1)

	updated, err := c.UpdateContact(ctx, created.ID, map[string]any{"status": models.StatusClient})
	require.NoError(t, err)
	assert.Equal(t, models.StatusClient, updated.Status)

	require.NoError(t, c.DeleteContact(ctx, created.ID))
	_, err = c.GetContact(ctx, created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestContactPaginationEstimatesTotals(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	for i := 0; i < 7; i++ {
		_, err := c.CreateContact(ctx, models.ContactCreate{
			FirstName: "Page", LastName: fmt.Sprintf("Walker %02d", i+1),
		})
		require.NoError(t, err)
	}

	// Totals count rows seen so far, plus one when another page exists;
	// they are only exact once the last page has been fetched.
	for _, tc := range []struct {
		page, items, totalCount, totalPages int
		hasMore                             bool
	}{
		{1, 3, 4, 2, true},
		{2, 3, 7, 3, true},
		{3, 1, 7, 3, false},
		{4, 0, 9, 4, false},
	} {
		list, err := c.ListContacts(ctx, client.ContactFilter{Page: tc.page, Limit: 3})
		require.NoError(t, err)
		assert.Len(t, list.Contacts, tc.items, "page %d", tc.page)
		assert.Equal(t, tc.totalCount, list.Pagination.TotalCount, "page %d", tc.page)
		assert.Equal(t, tc.totalPages, list.Pagination.TotalPages, "page %d", tc.page)
		assert.Equal(t, tc.hasMore, list.Pagination.HasMore, "page %d", tc.page)
	}
}

func TestContactStatusFilter(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	for _, tc := range []struct{ name, status string }{
		{"Lead", models.StatusLead},
		{"Client", models.StatusClient},
		{"Student", models.StatusStudent},
	} {
		_, err := c.CreateContact(ctx, models.ContactCreate{
			FirstName: tc.name, LastName: "Test", Status: tc.status,
		})
		require.NoError(t, err)
	}

	list, err := c.ListContacts(ctx, client.ContactFilter{Status: models.StatusClient})
	require.NoError(t, err)
	require.Len(t, list.Contacts, 1)
	assert.Equal(t, models.StatusClient, list.Contacts[0].Status)
}

func TestEnrollmentFlow(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	contact, err := c.CreateContact(ctx, models.ContactCreate{FirstName: "Anna", LastName: "Neri"})
	require.NoError(t, err)
	course, err := c.CreateCourse(ctx, models.Course{Title: "Numerologia Base", Price: 150, Language: "it"})
	require.NoError(t, err)

	enrollment, err := c.Enroll(ctx, course.ID, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", enrollment.Status)

	// Enrolling a lead promotes them to student.
	got, err := c.GetContact(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusStudent, got.Status)

	// Double enrollment is rejected.
	_, err = c.Enroll(ctx, course.ID, contact.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	students, err := c.CourseStudents(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, students, 1)

	// Deleting the course removes its enrollments.
	require.NoError(t, c.DeleteCourse(ctx, course.ID))
	courses, err := c.ContactCourses(ctx, contact.ID)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestOrderTotals(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	contact, err := c.CreateContact(ctx, models.ContactCreate{FirstName: "Luca", LastName: "Verdi"})
	require.NoError(t, err)

	order, err := c.CreateOrder(ctx, models.OrderCreate{
		ContactID: contact.ID,
		Items: []models.OrderItem{
			{ProductName: "Corso Base", Quantity: 1, UnitPrice: 100, TotalPrice: 100},
			{ProductName: "Manuale", Quantity: 2, UnitPrice: 25, TotalPrice: 50},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, order.TotalAmount)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, "pending", order.Status)

	list, err := c.ListOrders(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, 10, list.Pagination.PerPage)

	// total_amount comes from the per-item totals, so an item without
	// total_price must be rejected rather than priced at zero.
	_, err = c.CreateOrder(ctx, models.OrderCreate{
		ContactID: contact.ID,
		Items: []models.OrderItem{
			{ProductName: "Corso Base", Quantity: 1, UnitPrice: 100},
		},
	})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
}

func TestWebhookSignature(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()

	payload := []byte(`{"MessageID":"msg-1","From":"mario@example.com","To":"crm@grabovoi.com","Subject":"Ciao"}`)

	// Valid signature is accepted.
	resp, err := c.PostInbound(ctx, testWebhookSecret, payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", resp.Map()["status"])

	// Wrong secret and missing header are both 401.
	resp, err = c.PostInbound(ctx, "wrong-secret", payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = c.PostInboundSigned(ctx, "", payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookLinksContactByEmail(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	contact, err := c.CreateContact(ctx, models.ContactCreate{
		FirstName: "Mario", LastName: "Rossi", Email: "mario@example.com",
	})
	require.NoError(t, err)

	payload := []byte(`{"MessageID":"msg-2","From":"mario@example.com","To":"crm@grabovoi.com","Subject":"Ordine"}`)
	resp, err := c.PostInbound(ctx, testWebhookSecret, payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	emails, err := c.ListInboundEmails(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, contact.ID, emails[0].ClientID)
	assert.True(t, emails[0].Processed)
}

func TestCSVImportSkipsDuplicates(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	csvData := []byte("first_name,last_name,email\nMario,Rossi,mario@example.com\nGiulia,Bianchi,giulia@example.com\nMario,Rossi,mario@example.com\n")
	result, err := c.ImportCSVContacts(ctx, "contacts.csv", csvData)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 2, result.SuccessfulImports)
	assert.Equal(t, 1, result.DuplicatesSkipped)
	assert.Len(t, result.CreatedItems, 2)
}

func TestWooSyncSettingsToggle(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	settings, err := c.WooSyncSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.AutoSyncEnabled)

	updated, err := c.UpdateWooSyncSettings(ctx, map[string]any{
		"auto_sync_enabled":    false,
		"sync_interval_orders": 45,
	})
	require.NoError(t, err)
	assert.False(t, updated.AutoSyncEnabled)
	assert.Equal(t, 45, updated.SyncIntervalOrders)

	// The toggle persists.
	settings, err = c.WooSyncSettings(ctx)
	require.NoError(t, err)
	assert.False(t, settings.AutoSyncEnabled)
}

func TestWooSyncUpdatesStatus(t *testing.T) {
	srv, err := New(Config{WebhookSecret: testWebhookSecret}, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	c := client.New(ts.URL)
	ctx := context.Background()
	loginAdmin(t, c)

	ack, err := c.WooSyncCustomers(ctx, true)
	require.NoError(t, err)
	assert.True(t, ack.FullSync)

	// The sync runs in the background; run one synchronously to assert on
	// deterministic state.
	srv.runSync("products", false, "test")

	status, err := c.WooSyncStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.WooCommerceConnection)
	assert.Equal(t, 3, status.ProductCount)
	assert.NotNil(t, status.LastProductSync)
	assert.NotEmpty(t, status.RecentSyncLogs)
}

func TestEmailSettingsRoundTrip(t *testing.T) {
	_, c := newTestServer(t)
	ctx := context.Background()
	loginAdmin(t, c)

	useTLS := true
	updated, err := c.UpdateEmailSettings(ctx, models.EmailSettings{
		SMTPServer: "smtp.example.com",
		SMTPPort:   587,
		FromEmail:  "crm@grabovoi.com",
		UseTLS:     &useTLS,
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", updated.SMTPServer)

	got, err := c.GetEmailSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 587, got.SMTPPort)
}
