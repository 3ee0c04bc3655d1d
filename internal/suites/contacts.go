package suites

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}

// runContacts exercises contact CRUD, filters and the pagination envelope.
func runContacts(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}

	email := uniqueEmail("mario.rossi")
	res := sc.Runner.Run(ctx, harness.Case{
		Name:   "create contact",
		Method: http.MethodPost,
		Path:   "/api/contacts",
		Body: models.ContactCreate{
			FirstName: "Mario",
			LastName:  "Rossi",
			Email:     email,
			Phone:     "+39 333 1234567",
			City:      "Milano",
			Language:  "it",
			Status:    models.StatusLead,
		},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("id", "first_name", "last_name", "email", "status"),
			harness.FieldEquals("status", models.StatusLead),
		},
	})
	id, _ := res.Body["id"].(string)
	if id == "" {
		return fmt.Errorf("create contact returned no id")
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "create contact requires first and last name",
		Method:         http.MethodPost,
		Path:           "/api/contacts",
		Body:           map[string]any{"email": uniqueEmail("anon")},
		ExpectedStatus: http.StatusUnprocessableEntity,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "get contact",
		Method:         http.MethodGet,
		Path:           "/api/contacts/" + id,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("email", email),
			harness.FieldEquals("first_name", "Mario"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "update contact status",
		Method:         http.MethodPut,
		Path:           "/api/contacts/" + id,
		Body:           map[string]any{"status": models.StatusClient, "notes": "upgraded after first order"},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("status", models.StatusClient),
			harness.FieldEquals("notes", "upgraded after first order"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "list contacts with pagination",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		Query:          url.Values{"page": {"1"}, "limit": {"5"}},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Pagination("contacts", 5),
			harness.Expr(sc.Expr, "body.pagination.total_count >= 1"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "filter contacts by status",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		Query:          url.Values{"status": {models.StatusClient}, "limit": {"50"}},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Pagination("contacts", 50),
			harness.Expr(sc.Expr, `all(body.contacts, {.status == "client"})`),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "search contacts by name",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		Query:          url.Values{"search": {"Mario"}, "limit": {"50"}},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, "len(body.contacts) >= 1"),
		},
	})

	// The pre-pagination route still serves a bare array.
	sc.Runner.Run(ctx, harness.Case{
		Name:           "legacy contact list",
		Method:         http.MethodGet,
		Path:           "/api/contacts/original",
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "get unknown contact",
		Method:         http.MethodGet,
		Path:           "/api/contacts/" + uuid.NewString(),
		ExpectedStatus: http.StatusNotFound,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "delete contact",
		Method:         http.MethodDelete,
		Path:           "/api/contacts/" + id,
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "deleted contact is gone",
		Method:         http.MethodGet,
		Path:           "/api/contacts/" + id,
		ExpectedStatus: http.StatusNotFound,
	})
	return nil
}
