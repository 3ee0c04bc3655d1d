package suites

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// bulkBatchSize is the number of contacts created, updated and deleted by
// the bulk suite.
const bulkBatchSize = 10

// runBulk approximates bulk operations with loops of single-record calls,
// the way the backend is actually driven by its frontend.
func runBulk(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}

	batch := uuid.NewString()[:8]
	ids := make([]string, 0, bulkBatchSize)
	for i := 0; i < bulkBatchSize; i++ {
		res := sc.Runner.Run(ctx, harness.Case{
			Name:   fmt.Sprintf("bulk create contact %d", i+1),
			Method: http.MethodPost,
			Path:   "/api/contacts",
			Body: models.ContactCreate{
				FirstName: "Bulk",
				LastName:  fmt.Sprintf("Contact %02d", i+1),
				Email:     fmt.Sprintf("bulk-%s-%02d@example.com", batch, i+1),
				Source:    "bulk-suite",
				Status:    models.StatusLead,
			},
			ExpectedStatus: http.StatusOK,
			Checks: []harness.Check{
				harness.NonEmptyString("id"),
			},
		})
		if id, ok := res.Body["id"].(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) != bulkBatchSize {
		return fmt.Errorf("bulk create produced %d of %d contacts", len(ids), bulkBatchSize)
	}

	for i, id := range ids {
		sc.Runner.Run(ctx, harness.Case{
			Name:           fmt.Sprintf("bulk promote contact %d", i+1),
			Method:         http.MethodPut,
			Path:           "/api/contacts/" + id,
			Body:           map[string]any{"status": models.StatusClient},
			ExpectedStatus: http.StatusOK,
			Checks: []harness.Check{
				harness.FieldEquals("status", models.StatusClient),
			},
		})
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "bulk batch is searchable",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		Query:          mustQuery("search", "bulk-"+batch, "limit", "50"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, fmt.Sprintf("len(body.contacts) == %d", bulkBatchSize)),
			harness.Expr(sc.Expr, `all(body.contacts, {.status == "client"})`),
		},
	})

	for i, id := range ids {
		sc.Runner.Run(ctx, harness.Case{
			Name:           fmt.Sprintf("bulk delete contact %d", i+1),
			Method:         http.MethodDelete,
			Path:           "/api/contacts/" + id,
			ExpectedStatus: http.StatusOK,
		})
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "bulk batch is gone",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		Query:          mustQuery("search", "bulk-"+batch, "limit", "50"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, "len(body.contacts) == 0"),
		},
	})
	return nil
}
