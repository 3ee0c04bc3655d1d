package suites

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// runCRMProducts exercises the custom product catalog kept apart from the
// synced WooCommerce one.
func runCRMProducts(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}

	res := sc.Runner.Run(ctx, harness.Case{
		Name:   "create crm product",
		Method: http.MethodPost,
		Path:   "/api/crm-products",
		Body: models.CRMProduct{
			Name:        "Consulenza Individuale",
			Description: "Sessione da 60 minuti",
			BasePrice:   120,
			Category:    "servizi",
			IsActive:    true,
		},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("id", "name", "base_price"),
			harness.FieldEquals("base_price", 120.0),
		},
	})
	id, _ := res.Body["id"].(string)
	if id == "" {
		return fmt.Errorf("create crm product returned no id")
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "list crm products with pagination",
		Method:         http.MethodGet,
		Path:           "/api/crm-products",
		Query:          mustQuery("page", "1", "limit", "10"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Pagination("data", 10),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "new crm product has no payment links",
		Method:         http.MethodGet,
		Path:           "/api/crm-products/" + id,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("payment_links_count", 0),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "crm product payment links",
		Method:         http.MethodGet,
		Path:           "/api/crm-products/" + id + "/payment-links",
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "update crm product",
		Method:         http.MethodPut,
		Path:           "/api/crm-products/" + id,
		Body:           map[string]any{"base_price": 150.0, "is_active": false},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("base_price", 150.0),
			harness.FieldEquals("is_active", false),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "delete crm product",
		Method:         http.MethodDelete,
		Path:           "/api/crm-products/" + id,
		ExpectedStatus: http.StatusOK,
	})
	return nil
}
