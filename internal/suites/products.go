package suites

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// runProducts exercises the WooCommerce-style product catalog.
func runProducts(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}

	sku := "SKU-" + uuid.NewString()[:8]
	res := sc.Runner.Run(ctx, harness.Case{
		Name:   "create product",
		Method: http.MethodPost,
		Path:   "/api/products",
		Body: models.Product{
			Name:        "Manuale Completo",
			Description: "Edizione cartacea",
			Price:       49.9,
			Category:    "libri",
			SKU:         sku,
			IsActive:    true,
		},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("id", "name", "price"),
			harness.FieldEquals("sku", sku),
		},
	})
	id, _ := res.Body["id"].(string)
	if id == "" {
		return fmt.Errorf("create product returned no id")
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "list products with pagination",
		Method:         http.MethodGet,
		Path:           "/api/products",
		Query:          mustQuery("page", "1", "limit", "10"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Pagination("data", 10),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "get product",
		Method:         http.MethodGet,
		Path:           "/api/products/" + id,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("name", "Manuale Completo"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "update product price",
		Method:         http.MethodPut,
		Path:           "/api/products/" + id,
		Body:           map[string]any{"price": 39.9},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("price", 39.9),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "delete product",
		Method:         http.MethodDelete,
		Path:           "/api/products/" + id,
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "deleted product is gone",
		Method:         http.MethodGet,
		Path:           "/api/products/" + id,
		ExpectedStatus: http.StatusNotFound,
	})
	return nil
}
