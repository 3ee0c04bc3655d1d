package suites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// runOrders exercises order CRUD, computed totals and the contact embed.
func runOrders(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}
	api := sc.Runner.Client()

	buyer, err := api.CreateContact(ctx, models.ContactCreate{
		FirstName: "Paolo",
		LastName:  "Neri",
		Email:     uniqueEmail("paolo.neri"),
		Status:    models.StatusClient,
	})
	if err != nil {
		return fmt.Errorf("setup buyer: %w", err)
	}

	res := sc.Runner.Run(ctx, harness.Case{
		Name:   "create order",
		Method: http.MethodPost,
		Path:   "/api/orders",
		Body: models.OrderCreate{
			ContactID:     buyer.ID,
			Status:        "pending",
			PaymentMethod: "card",
			Items: []models.OrderItem{
				{ProductName: "Corso Base", Quantity: 1, UnitPrice: 100, TotalPrice: 100},
				{ProductName: "Manuale", Quantity: 2, UnitPrice: 25, TotalPrice: 50},
			},
		},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("id", "order_number", "total_amount", "status"),
			harness.FieldEquals("total_amount", 150.0),
			harness.FieldEquals("status", "pending"),
			harness.Expr(sc.Expr, `body.order_number startsWith "ORD-"`),
		},
	})
	orderID, _ := res.Body["id"].(string)
	if orderID == "" {
		return fmt.Errorf("create order returned no id")
	}

	// total_amount is the sum of the per-item totals, so an item without
	// total_price is a validation error, not a zero-priced line.
	sc.Runner.Run(ctx, harness.Case{
		Name:   "order item without total_price is rejected",
		Method: http.MethodPost,
		Path:   "/api/orders",
		Body: models.OrderCreate{
			ContactID: buyer.ID,
			Items: []models.OrderItem{
				{ProductName: "Corso Base", Quantity: 1, UnitPrice: 100},
			},
		},
		ExpectedStatus: http.StatusUnprocessableEntity,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "get order embeds contact",
		Method:         http.MethodGet,
		Path:           "/api/orders/" + orderID,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("contact.id", buyer.ID),
			harness.Expr(sc.Expr, "len(body.items) == 2"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "list orders with pagination",
		Method:         http.MethodGet,
		Path:           "/api/orders",
		Query:          mustQuery("page", "1", "limit", "10"),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Pagination("orders", 10),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "legacy order list is a bare array",
		Method:         http.MethodGet,
		Path:           "/api/orders/original",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			func(r *harness.Result) error {
				var orders []models.Order
				if err := json.Unmarshal(r.Raw, &orders); err != nil {
					return fmt.Errorf("legacy list is not an array: %w", err)
				}
				for _, o := range orders {
					if o.ID == orderID {
						return nil
					}
				}
				return fmt.Errorf("order %s missing from legacy list", orderID)
			},
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "update order status",
		Method:         http.MethodPut,
		Path:           "/api/orders/" + orderID,
		Body:           map[string]any{"status": "completed", "payment_status": "paid"},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("status", "completed"),
			harness.FieldEquals("payment_status", "paid"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "delete order",
		Method:         http.MethodDelete,
		Path:           "/api/orders/" + orderID,
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "deleted order is gone",
		Method:         http.MethodGet,
		Path:           "/api/orders/" + orderID,
		ExpectedStatus: http.StatusNotFound,
	})
	return nil
}
