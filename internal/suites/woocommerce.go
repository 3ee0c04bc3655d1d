package suites

import (
	"context"
	"net/http"
	"time"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
)

// syncSettle is how long the suite waits for a background sync pass to
// land before polling the status endpoint.
const syncSettle = 2 * time.Second

// runWooCommerce exercises sync settings, the trigger endpoints and the
// status report.
func runWooCommerce(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "sync settings",
		Method:         http.MethodGet,
		Path:           "/api/woocommerce/sync/settings",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("auto_sync_enabled", "sync_interval_orders",
				"sync_interval_customers", "sync_interval_products", "full_sync_hour"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "disable auto sync",
		Method:         http.MethodPut,
		Path:           "/api/woocommerce/sync/settings",
		Body:           map[string]any{"auto_sync_enabled": false, "sync_interval_orders": 45},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("auto_sync_enabled", false),
			harness.FieldEquals("sync_interval_orders", 45),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "settings change persists",
		Method:         http.MethodGet,
		Path:           "/api/woocommerce/sync/settings",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("auto_sync_enabled", false),
			harness.FieldEquals("sync_interval_orders", 45),
			harness.NonEmptyString("updated_by"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "re-enable auto sync",
		Method:         http.MethodPut,
		Path:           "/api/woocommerce/sync/settings",
		Body:           map[string]any{"auto_sync_enabled": true},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("auto_sync_enabled", true),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "test connection",
		Method:         http.MethodGet,
		Path:           "/api/woocommerce/test-connection",
		ExpectedStatus: http.StatusOK,
	})

	for _, entity := range []string{"customers", "products", "orders"} {
		sc.Runner.Run(ctx, harness.Case{
			Name:           "trigger " + entity + " sync",
			Method:         http.MethodPost,
			Path:           "/api/woocommerce/sync/" + entity,
			Query:          mustQuery("full_sync", "true"),
			ExpectedStatus: http.StatusOK,
			Checks: []harness.Check{
				harness.NonEmptyString("message"),
				harness.FieldEquals("full_sync", true),
			},
		})
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "trigger full sync",
		Method:         http.MethodPost,
		Path:           "/api/woocommerce/sync/all",
		ExpectedStatus: http.StatusOK,
	})

	// Syncs run in the background; give them a moment before polling.
	select {
	case <-time.After(syncSettle):
	case <-ctx.Done():
		return ctx.Err()
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "sync status reflects completed syncs",
		Method:         http.MethodGet,
		Path:           "/api/woocommerce/sync/status",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("woocommerce_connection", true),
			harness.Expr(sc.Expr, "body.customer_count >= 2 and body.product_count >= 3 and body.order_count >= 1"),
			harness.Expr(sc.Expr, "len(body.recent_sync_logs) >= 3"),
			harness.Expr(sc.Expr, `all(body.recent_sync_logs, {.status == "completed"})`),
		},
	})
	return nil
}
