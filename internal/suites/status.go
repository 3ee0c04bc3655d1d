package suites

import (
	"context"
	"net/http"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
)

// runStatus verifies the backend is up and that protected routes reject
// anonymous callers.
func runStatus(ctx context.Context, sc *Context) error {
	sc.Runner.Run(ctx, harness.Case{
		Name:           "health check",
		Method:         http.MethodGet,
		Path:           "/api/health",
		NoAuth:         true,
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("status", "healthy"),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "contacts require authentication",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		NoAuth:         true,
		ExpectedStatus: http.StatusUnauthorized,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "orders require authentication",
		Method:         http.MethodGet,
		Path:           "/api/orders",
		NoAuth:         true,
		ExpectedStatus: http.StatusUnauthorized,
	})
	return nil
}
