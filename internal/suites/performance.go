package suites

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/client"
)

// runPerformance measures the latency of the main list endpoints, first
// sequentially per endpoint and then as one parallel burst.
func runPerformance(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}
	api := sc.Runner.Client()

	endpoints := []string{"/api/contacts", "/api/orders", "/api/courses", "/api/products"}

	sequential := time.Duration(0)
	for _, path := range endpoints {
		res := sc.Runner.Run(ctx, harness.Case{
			Name:           "latency " + path,
			Method:         http.MethodGet,
			Path:           path,
			Query:          mustQuery("page", "1", "limit", "50"),
			Measure:        true,
			ExpectedStatus: http.StatusOK,
		})
		sequential += res.Elapsed
		sc.Log.Infow("endpoint latency", "path", path, "elapsed", res.Elapsed)
	}

	// The same endpoints again, in flight at once. The backend must serve
	// concurrent readers without serializing them.
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, path := range endpoints {
		g.Go(func() error {
			resp, err := api.Do(gctx, http.MethodGet, path, nil,
				client.WithQuery(mustQuery("page", "1", "limit", "50")))
			if err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				return &client.APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
			}
			return nil
		})
	}
	err := g.Wait()
	parallel := time.Since(start)

	res := &harness.Result{
		Case: harness.Case{
			Name:   "parallel list burst",
			Method: http.MethodGet,
			Path:   "(parallel)",
		},
		Passed:     err == nil,
		StatusCode: http.StatusOK,
		Elapsed:    parallel,
	}
	if err != nil {
		res.StatusCode = 0
		res.Err = err
		res.Failures = append(res.Failures, err.Error())
	}
	sc.Runner.Record(res)

	sc.Log.Infow("parallel burst",
		"endpoints", len(endpoints),
		"sequential", sequential,
		"parallel", parallel,
	)
	return nil
}
