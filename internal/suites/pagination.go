package suites

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// runPagination creates a known batch of contacts and walks it page by
// page, checking the envelope arithmetic on every page.
func runPagination(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}
	api := sc.Runner.Client()

	const total, limit = 7, 3
	batch := uuid.NewString()[:8]
	for i := 0; i < total; i++ {
		_, err := api.CreateContact(ctx, models.ContactCreate{
			FirstName: "Pag",
			LastName:  fmt.Sprintf("Walker %02d", i+1),
			Email:     fmt.Sprintf("pag-%s-%02d@example.com", batch, i+1),
			Status:    models.StatusLead,
		})
		if err != nil {
			return fmt.Errorf("setup batch contact %d: %w", i+1, err)
		}
	}

	// The backend estimates totals: it fetches limit+1 rows and reports
	// rows-seen-so-far (+1 when another page exists), so total_count and
	// total_pages are only exact on the last page.
	pages := (total + limit - 1) / limit
	for page := 1; page <= pages; page++ {
		wantItems := limit
		if page == pages {
			wantItems = total - limit*(pages-1)
		}
		seen := (page-1)*limit + wantItems

		checks := []harness.Check{
			harness.Pagination("contacts", limit),
			harness.FieldEquals("pagination.current_page", page),
			harness.Expr(sc.Expr, fmt.Sprintf("len(body.contacts) == %d", wantItems)),
		}
		if page == pages {
			checks = append(checks,
				harness.FieldEquals("pagination.total_count", total),
				harness.FieldEquals("pagination.total_pages", pages),
			)
		} else {
			checks = append(checks,
				harness.Expr(sc.Expr, fmt.Sprintf("body.pagination.total_count >= %d", seen)),
				harness.Expr(sc.Expr, fmt.Sprintf("body.pagination.total_pages >= %d", page)),
			)
		}

		sc.Runner.Run(ctx, harness.Case{
			Name:           fmt.Sprintf("page %d of %d", page, pages),
			Method:         http.MethodGet,
			Path:           "/api/contacts",
			Query:          mustQuery("search", "pag-"+batch, "page", strconv.Itoa(page), "limit", strconv.Itoa(limit)),
			ExpectedStatus: http.StatusOK,
			Checks:         checks,
		})
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "page past the end is empty",
		Method:         http.MethodGet,
		Path:           "/api/contacts",
		Query:          mustQuery("search", "pag-"+batch, "page", strconv.Itoa(pages+1), "limit", strconv.Itoa(limit)),
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, "len(body.contacts) == 0"),
			harness.Expr(sc.Expr, fmt.Sprintf("body.pagination.total_count >= %d", total)),
		},
	})
	return nil
}
