// Package suites contains the acceptance suites run against a CRM backend.
// Each suite mirrors one tester of the original acceptance pack: a login,
// a sequence of HTTP cases with expected status codes and body checks, and
// a pass/fail tally kept by the shared runner.
package suites

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/lolijho/crm-grab-backend-sub000/internal/config"
	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
)

// Context is the shared state handed to every suite.
type Context struct {
	Runner *harness.Runner
	Expr   *harness.ExprEngine
	Config config.Config
	Log    *zap.SugaredLogger
}

// login authenticates as the configured admin and installs the token on
// the shared client. Suites that are not about authentication call this
// first and abort on failure.
func (sc *Context) login(ctx context.Context) error {
	if sc.Runner.Client().Token() != "" {
		return nil
	}
	_, err := sc.Runner.Client().Login(ctx, sc.Config.AdminEmail, sc.Config.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin login failed: %w", err)
	}
	return nil
}

// Suite is one named group of cases.
type Suite struct {
	Name        string
	Description string
	Run         func(ctx context.Context, sc *Context) error
}

// Registry returns every suite in execution order. The names double as the
// CLI selection tokens.
func Registry() []Suite {
	return []Suite{
		{"status", "backend health and auth gating", runStatus},
		{"auth", "login, current user, registration, password reset", runAuth},
		{"admin", "dashboard stats and user management", runAdmin},
		{"contacts", "contact CRUD, filters and pagination", runContacts},
		{"contact", "single-contact detail, tags and associations", runContact},
		{"courses", "course CRUD, filters and enrollment", runCourses},
		{"products", "product CRUD", runProducts},
		{"crmproducts", "CRM product CRUD and payment links", runCRMProducts},
		{"orders", "order CRUD and totals", runOrders},
		{"bulk", "looped CRUD approximating bulk updates", runBulk},
		{"import", "CSV and Google Sheets import", runImport},
		{"inbound", "signed Postmark webhook and inbound email listing", runInbound},
		{"messaging", "email settings and outbound messages", runMessaging},
		{"woocommerce", "sync settings, triggers and status", runWooCommerce},
		{"pagination", "pagination envelope behavior across pages", runPagination},
		{"performance", "endpoint latency, sequential and parallel", runPerformance},
	}
}

// Lookup finds a suite by name.
func Lookup(name string) (Suite, bool) {
	for _, s := range Registry() {
		if s.Name == name {
			return s, true
		}
	}
	return Suite{}, false
}

// mustQuery builds url.Values from alternating key/value pairs. It panics
// on an odd argument count, which is always a programming error.
func mustQuery(kv ...string) url.Values {
	if len(kv)%2 != 0 {
		panic("mustQuery: odd number of arguments")
	}
	v := url.Values{}
	for i := 0; i < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}

// DefaultNames is the suite set run when no selection is given. The
// performance suite is opt-in.
func DefaultNames() []string {
	var out []string
	for _, s := range Registry() {
		if s.Name == "performance" {
			continue
		}
		out = append(out, s.Name)
	}
	return out
}
