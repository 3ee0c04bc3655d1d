package suites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// runAdmin covers the dashboard endpoints and the admin-only user
// management surface, including the 403 for non-admin callers.
func runAdmin(ctx context.Context, sc *Context) error {
	if err := sc.login(ctx); err != nil {
		return err
	}
	api := sc.Runner.Client()

	admin, err := api.Me(ctx)
	if err != nil {
		return fmt.Errorf("current user: %w", err)
	}

	// Make sure there is at least one contact so the counters are non-zero.
	if _, err := api.CreateContact(ctx, models.ContactCreate{
		FirstName: "Dario",
		LastName:  "Conti",
		Email:     uniqueEmail("dario.conti"),
		Status:    models.StatusLead,
	}); err != nil {
		return fmt.Errorf("setup contact: %w", err)
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "dashboard stats",
		Method:         http.MethodGet,
		Path:           "/api/dashboard/stats",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("total_contacts", "active_students", "total_orders", "leads"),
			harness.Expr(sc.Expr, `body.total_contacts >= 1`),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "dashboard initial data bundles stats and lists",
		Method:         http.MethodGet,
		Path:           "/api/dashboard/initial-data",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("stats", "contacts", "products", "courses"),
			harness.Expr(sc.Expr, `body.contacts.pagination.current_page == 1`),
			harness.Expr(sc.Expr, `body.stats.total_contacts >= 1`),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "user list includes the admin account",
		Method:         http.MethodGet,
		Path:           "/api/admin/users",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			func(r *harness.Result) error {
				var users []models.User
				if err := json.Unmarshal(r.Raw, &users); err != nil {
					return fmt.Errorf("user list is not an array: %w", err)
				}
				for _, u := range users {
					if u.Email == sc.Config.AdminEmail {
						return nil
					}
				}
				return fmt.Errorf("admin account %s missing from user list", sc.Config.AdminEmail)
			},
		},
	})

	email := uniqueEmail("manager")
	const password = "manager-secret1"
	created, err := api.AdminCreateUser(ctx, models.AdminUserCreate{
		Name:     "Suite Manager",
		Email:    email,
		Password: password,
		Role:     "manager",
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user, _ := created["user"].(map[string]any)
	userID, _ := user["id"].(string)
	if userID == "" {
		return fmt.Errorf("create user response carries no id: %v", created)
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "admin-created account can log in immediately",
		Method:         http.MethodPost,
		Path:           "/api/login",
		NoAuth:         true,
		Body:           models.LoginRequest{Email: email, Password: password},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.Expr(sc.Expr, `body.user.role == "manager"`),
			harness.Expr(sc.Expr, `body.user.is_verified == true`),
		},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "duplicate user email is rejected",
		Method:         http.MethodPost,
		Path:           "/api/admin/users",
		Body:           models.AdminUserCreate{Name: "Dup", Email: email, Password: "whatever1"},
		ExpectedStatus: http.StatusBadRequest,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "demote user role",
		Method:         http.MethodPut,
		Path:           "/api/admin/users/" + userID,
		Body:           map[string]any{"role": "user"},
		ExpectedStatus: http.StatusOK,
		Checks:         []harness.Check{harness.Expr(sc.Expr, `body.user.role == "user"`)},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "user stats break down by role",
		Method:         http.MethodGet,
		Path:           "/api/admin/users/stats",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.RequireFields("total_users", "verified_users", "unverified_users", "users_by_role"),
			harness.Expr(sc.Expr, `body.total_users >= 2`),
		},
	})

	// The user management surface is admin-only: switch to the demoted
	// account, probe it, then restore the admin token.
	adminToken := api.Token()
	if _, err := api.Login(ctx, email, password); err != nil {
		api.SetToken(adminToken)
		return fmt.Errorf("login as demoted user: %w", err)
	}
	sc.Runner.Run(ctx, harness.Case{
		Name:           "non-admin cannot list users",
		Method:         http.MethodGet,
		Path:           "/api/admin/users",
		ExpectedStatus: http.StatusForbidden,
	})
	sc.Runner.Run(ctx, harness.Case{
		Name:           "non-admin cannot delete users",
		Method:         http.MethodDelete,
		Path:           "/api/admin/users/" + admin.ID,
		ExpectedStatus: http.StatusForbidden,
	})
	api.SetToken(adminToken)

	sc.Runner.Run(ctx, harness.Case{
		Name:           "admin cannot delete own account",
		Method:         http.MethodDelete,
		Path:           "/api/admin/users/" + admin.ID,
		ExpectedStatus: http.StatusBadRequest,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "delete user",
		Method:         http.MethodDelete,
		Path:           "/api/admin/users/" + userID,
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "updating a deleted user returns 404",
		Method:         http.MethodPut,
		Path:           "/api/admin/users/" + userID,
		Body:           map[string]any{"name": "Ghost " + uuid.NewString()[:8]},
		ExpectedStatus: http.StatusNotFound,
	})
	return nil
}
