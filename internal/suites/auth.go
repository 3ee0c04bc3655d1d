package suites

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

// runAuth exercises login, the current-user endpoint and registration.
func runAuth(ctx context.Context, sc *Context) error {
	sc.Runner.Run(ctx, harness.Case{
		Name:           "login rejects wrong password",
		Method:         http.MethodPost,
		Path:           "/api/login",
		NoAuth:         true,
		Body:           models.LoginRequest{Email: sc.Config.AdminEmail, Password: "wrong-password"},
		ExpectedStatus: http.StatusUnauthorized,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "login rejects unknown account",
		Method:         http.MethodPost,
		Path:           "/api/login",
		NoAuth:         true,
		Body:           models.LoginRequest{Email: "nobody@example.com", Password: "whatever"},
		ExpectedStatus: http.StatusUnauthorized,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "admin login",
		Method:         http.MethodPost,
		Path:           "/api/login",
		NoAuth:         true,
		Body:           models.LoginRequest{Email: sc.Config.AdminEmail, Password: sc.Config.AdminPassword},
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.NonEmptyString("access_token"),
			harness.FieldEquals("token_type", "bearer"),
			harness.Expr(sc.Expr, `body.user.role == "admin"`),
		},
	})

	if err := sc.login(ctx); err != nil {
		return err
	}

	sc.Runner.Run(ctx, harness.Case{
		Name:           "current user",
		Method:         http.MethodGet,
		Path:           "/api/auth/me",
		ExpectedStatus: http.StatusOK,
		Checks: []harness.Check{
			harness.FieldEquals("email", sc.Config.AdminEmail),
			harness.FieldEquals("role", "admin"),
		},
	})

	email := "tester-" + uuid.NewString()[:8] + "@example.com"
	sc.Runner.Run(ctx, harness.Case{
		Name:           "register new account",
		Method:         http.MethodPost,
		Path:           "/api/register",
		NoAuth:         true,
		Body:           models.RegisterRequest{Name: "Suite Tester", Email: email, Password: "secret123"},
		ExpectedStatus: http.StatusOK,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "register rejects duplicate email",
		Method:         http.MethodPost,
		Path:           "/api/register",
		NoAuth:         true,
		Body:           models.RegisterRequest{Name: "Suite Tester", Email: email, Password: "secret123"},
		ExpectedStatus: http.StatusBadRequest,
	})

	// New accounts stay unverified until an admin approves them.
	sc.Runner.Run(ctx, harness.Case{
		Name:           "unverified account cannot log in",
		Method:         http.MethodPost,
		Path:           "/api/login",
		NoAuth:         true,
		Body:           models.LoginRequest{Email: email, Password: "secret123"},
		ExpectedStatus: http.StatusUnauthorized,
	})

	// Verification and reset tokens are delivered by email, so only the
	// rejection paths are checkable here.
	sc.Runner.Run(ctx, harness.Case{
		Name:           "verify-email rejects an invalid token",
		Method:         http.MethodPost,
		Path:           "/api/verify-email",
		NoAuth:         true,
		Body:           map[string]string{"token": "not-a-real-token"},
		ExpectedStatus: http.StatusBadRequest,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "forgot-password never reveals whether the account exists",
		Method:         http.MethodPost,
		Path:           "/api/forgot-password",
		NoAuth:         true,
		Body:           map[string]string{"email": "nobody-" + uuid.NewString()[:8] + "@example.com"},
		ExpectedStatus: http.StatusOK,
		Checks:         []harness.Check{harness.NonEmptyString("message")},
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "reset-password rejects an invalid token",
		Method:         http.MethodPost,
		Path:           "/api/reset-password",
		NoAuth:         true,
		Body:           map[string]string{"token": "not-a-real-token", "new_password": "secret456"},
		ExpectedStatus: http.StatusBadRequest,
	})

	sc.Runner.Run(ctx, harness.Case{
		Name:           "garbage token is rejected",
		Method:         http.MethodGet,
		Path:           "/api/auth/me",
		NoAuth:         true,
		Headers:        map[string]string{"Authorization": "Bearer not-a-token"},
		ExpectedStatus: http.StatusUnauthorized,
	})
	return nil
}
