package suites

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lolijho/crm-grab-backend-sub000/internal/config"
	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/internal/mockcrm"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/client"
)

const testWebhookSecret = "postmark-test-secret"

// newSuiteContext starts a mock backend and builds a suite context bound
// to it. Each test gets a fresh backend, so suites cannot leak state into
// one another.
func newSuiteContext(t *testing.T) *Context {
	t.Helper()

	srv, err := mockcrm.New(mockcrm.Config{WebhookSecret: testWebhookSecret}, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := config.Default()
	cfg.BaseURL = ts.URL
	cfg.WebhookSecret = testWebhookSecret

	return &Context{
		Runner: harness.NewRunner(client.New(ts.URL), nil, nil),
		Expr:   harness.NewExprEngine(),
		Config: cfg,
		Log:    zap.NewNop().Sugar(),
	}
}

func TestRegistryNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Registry() {
		assert.False(t, seen[s.Name], "duplicate suite name %q", s.Name)
		seen[s.Name] = true
		assert.NotNil(t, s.Run, "suite %q has no Run", s.Name)
		assert.NotEmpty(t, s.Description)
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("contacts")
	require.True(t, ok)
	assert.Equal(t, "contacts", s.Name)

	_, ok = Lookup("nonsense")
	assert.False(t, ok)
}

func TestDefaultNamesExcludePerformance(t *testing.T) {
	for _, name := range DefaultNames() {
		assert.NotEqual(t, "performance", name)
	}
	assert.NotEmpty(t, DefaultNames())
}

// Every suite must pass against the mock backend. Run them one by one so
// a failing suite names itself.
func TestSuitesAgainstMockBackend(t *testing.T) {
	for _, suite := range Registry() {
		t.Run(suite.Name, func(t *testing.T) {
			sc := newSuiteContext(t)
			err := suite.Run(context.Background(), sc)
			require.NoError(t, err)

			require.Positive(t, sc.Runner.TestsRun(), "suite ran no cases")
			assert.True(t, sc.Runner.AllPassed(),
				"%d of %d cases failed", sc.Runner.TestsRun()-sc.Runner.TestsPassed(), sc.Runner.TestsRun())
		})
	}
}

// Suites share one runner when executed as a set; the tally must carry
// across suites.
func TestSuitesShareRunnerTally(t *testing.T) {
	sc := newSuiteContext(t)

	for _, name := range []string{"status", "auth"} {
		suite, ok := Lookup(name)
		require.True(t, ok)
		require.NoError(t, suite.Run(context.Background(), sc))
	}

	assert.True(t, sc.Runner.AllPassed())
	assert.GreaterOrEqual(t, sc.Runner.TestsRun(), 10)
	assert.InDelta(t, 1.0, sc.Runner.PassRate(), 0.0001)
}

func TestSuiteLoginFailureAborts(t *testing.T) {
	sc := newSuiteContext(t)
	sc.Config.AdminPassword = "definitely-wrong"

	suite, ok := Lookup("contacts")
	require.True(t, ok)
	err := suite.Run(context.Background(), sc)
	require.Error(t, err)
	assert.Zero(t, sc.Runner.TestsRun())
}
