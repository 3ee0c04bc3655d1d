package cli

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolijho/crm-grab-backend-sub000/internal/history"
	"github.com/lolijho/crm-grab-backend-sub000/internal/mockcrm"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func startMockBackend(t *testing.T) string {
	t.Helper()
	srv, err := mockcrm.New(mockcrm.Config{WebhookSecret: "postmark-test-secret"}, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "apicheck")
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "contacts")
	assert.Contains(t, out, "woocommerce")
	assert.Contains(t, out, "performance")
	assert.Contains(t, out, "* runs by default")
}

func TestRunUnknownSuite(t *testing.T) {
	_, err := execute(t, "run", "nonsense")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown suite "nonsense"`)
}

func TestRunSuitesAgainstMock(t *testing.T) {
	url := startMockBackend(t)

	out, err := execute(t, "run", "status", "auth", "--base-url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "🧪 status")
	assert.Contains(t, out, "🧪 auth")
	assert.Contains(t, out, "tests passed (100.0%)")
}

func TestRunFailsAgainstDeadBackend(t *testing.T) {
	// Nothing listens here; every case must fail and the command must
	// report a non-nil error for the exit code.
	out, err := execute(t, "run", "status", "--base-url", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, out, "❌")
}

func TestRunRecordsHistory(t *testing.T) {
	url := startMockBackend(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	_, err := execute(t, "run", "status", "--base-url", url, "--history-db", dbPath)
	require.NoError(t, err)

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.RecentRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, url, runs[0].BaseURL)
	assert.Positive(t, runs[0].TestsRun)
	assert.Equal(t, runs[0].TestsRun, runs[0].TestsPassed)

	out, err := execute(t, "history", "--history-db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, url)
	// No measured cases yet, so no latency section.
	assert.NotContains(t, out, "AVG LATENCY")
}

func TestHistoryShowsLatencySummary(t *testing.T) {
	url := startMockBackend(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	_, err := execute(t, "run", "performance", "--base-url", url, "--history-db", dbPath)
	require.NoError(t, err)

	out, err := execute(t, "history", "--history-db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "AVG LATENCY")
	assert.Contains(t, out, "/api/contacts")
}

func TestRunWritesJSONReport(t *testing.T) {
	url := startMockBackend(t)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	_, err := execute(t, "run", "status", "--base-url", url, "--report", reportPath)
	require.NoError(t, err)
	assert.FileExists(t, reportPath)
}

func TestHistoryWithoutDatabase(t *testing.T) {
	_, err := execute(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history database configured")
}
