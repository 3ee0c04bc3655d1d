package history

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunLifecycle(t *testing.T) {
	s := openTestStore(t)

	runID, err := s.StartRun("http://localhost:8001")
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	res := &harness.Result{
		Case: harness.Case{
			Name:           "List Contacts",
			Method:         http.MethodGet,
			Path:           "/api/contacts",
			ExpectedStatus: 200,
			Measure:        true,
		},
		Passed:     true,
		StatusCode: 200,
		Elapsed:    85 * time.Millisecond,
	}
	require.NoError(t, s.Record(runID, "contacts", res))
	require.NoError(t, s.FinishRun(runID, 1, 1))

	runs, err := s.RecentRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, 1, runs[0].TestsRun)
	assert.Equal(t, 1, runs[0].TestsPassed)
}

func TestRecentRunsOrder(t *testing.T) {
	s := openTestStore(t)

	first, err := s.StartRun("http://a")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.StartRun("http://b")
	require.NoError(t, err)

	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
}

func TestAverageLatency(t *testing.T) {
	s := openTestStore(t)
	runID, err := s.StartRun("http://localhost:8001")
	require.NoError(t, err)

	for _, ms := range []time.Duration{100, 200} {
		res := &harness.Result{
			Case: harness.Case{
				Name: "List Contacts", Method: http.MethodGet,
				Path: "/api/contacts", ExpectedStatus: 200, Measure: true,
			},
			Passed: true, StatusCode: 200,
			Elapsed: ms * time.Millisecond,
		}
		require.NoError(t, s.Record(runID, "performance", res))
	}

	avg, ok, err := s.AverageLatency("/api/contacts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 150, avg, 0.01)

	_, ok, err = s.AverageLatency("/api/never-measured")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMeasuredPaths(t *testing.T) {
	s := openTestStore(t)
	runID, err := s.StartRun("http://localhost:8001")
	require.NoError(t, err)

	for _, tc := range []struct {
		path    string
		elapsed time.Duration
	}{
		{"/api/orders", 40 * time.Millisecond},
		{"/api/contacts", 80 * time.Millisecond},
		{"/api/health", 0}, // unmeasured cases never appear
	} {
		res := &harness.Result{
			Case: harness.Case{
				Name: "list " + tc.path, Method: http.MethodGet,
				Path: tc.path, ExpectedStatus: 200, Measure: tc.elapsed > 0,
			},
			Passed: true, StatusCode: 200,
			Elapsed: tc.elapsed,
		}
		require.NoError(t, s.Record(runID, "performance", res))
	}

	paths, err := s.MeasuredPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/contacts", "/api/orders"}, paths)
}
