package harness

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/client"
)

func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})
	mux.HandleFunc("/api/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/api/plain", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunnerStatusMatch(t *testing.T) {
	srv := newTestBackend(t)
	r := NewRunner(client.New(srv.URL), nil, nil)

	res := r.Run(context.Background(), Case{
		Name:           "health",
		Method:         http.MethodGet,
		Path:           "/api/health",
		ExpectedStatus: http.StatusOK,
	})

	require.True(t, res.Passed)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "healthy", res.Body["status"])
	assert.Equal(t, 1, r.TestsRun())
	assert.Equal(t, 1, r.TestsPassed())
}

func TestRunnerStatusMismatchFails(t *testing.T) {
	srv := newTestBackend(t)
	r := NewRunner(client.New(srv.URL), nil, nil)

	res := r.Run(context.Background(), Case{
		Name:           "missing",
		Method:         http.MethodGet,
		Path:           "/api/missing",
		ExpectedStatus: http.StatusOK,
	})

	assert.False(t, res.Passed)
	assert.Len(t, res.Failures, 1)
	assert.Equal(t, 0, r.TestsPassed())
}

func TestRunnerTransportErrorFails(t *testing.T) {
	// Connection refused: nothing listens on this address.
	r := NewRunner(client.New("http://127.0.0.1:1"), nil, nil)

	res := r.Run(context.Background(), Case{
		Name:           "unreachable",
		Method:         http.MethodGet,
		Path:           "/api/health",
		ExpectedStatus: http.StatusOK,
	})

	assert.False(t, res.Passed)
	assert.Error(t, res.Err)
	assert.Equal(t, float64(0), r.PassRate())
}

func TestRunnerNonJSONBodyYieldsEmptyMap(t *testing.T) {
	srv := newTestBackend(t)
	r := NewRunner(client.New(srv.URL), nil, nil)

	res := r.Run(context.Background(), Case{
		Name:           "plain",
		Method:         http.MethodGet,
		Path:           "/api/plain",
		ExpectedStatus: http.StatusOK,
	})

	assert.True(t, res.Passed)
	assert.Empty(t, res.Body)
}

func TestPassRateBounds(t *testing.T) {
	srv := newTestBackend(t)
	r := NewRunner(client.New(srv.URL), nil, nil)

	assert.Equal(t, float64(1), r.PassRate())

	r.Run(context.Background(), Case{Method: http.MethodGet, Path: "/api/health", ExpectedStatus: http.StatusOK})
	r.Run(context.Background(), Case{Method: http.MethodGet, Path: "/api/missing", ExpectedStatus: http.StatusOK})

	rate := r.PassRate()
	assert.GreaterOrEqual(t, rate, float64(0))
	assert.LessOrEqual(t, rate, float64(1))
	assert.Equal(t, 0.5, rate)
	assert.False(t, r.AllPassed())
}

type captureSink struct {
	results []*Result
}

func (s *captureSink) Result(r *Result) { s.results = append(s.results, r) }

func TestRunnerEmitsToSink(t *testing.T) {
	srv := newTestBackend(t)
	sink := &captureSink{}
	r := NewRunner(client.New(srv.URL), nil, sink)

	r.Run(context.Background(), Case{Method: http.MethodGet, Path: "/api/health", ExpectedStatus: http.StatusOK})
	r.Run(context.Background(), Case{Method: http.MethodGet, Path: "/api/missing", ExpectedStatus: http.StatusNotFound})

	require.Len(t, sink.results, 2)
	assert.True(t, sink.results[0].Passed)
	assert.True(t, sink.results[1].Passed)
}
