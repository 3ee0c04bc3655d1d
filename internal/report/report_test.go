package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
)

func passResult(name string) *harness.Result {
	return &harness.Result{
		Case:       harness.Case{Name: name, Method: http.MethodGet, Path: "/api/health", ExpectedStatus: 200},
		Passed:     true,
		StatusCode: 200,
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Result(passResult("Health Check"))
	c.Result(&harness.Result{
		Case:       harness.Case{Name: "Login", ExpectedStatus: 200},
		StatusCode: 401,
		Failures:   []string{"expected status 200, got 401"},
	})
	c.SuiteSummary("auth", 1, 2)

	out := buf.String()
	assert.Contains(t, out, "✅ Health Check - Status: 200")
	assert.Contains(t, out, "❌ Login - expected status 200, got 401")
	assert.Contains(t, out, "auth: 1/2 tests passed")
}

func TestConsoleLatency(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	r := passResult("List Contacts")
	r.Case.Measure = true
	r.Elapsed = 42 * time.Millisecond
	c.Result(r)

	assert.Contains(t, buf.String(), "(42ms)")
}

func TestJSONWriter(t *testing.T) {
	j := NewJSONWriter("http://localhost:8001")
	j.SetSuite("auth")
	j.Result(passResult("Login"))
	j.SetSuite("contacts")
	j.Result(&harness.Result{
		Case:       harness.Case{Name: "Get Missing Contact", ExpectedStatus: 404},
		StatusCode: 200,
		Failures:   []string{"expected status 404, got 200"},
	})

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, j.Flush(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Report
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, 2, got.TestsRun)
	assert.Equal(t, 1, got.Passed)
	assert.Equal(t, 0.5, got.PassRate)
	require.Len(t, got.Cases, 2)
	assert.Equal(t, "auth", got.Cases[0].Suite)
	assert.Equal(t, "contacts", got.Cases[1].Suite)
}

func TestMultiFansOut(t *testing.T) {
	j1 := NewJSONWriter("a")
	j2 := NewJSONWriter("b")
	m := Multi{j1, j2}

	m.Result(passResult("x"))
	assert.Equal(t, 1, j1.report.TestsRun)
	assert.Equal(t, 1, j2.report.TestsRun)
}
