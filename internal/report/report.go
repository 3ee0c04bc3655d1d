// Package report renders harness results for humans (console) and machines
// (a JSON report file).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
)

// Console prints one line per case plus suite summaries, in the style of
// the original acceptance scripts.
type Console struct {
	w io.Writer
}

// NewConsole creates a console reporter; w defaults to stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Result implements harness.Sink.
func (c *Console) Result(r *harness.Result) {
	if r.Passed {
		fmt.Fprintf(c.w, "✅ %s - Status: %d", r.Case.Name, r.StatusCode)
	} else if r.Err != nil {
		fmt.Fprintf(c.w, "❌ %s - Error: %v", r.Case.Name, r.Err)
	} else {
		fmt.Fprintf(c.w, "❌ %s - %s", r.Case.Name, r.Failures[0])
	}
	if r.Case.Measure && r.Elapsed > 0 {
		fmt.Fprintf(c.w, " (%.0fms)", float64(r.Elapsed.Microseconds())/1000)
	}
	fmt.Fprintln(c.w)
}

// SuiteSummary prints the per-suite tally.
func (c *Console) SuiteSummary(name string, passed, run int) {
	fmt.Fprintf(c.w, "\n📊 %s: %d/%d tests passed\n", name, passed, run)
}

// Final prints the aggregate outcome.
func (c *Console) Final(passed, run int) {
	rate := 1.0
	if run > 0 {
		rate = float64(passed) / float64(run)
	}
	fmt.Fprintf(c.w, "\n=== %d/%d tests passed (%.1f%%) ===\n", passed, run, rate*100)
}

// CaseRecord is one case in the JSON report.
type CaseRecord struct {
	Suite     string   `json:"suite"`
	Name      string   `json:"name"`
	Method    string   `json:"method"`
	Path      string   `json:"path"`
	Expected  int      `json:"expected_status"`
	Status    int      `json:"status"`
	Passed    bool     `json:"passed"`
	LatencyMS float64  `json:"latency_ms,omitempty"`
	Failures  []string `json:"failures,omitempty"`
}

// Report is the machine-readable run summary.
type Report struct {
	BaseURL    string       `json:"base_url"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	TestsRun   int          `json:"tests_run"`
	Passed     int          `json:"tests_passed"`
	PassRate   float64      `json:"pass_rate"`
	Cases      []CaseRecord `json:"cases"`
}

// JSONWriter accumulates results and writes the report file on Flush.
type JSONWriter struct {
	report Report
	suite  string
}

// NewJSONWriter starts a report for the given backend.
func NewJSONWriter(baseURL string) *JSONWriter {
	return &JSONWriter{report: Report{
		BaseURL:   baseURL,
		StartedAt: time.Now().UTC(),
	}}
}

// SetSuite tags subsequent results with the suite name.
func (j *JSONWriter) SetSuite(name string) { j.suite = name }

// Result implements harness.Sink.
func (j *JSONWriter) Result(r *harness.Result) {
	j.report.TestsRun++
	if r.Passed {
		j.report.Passed++
	}
	j.report.Cases = append(j.report.Cases, CaseRecord{
		Suite:     j.suite,
		Name:      r.Case.Name,
		Method:    r.Case.Method,
		Path:      r.Case.Path,
		Expected:  r.Case.ExpectedStatus,
		Status:    r.StatusCode,
		Passed:    r.Passed,
		LatencyMS: float64(r.Elapsed.Microseconds()) / 1000,
		Failures:  r.Failures,
	})
}

// Flush finalizes the report and writes it to path.
func (j *JSONWriter) Flush(path string) error {
	j.report.FinishedAt = time.Now().UTC()
	j.report.PassRate = 1
	if j.report.TestsRun > 0 {
		j.report.PassRate = float64(j.report.Passed) / float64(j.report.TestsRun)
	}
	data, err := json.MarshalIndent(j.report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Multi fans results out to several sinks.
type Multi []harness.Sink

// Result implements harness.Sink.
func (m Multi) Result(r *harness.Result) {
	for _, s := range m {
		s.Result(r)
	}
}
