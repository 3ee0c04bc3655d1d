// Package harness runs individual API checks: one HTTP call, a status-code
// expectation, optional body checks, and a pass/fail tally.
package harness

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/client"
)

// Case describes one API call and its expected outcome.
type Case struct {
	Name           string
	Method         string
	Path           string
	Body           any
	RawBody        []byte // sent verbatim when set; Body is ignored
	ContentType    string
	Query          url.Values
	Headers        map[string]string
	NoAuth         bool
	ExpectedStatus int
	Measure        bool // record wall-clock latency with the result
	Checks         []Check
}

// Check inspects a completed response. A non-nil error fails the case.
type Check func(*Result) error

// Result is the outcome of one case.
type Result struct {
	Case       Case
	Passed     bool
	StatusCode int
	Body       map[string]any
	Raw        []byte
	Elapsed    time.Duration
	Failures   []string
	Err        error // transport-level failure, nil otherwise
}

// Sink receives results as they complete.
type Sink interface {
	Result(*Result)
}

// Runner executes cases against one backend and keeps the aggregate tally.
type Runner struct {
	client *client.Client
	log    *zap.SugaredLogger
	sink   Sink

	testsRun    int
	testsPassed int
}

// NewRunner creates a runner. sink may be nil.
func NewRunner(c *client.Client, log *zap.SugaredLogger, sink Sink) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{client: c, log: log, sink: sink}
}

// Client exposes the underlying API client for suites that need typed calls
// between cases (obtaining ids, tokens).
func (r *Runner) Client() *client.Client { return r.client }

// Run executes one case. The case passes iff the call completes and the
// status code equals the expectation and every check succeeds. Transport
// errors fail the case rather than aborting the run.
func (r *Runner) Run(ctx context.Context, tc Case) *Result {
	r.testsRun++
	res := &Result{Case: tc}

	opts := make([]client.RequestOption, 0, 4)
	if len(tc.Query) > 0 {
		opts = append(opts, client.WithQuery(tc.Query))
	}
	for k, v := range tc.Headers {
		opts = append(opts, client.WithHeader(k, v))
	}
	if tc.NoAuth {
		opts = append(opts, client.WithoutAuth())
	}
	if tc.RawBody != nil {
		ct := tc.ContentType
		if ct == "" {
			ct = "application/json"
		}
		opts = append(opts, client.WithRawBody(ct, tc.RawBody))
	}

	resp, err := r.client.Do(ctx, tc.Method, tc.Path, tc.Body, opts...)
	if err != nil {
		res.Err = err
		res.Failures = append(res.Failures, err.Error())
		r.log.Debugw("request failed", "test", tc.Name, "error", err)
		r.emit(res)
		return res
	}

	res.StatusCode = resp.StatusCode
	res.Raw = resp.Body
	res.Body = resp.Map()
	if tc.Measure {
		res.Elapsed = resp.Elapsed
	}

	if resp.StatusCode != tc.ExpectedStatus {
		res.Failures = append(res.Failures,
			statusMismatch(tc.ExpectedStatus, resp.StatusCode))
		r.emit(res)
		return res
	}

	for _, check := range tc.Checks {
		if err := check(res); err != nil {
			res.Failures = append(res.Failures, err.Error())
		}
	}

	if len(res.Failures) == 0 {
		res.Passed = true
		r.testsPassed++
	}
	r.emit(res)
	return res
}

// Record adds an externally-built result to the tally. Suites use it for
// measurements that are not a single HTTP case.
func (r *Runner) Record(res *Result) {
	r.testsRun++
	if res.Passed {
		r.testsPassed++
	}
	r.emit(res)
}

func (r *Runner) emit(res *Result) {
	if r.sink != nil {
		r.sink.Result(res)
	}
}

// TestsRun returns the number of executed cases.
func (r *Runner) TestsRun() int { return r.testsRun }

// TestsPassed returns the number of passing cases.
func (r *Runner) TestsPassed() int { return r.testsPassed }

// AllPassed reports whether every executed case passed.
func (r *Runner) AllPassed() bool { return r.testsPassed == r.testsRun }

// PassRate returns testsPassed/testsRun in [0, 1]; an empty run counts as 1.
func (r *Runner) PassRate() float64 {
	if r.testsRun == 0 {
		return 1
	}
	return float64(r.testsPassed) / float64(r.testsRun)
}

func statusMismatch(want, got int) string {
	return fmt.Sprintf("expected status %d, got %d", want, got)
}
