package cli

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lolijho/crm-grab-backend-sub000/internal/config"
	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
	"github.com/lolijho/crm-grab-backend-sub000/internal/history"
	"github.com/lolijho/crm-grab-backend-sub000/internal/report"
	"github.com/lolijho/crm-grab-backend-sub000/internal/suites"
	"github.com/lolijho/crm-grab-backend-sub000/pkg/client"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	BaseURL   string
	Report    string
	HistoryDB string
}

// NewRunCommand creates the run command. Positional arguments select
// suites; with none, the default set runs.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [suite...]",
		Short: "Run acceptance suites against a backend",
		Long: `Run acceptance suites against a running CRM backend.

With no arguments the default suite set runs (everything except the
performance suite). Name suites to run a subset:

  apicheck run status auth
  apicheck run woocommerce --base-url http://localhost:8001
  apicheck run performance -v`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "backend base URL (overrides profile and env)")
	cmd.Flags().StringVar(&opts.Report, "report", "", "write a JSON report to this path")
	cmd.Flags().StringVar(&opts.HistoryDB, "history-db", "", "record results in this SQLite database")

	return cmd
}

// historySink records results under a run id, tagged with the active suite.
type historySink struct {
	store *history.Store
	runID string
	suite string
	errs  int
}

func (h *historySink) Result(r *harness.Result) {
	if err := h.store.Record(h.runID, h.suite, r); err != nil {
		h.errs++
	}
}

func runSuites(cmd *cobra.Command, opts *RunOptions, args []string) error {
	cfg, err := config.Load(opts.Profile)
	if err != nil {
		return err
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Report != "" {
		cfg.ReportPath = opts.Report
	}
	if opts.HistoryDB != "" {
		cfg.HistoryDB = opts.HistoryDB
	}

	selected, err := selectSuites(args)
	if err != nil {
		return err
	}

	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	console := report.NewConsole(cmd.OutOrStdout())
	sinks := report.Multi{console}

	var jsonReport *report.JSONWriter
	if cfg.ReportPath != "" {
		jsonReport = report.NewJSONWriter(cfg.BaseURL)
		sinks = append(sinks, jsonReport)
	}

	var hist *historySink
	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		runID, err := store.StartRun(cfg.BaseURL)
		if err != nil {
			return err
		}
		hist = &historySink{store: store, runID: runID}
		sinks = append(sinks, hist)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := harness.NewRunner(
		client.New(cfg.BaseURL, client.WithTimeout(cfg.Timeout)),
		log, sinks,
	)
	sc := &suites.Context{
		Runner: runner,
		Expr:   harness.NewExprEngine(),
		Config: cfg,
		Log:    log,
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🚀 Running %d suites against %s\n", len(selected), cfg.BaseURL)

	failedSuites := 0
	for _, suite := range selected {
		fmt.Fprintf(cmd.OutOrStdout(), "\n🧪 %s — %s\n", suite.Name, suite.Description)
		if jsonReport != nil {
			jsonReport.SetSuite(suite.Name)
		}
		if hist != nil {
			hist.suite = suite.Name
		}

		before, beforePassed := runner.TestsRun(), runner.TestsPassed()
		if err := suite.Run(ctx, sc); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failedSuites++
			log.Errorw("suite aborted", "suite", suite.Name, "error", err)
			fmt.Fprintf(cmd.OutOrStdout(), "❌ %s aborted: %v\n", suite.Name, err)
		}
		console.SuiteSummary(suite.Name, runner.TestsPassed()-beforePassed, runner.TestsRun()-before)
	}

	console.Final(runner.TestsPassed(), runner.TestsRun())

	if jsonReport != nil {
		if err := jsonReport.Flush(cfg.ReportPath); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	if hist != nil {
		if err := hist.store.FinishRun(hist.runID, runner.TestsRun(), runner.TestsPassed()); err != nil {
			return fmt.Errorf("failed to finish history run: %w", err)
		}
		if hist.errs > 0 {
			log.Warnw("some results were not recorded", "count", hist.errs)
		}
	}

	if failedSuites > 0 || !runner.AllPassed() {
		return fmt.Errorf("%d of %d tests failed",
			runner.TestsRun()-runner.TestsPassed(), runner.TestsRun())
	}
	return nil
}

// selectSuites resolves positional suite names, defaulting to the standard
// set. Unknown names fail with the available tokens listed.
func selectSuites(args []string) ([]suites.Suite, error) {
	names := args
	if len(names) == 0 {
		names = suites.DefaultNames()
	}

	out := make([]suites.Suite, 0, len(names))
	for _, name := range names {
		s, ok := suites.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown suite %q (available: %s)",
				name, strings.Join(allSuiteNames(), ", "))
		}
		out = append(out, s)
	}
	return out, nil
}

func allSuiteNames() []string {
	var names []string
	for _, s := range suites.Registry() {
		names = append(names, s.Name)
	}
	return names
}
