package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lolijho/crm-grab-backend-sub000/internal/config"
	"github.com/lolijho/crm-grab-backend-sub000/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	HistoryDB string
	Limit     int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show recent suite runs from the history database",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.HistoryDB, "history-db", "", "SQLite database written by apicheck run")
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "number of runs to show")

	return cmd
}

func showHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cfg, err := config.Load(opts.Profile)
	if err != nil {
		return err
	}
	if opts.HistoryDB != "" {
		cfg.HistoryDB = opts.HistoryDB
	}
	if cfg.HistoryDB == "" {
		return fmt.Errorf("no history database configured (set --history-db or APICHECK_HISTORY_DB)")
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(opts.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tBACKEND\tPASSED\tDURATION")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.BaseURL,
			r.TestsPassed, r.TestsRun,
			r.FinishedAt.Sub(r.StartedAt).Round(10*time.Millisecond),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// Latency summary across all recorded runs, measured cases only.
	paths, err := store.MeasuredPaths()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout())
	lw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(lw, "PATH\tAVG LATENCY")
	for _, path := range paths {
		avg, ok, err := store.AverageLatency(path)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		fmt.Fprintf(lw, "%s\t%.1fms\n", path, avg)
	}
	return lw.Flush()
}
