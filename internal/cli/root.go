// Package cli wires the apicheck commands: run acceptance suites, list
// them, serve the mock backend, and inspect run history.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Profile string // path to a YAML profile
	Verbose bool
}

// NewRootCommand creates the apicheck root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "apicheck",
		Short: "Acceptance checks for the Grabovoi CRM backend",
		Long: `apicheck runs acceptance suites against a running CRM backend:
authentication, contacts, courses, orders, imports, the Postmark inbound
webhook and the WooCommerce sync endpoints.

Configuration comes from a YAML profile, a .env file and environment
variables, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "path to a YAML profile")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewMockCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// newLogger builds the CLI logger. Verbose mode lowers the level to debug;
// the default stays at warn so suite output is not drowned in log lines.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}
