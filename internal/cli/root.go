package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with values
// injected via ldflags at build time.
//
// Parameters:
//   - v: semantic version string (e.g., "v1.2.3")
//   - c: git commit SHA (short or long form)
//   - d: build timestamp (e.g., "2026-08-20T14:32:01Z")
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the spanview CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (inspect, export,
// browse, serve), configures logging based on the --verbose flag and the
// optional config file, and executes the command tree.
//
// Logging:
//   - Default: level from config file, or info (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
//
// Example:
//
//	func main() {
//	    cli.SetVersion("v1.0.0", "abc123", "2026-08-20")
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI under the given context, so callers can wire
// signal handling into long-running commands like serve.
func ExecuteContext(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "spanview",
		Short:        "Spanview visualizes hypergraph snapshots as navigable node maps",
		Long:         `Spanview is a CLI tool for inspecting, exporting, and interactively navigating hypergraph snapshots, with width-based severity tiers to surface the heaviest spans at a glance.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			level := charmlog.InfoLevel
			if parsed, err := charmlog.ParseLevel(cfg.Log.Level); err == nil {
				level = parsed
			}
			if verbose {
				level = charmlog.DebugLevel
			}

			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("spanview %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newInspectCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}

// configKey is the context key for storing the loaded config.
const configKey ctxKey = 1

// withConfig returns a new context with the config attached.
func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the config from ctx, falling back to defaults.
func configFromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey).(Config); ok {
		return cfg
	}
	return defaultConfig()
}
