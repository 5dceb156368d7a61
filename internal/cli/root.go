// Package cli contains all the command-line interface logic for the application,
// powered by the cobra library. It defines the root command, subcommands,
// and their respective flags.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shivanshkc/repstat/internal/config"
)

var (
	// These hold the values from the root command's persistent flags. They
	// override the matching configuration keys when set explicitly.
	rootConfigPath string
	rootDir        string
	rootURL        string
	rootLogLevel   string
	rootLogFormat  string

	// rootConfig is the effective configuration, loaded before any subcommand runs.
	rootConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands.
// It serves as the entry point and parent for all other commands.
var rootCmd = &cobra.Command{
	Use:   "repstat",
	Short: "Summarize benchmark reports with means, deviations and percentiles.",
	Long: `Summarize the per-interval reports recorded by a benchmark agent.
Reports are read from a directory or from the agent's HTTP endpoint and studied
in a single pass over the requested index range.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRootConfig,
}

// Execute is the primary entry point for the CLI application, called by main.go.
//
// It sets up a single, root cancellable context and wires it up to respond
// to OS interruption signals (like Ctrl+C or SIGTERM). This context is then passed down
// to all cobra commands, enabling graceful shutdown across the entire application.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	// Launch a goroutine to cancel the context upon receiving a signal.
	go func() {
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return rootCmd.ExecuteContext(ctx)
}

// loadRootConfig loads the configuration, applies the explicitly set persistent
// flags on top of it and installs the default logger.
func loadRootConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Source.Dir = rootDir
	}
	if flags.Changed("url") {
		cfg.Source.URL = rootURL
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = rootLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = rootLogFormat
	}

	if message := validateRootFlags(cfg); message != "" {
		return newUsageError(message)
	}

	if err := setupLogger(cmd.ErrOrStderr(), cfg.Log); err != nil {
		return err
	}

	rootConfig = cfg
	return nil
}

// init configures the application's flags.
//
// Flags shared by every subcommand live on the root command as persistent flags.
func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConfigPath, "config", "c", "",
		"Path of the config file. Defaults to .repstat.yaml in the working or home directory.")

	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "",
		"Directory holding <index>.json or <index>.json.gz reports.")

	rootCmd.PersistentFlags().StringVarP(&rootURL, "url", "u", "",
		"Base URL of an agent serving reports at /v1/reports/<index>.")

	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", config.DefaultLogLevel,
		"Log level: debug, info, warn or error.")

	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", config.DefaultLogFormat,
		"Log format: text or json.")
}
