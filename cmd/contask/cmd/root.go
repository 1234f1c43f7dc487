// Package cmd provides the CLI commands for contask.
package cmd

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contask/contask/internal/config"
	"github.com/contask/contask/internal/lock"
	"github.com/contask/contask/internal/logging"
	"github.com/contask/contask/internal/runner"
	"github.com/contask/contask/internal/snapshot"
	"github.com/contask/contask/internal/ui"
	"github.com/contask/contask/internal/watcher"
	"github.com/contask/contask/pkg/version"
)

var (
	directory      string
	debugMode      bool
	noColor        bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the contask CLI.
func NewRootCmd() *cobra.Command {
	var methodFlag string
	var intervalFlag string

	cmd := &cobra.Command{
		Use:   "contask",
		Short: "Run configured commands when files change",
		Long: `contask watches a project directory and runs the commands from its
contask.yaml whenever tracked files change.

Detection polls the tree on a fixed interval, so it behaves the same
on local disks, network mounts, and container volumes. Exclude paths
by listing regular expressions in a .contask-excludes file in the
watched root.

Run 'contask init' to create a starter contask.yaml, then run
'contask' to start watching. Stop with ctrl-c.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, methodFlag, intervalFlag)
		},
	}

	cmd.SetVersionTemplate("contask version {{.Version}}\n")

	cmd.Flags().StringVar(&methodFlag, "method", "", `detection method: "mtime" or "hash" (overrides config)`)
	cmd.Flags().StringVar(&intervalFlag, "interval", "", "polling interval, e.g. 300ms (overrides config)")

	cmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "directory to watch")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging to ~/.contask/logs/")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRunE = teardownLogging

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the CLI with signal-driven cancellation. SIGINT and
// SIGTERM cancel the watch session's context for a clean shutdown.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

// setupLogging configures the process-wide logger: rotating file plus
// stderr with --debug, quiet stderr otherwise.
func setupLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})))
		return nil
	}

	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return err
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Short()),
	)
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// runWatch runs the full watch session: load the command table, take
// the session lock, then poll until interrupted.
func runWatch(cmd *cobra.Command, methodFlag, intervalFlag string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	cfg, err := config.Load(directory)
	if err != nil {
		return err
	}

	// Flags beat env and file values.
	if methodFlag != "" {
		cfg.Watch.Method = methodFlag
	}
	if intervalFlag != "" {
		cfg.Watch.Interval = intervalFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	method, err := snapshot.ParseMethod(cfg.Watch.Method)
	if err != nil {
		return err
	}
	interval, err := cfg.Interval()
	if err != nil {
		return err
	}

	sessionLock := lock.New(directory)
	if err := sessionLock.Acquire(); err != nil {
		return err
	}
	defer func() { _ = sessionLock.Release() }()

	out := cmd.OutOrStdout()
	printer := ui.NewPrinter(out, !noColor && ui.ColorEnabled(out))

	tasks := runner.New(cfg.Commands, runner.Options{
		Dir:     directory,
		Printer: printer,
		Logger:  logger,
	})

	w, err := watcher.New(directory, func(changed []string) {
		printer.ChangeDetected(changed)
		tasks.Run(ctx, changed)
	}, watcher.Options{
		Method:   method,
		Interval: interval,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	printer.Banner(w.Root(), method.String(), interval)

	if err := w.Start(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	printer.Println()
	return nil
}
