// Package runner executes the configured command table when tracked
// files change. Commands run sequentially in table order through the
// platform shell; a failing command is reported and the rest of the
// table still runs.
package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/contask/contask/internal/config"
	"github.com/contask/contask/internal/ui"
)

// ChangedFilesToken in a command template is replaced with the
// space-joined changed-path list at dispatch time.
const ChangedFilesToken = "{changed_files}"

// Options configures the runner.
type Options struct {
	// Dir is the working directory for commands. Default: ".".
	Dir string

	// Printer receives per-command status lines.
	// Default: plain printer on stdout.
	Printer *ui.Printer

	// Logger receives structured run records. Default: slog.Default()
	Logger *slog.Logger

	// Stdout and Stderr receive command output.
	// Defaults: os.Stdout, os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes an immutable command table.
type Runner struct {
	commands []config.CommandSpec
	opts     Options
}

// New creates a runner for the given command table.
func New(commands []config.CommandSpec, opts Options) *Runner {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Printer == nil {
		opts.Printer = ui.NewPrinter(os.Stdout, false)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{commands: commands, opts: opts}
}

// Run executes every command in table order, substituting the changed
// paths into templates that ask for them. Non-zero exits are reported
// via the printer and logger only; they never abort the run or the
// watch session. Cancelling ctx kills the running command.
func (r *Runner) Run(ctx context.Context, changed []string) {
	for _, spec := range r.commands {
		cmdline := Expand(spec.Run, changed)
		r.opts.Printer.CommandStart(spec.Name, cmdline)

		start := time.Now()
		cmd := shellCommand(ctx, cmdline)
		cmd.Dir = r.opts.Dir
		cmd.Stdout = r.opts.Stdout
		cmd.Stderr = r.opts.Stderr

		err := cmd.Run()
		elapsed := time.Since(start)
		code := exitCode(err)

		r.opts.Printer.CommandResult(spec.Name, code, elapsed)
		r.opts.Logger.Info("command finished",
			slog.String("name", spec.Name),
			slog.String("cmd", cmdline),
			slog.Int("exit_code", code),
			slog.Duration("elapsed", elapsed),
		)

		if ctx.Err() != nil {
			return
		}
	}
}

// Expand substitutes the changed-file list into a command template.
func Expand(template string, changed []string) string {
	if !strings.Contains(template, ChangedFilesToken) {
		return template
	}
	return strings.ReplaceAll(template, ChangedFilesToken, strings.Join(changed, " "))
}

// shellCommand builds the platform shell invocation for cmdline.
func shellCommand(ctx context.Context, cmdline string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", cmdline)
	}
	return exec.CommandContext(ctx, "sh", "-c", cmdline)
}

// exitCode extracts the command's exit status. Commands that could
// not be started at all report -1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
