// Package ui provides terminal output for the watch session: the
// startup banner, per-command status lines, and error reporting.
// Color is applied only when writing to a TTY and NO_COLOR is unset.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// Printer writes styled session output to a single destination.
type Printer struct {
	out    io.Writer
	styles Styles
}

// NewPrinter creates a printer writing to out. Pass color=false for
// plain output regardless of destination.
func NewPrinter(out io.Writer, color bool) *Printer {
	styles := NoColorStyles()
	if color {
		styles = DefaultStyles()
	}
	return &Printer{out: out, styles: styles}
}

// ColorEnabled reports whether out supports color output: a TTY with
// NO_COLOR unset.
func ColorEnabled(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Banner prints the session start message.
func (p *Printer) Banner(root string, method string, interval time.Duration) {
	fmt.Fprintln(p.out, p.styles.Header.Render("Watching directory: "+root))
	fmt.Fprintln(p.out, p.styles.Dim.Render(
		fmt.Sprintf("method=%s interval=%s  (ctrl-c to stop)", method, interval)))
}

// ChangeDetected prints the changed paths that start a dispatch.
func (p *Printer) ChangeDetected(paths []string) {
	fmt.Fprintln(p.out, p.styles.Header.Render(
		fmt.Sprintf("Changed (%d): %s", len(paths), strings.Join(paths, " "))))
}

// CommandStart prints the command about to run.
func (p *Printer) CommandStart(name, cmdline string) {
	fmt.Fprintln(p.out, p.styles.Dim.Render(fmt.Sprintf("[%s] %s", name, cmdline)))
}

// CommandResult prints the outcome of one command run.
func (p *Printer) CommandResult(name string, exitCode int, elapsed time.Duration) {
	if exitCode == 0 {
		fmt.Fprintln(p.out, p.styles.Success.Render(
			fmt.Sprintf("[%s] ok (%s)", name, elapsed.Round(time.Millisecond))))
		return
	}
	fmt.Fprintln(p.out, p.styles.Error.Render(
		fmt.Sprintf("[%s] exit %d (%s)", name, exitCode, elapsed.Round(time.Millisecond))))
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, p.styles.Warning.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.out, p.styles.Error.Render(fmt.Sprintf(format, args...)))
}

// Println prints an unstyled line.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}
