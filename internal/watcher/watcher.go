package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/contask/contask/internal/errors"
	"github.com/contask/contask/internal/filter"
	"github.com/contask/contask/internal/snapshot"
)

// OnChange is invoked with the sorted changed paths, relative to the
// watched root. It runs on the watch loop's goroutine and blocks the
// next poll until it returns.
type OnChange func(changed []string)

// Options configures the watch loop.
type Options struct {
	// Method selects how per-file state is computed.
	// Default: snapshot.MethodHash
	Method snapshot.Method

	// Interval is the fixed sleep between polls.
	// Default: 300ms
	Interval time.Duration

	// Logger receives loop diagnostics. Default: slog.Default()
	Logger *slog.Logger
}

// DefaultOptions returns the default watch loop options.
func DefaultOptions() Options {
	return Options{
		Method:   snapshot.MethodHash,
		Interval: 300 * time.Millisecond,
	}
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.Interval == 0 {
		o.Interval = defaults.Interval
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Watcher runs the poll, diff, dispatch loop over one directory tree.
// It owns no shared state beyond its local baseline snapshot, replaced
// wholesale each cycle; all work happens on the caller's goroutine.
type Watcher struct {
	root     string
	method   snapshot.Method
	interval time.Duration
	onChange OnChange
	logger   *slog.Logger
}

// New creates a watcher for the given root directory.
func New(root string, onChange OnChange, opts Options) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.ValidationError("watcher requires an OnChange callback")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err)
	}
	opts = opts.WithDefaults()

	return &Watcher{
		root:     absRoot,
		method:   opts.Method,
		interval: opts.Interval,
		onChange: onChange,
		logger:   opts.Logger,
	}, nil
}

// Root returns the absolute watched root.
func (w *Watcher) Root() string {
	return w.root
}

// Start runs the watch loop until ctx is cancelled, then returns
// ctx.Err(). The exclude rule set is loaded once, and the first
// snapshot only establishes the baseline: the callback fires on the
// first change after Start, never immediately.
func (w *Watcher) Start(ctx context.Context) error {
	rules, err := filter.LoadRuleSet(filepath.Join(w.root, filter.ExcludeFileName))
	if err != nil {
		return err
	}
	w.logger.Info("watch session started",
		slog.String("root", w.root),
		slog.String("method", w.method.String()),
		slog.Duration("interval", w.interval),
		slog.Int("exclude_rules", rules.Len()),
	)

	baseline, err := snapshot.Take(w.root, w.method, rules)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch session stopped", slog.String("root", w.root))
			return ctx.Err()
		case <-ticker.C:
			baseline = w.poll(baseline, rules)
		}
	}
}

// poll runs one cycle and returns the next baseline.
func (w *Watcher) poll(baseline snapshot.Snapshot, rules *filter.RuleSet) snapshot.Snapshot {
	current, err := snapshot.Take(w.root, w.method, rules)
	if err != nil {
		// Next cycle is the retry.
		w.logger.Warn("snapshot failed, skipping cycle", slog.Any("error", err))
		return baseline
	}

	changed := snapshot.Diff(current, baseline)
	if len(changed) == 0 {
		return current
	}

	w.logger.Debug("change detected",
		slog.Int("files", len(changed)),
		slog.Any("paths", changed),
	)
	w.onChange(changed)

	// Re-snapshot without waiting for the interval so files the
	// callback itself modified do not re-trigger next cycle.
	rebased, err := snapshot.Take(w.root, w.method, rules)
	if err != nil {
		w.logger.Warn("post-dispatch snapshot failed", slog.Any("error", err))
		return current
	}
	return rebased
}
