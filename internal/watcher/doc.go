// Package watcher implements the polling watch loop: it re-snapshots
// the watched tree on a fixed interval, diffs against the previous
// baseline, and invokes a callback with the changed paths.
//
// Detection is polling-only by design. Every cycle is a full tree
// walk; there is no kernel notification path and no incremental
// bookkeeping, which keeps behavior identical on local disks, network
// mounts, and container volumes.
//
// Usage:
//
//	w, err := watcher.New(".", runTasks, watcher.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
//	    return err
//	}
//
// The callback is invoked synchronously; a slow callback delays the
// next poll. Immediately after the callback returns, the loop takes
// one more snapshot as the new baseline so files modified by the
// callback itself (a formatter, say) do not re-trigger it.
package watcher
