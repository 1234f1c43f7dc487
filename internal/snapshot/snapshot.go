// Package snapshot builds point-in-time state maps of a directory
// tree and computes the set of changed paths between two of them.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/contask/contask/internal/errors"
	"github.com/contask/contask/internal/filter"
)

// Method selects how per-file state is computed.
type Method int

const (
	// MethodHash reads full file content and digests it.
	MethodHash Method = iota
	// MethodModTime uses the filesystem modification timestamp.
	MethodModTime
)

// String returns the human-readable method name.
func (m Method) String() string {
	switch m {
	case MethodHash:
		return "hash"
	case MethodModTime:
		return "mtime"
	default:
		return "unknown"
	}
}

// ParseMethod converts a method name to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "hash":
		return MethodHash, nil
	case "mtime":
		return MethodModTime, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidMethod,
			fmt.Sprintf("unknown detection method %q", s), nil).
			WithSuggestion(`use "hash" or "mtime"`)
	}
}

// FileState is the computed state of one file: a content digest, a
// modification time, or the null marker. A file that could not be
// read or stat'ed at scan time gets Null true; null is itself a
// valid, comparable state, so a file flapping between existing and
// erroring is reported as changed.
type FileState struct {
	Digest  string  // hex SHA-224, MethodHash only
	ModTime float64 // seconds since epoch, MethodModTime only
	Null    bool    // file was unreadable or missing at scan time
}

// nullState marks a file that could not be read at scan time.
var nullState = FileState{Null: true}

// Snapshot maps root-relative slash-separated file paths to their
// state at scan time. Immutable once built; a fresh one is built on
// every poll cycle.
type Snapshot map[string]FileState

// Take walks root and returns a Snapshot of every eligible file, at
// any depth. No caching: every call is a full tree walk.
//
// For each file the bare filename is checked against the exclude
// rules first and skipped on match; this is independent from, and in
// addition to, the full-path filtering in filter.IsIncluded. Two
// snapshots are comparable only when built with the same method and
// rule set.
func Take(root string, method Method, rules *filter.RuleSet) (Snapshot, error) {
	snap := make(Snapshot)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, next poll retries
		}
		if d.IsDir() {
			return nil
		}
		if rules.Matches(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !filter.IsIncluded(rel, rules) {
			return nil
		}

		snap[rel] = state(path, method)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeWalkFailed, err).
			WithDetail("root", root)
	}

	return snap, nil
}

// state computes the FileState for one file. Read and stat failures
// recover locally as the null state; they never abort the scan.
func state(path string, method Method) FileState {
	if method == MethodHash {
		content, err := os.ReadFile(path)
		if err != nil {
			return nullState
		}
		sum := sha256.Sum224(content)
		return FileState{Digest: hex.EncodeToString(sum[:])}
	}

	info, err := os.Stat(path)
	if err != nil { // e.g., broken link
		return nullState
	}
	return FileState{ModTime: float64(info.ModTime().UnixNano()) / 1e9}
}
