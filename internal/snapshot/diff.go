package snapshot

import "sort"

// Diff returns the paths considered changed between two snapshots,
// sorted for deterministic dispatch.
//
// When the key sets differ, the result is exactly the paths present
// in newSnap and absent from oldSnap: added files. Removed paths are
// not reported in this branch; a delete-only change yields an empty
// diff. This asymmetry is intentional and load-bearing — the watch
// loop re-baselines unconditionally, so unreported deletions cannot
// go stale.
//
// When the key sets are identical, the result is every path whose
// FileState differs. The key-set check is a cheap short-circuit:
// isolated value changes are the common case.
func Diff(newSnap, oldSnap Snapshot) []string {
	if !sameKeys(newSnap, oldSnap) {
		var added []string
		for path := range newSnap {
			if _, ok := oldSnap[path]; !ok {
				added = append(added, path)
			}
		}
		sort.Strings(added)
		return added
	}

	var changed []string
	for path, st := range newSnap {
		if oldSnap[path] != st {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}

// sameKeys reports whether the two snapshots track the same paths.
func sameKeys(a, b Snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for path := range a {
		if _, ok := b[path]; !ok {
			return false
		}
	}
	return true
}
