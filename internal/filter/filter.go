// Package filter decides which paths are eligible for change tracking.
//
// A path is rejected when its basename carries an ignored prefix, the
// path ends with an ignored suffix, any path segment is a
// version-control metadata directory, or any exclude rule matches.
// Exclude rules are regular expressions with search semantics: a match
// anywhere in the path excludes it.
package filter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/contask/contask/internal/errors"
)

// ExcludeFileName is the sidecar file read from the watched root.
// It holds whitespace-delimited regular-expression patterns.
const ExcludeFileName = ".contask-excludes"

var (
	ignorePrefixes = []string{".", "#"}
	ignoreSuffixes = []string{"pyc", "pyo", "_flymake.py"}
	ignoreDirs     = []string{".git", ".hg", ".svn"}
)

// RuleSet is an ordered, immutable set of compiled exclude patterns.
// The zero value excludes nothing.
type RuleSet struct {
	patterns []*regexp.Regexp
}

// NewRuleSet compiles the given patterns into a RuleSet.
// Returns ErrCodeBadExcludeRule if a pattern does not compile.
func NewRuleSet(patterns []string) (*RuleSet, error) {
	rs := &RuleSet{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, pat := range patterns {
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, errors.New(errors.ErrCodeBadExcludeRule,
				fmt.Sprintf("invalid exclude pattern %q", pat), err).
				WithSuggestion("fix the pattern in " + ExcludeFileName)
		}
		rs.patterns = append(rs.patterns, re)
	}
	return rs, nil
}

// LoadRuleSet reads exclude patterns from the sidecar file at path.
// The file holds whitespace-delimited tokens, each a regular
// expression. A missing file yields an empty rule set, not an error.
func LoadRuleSet(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RuleSet{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err)
	}
	return NewRuleSet(strings.Fields(string(data)))
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.patterns)
}

// Matches reports whether any rule finds a match anywhere in s.
func (rs *RuleSet) Matches(s string) bool {
	if rs == nil {
		return false
	}
	for _, re := range rs.patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// IsIncluded reports whether path should be tracked. Rejection
// reasons, first match wins: ignored basename prefix, ignored path
// suffix, ignored directory segment, or an exclude rule match on the
// full path.
func IsIncluded(path string, rules *RuleSet) bool {
	basename := filepath.Base(path)
	for _, p := range ignorePrefixes {
		if strings.HasPrefix(basename, p) {
			return false
		}
	}
	for _, s := range ignoreSuffixes {
		if strings.HasSuffix(path, s) {
			return false
		}
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		for _, dir := range ignoreDirs {
			if part == dir {
				return false
			}
		}
	}
	return !rules.Matches(path)
}
