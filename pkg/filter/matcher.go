package filter

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/logging"
)

// CompiledMatcher is an immutable matcher compiled from an ordered list of
// glob patterns. It is rebuilt, never mutated, whenever its source pattern
// list changes. Pattern order is preserved for display only; matching is
// order-independent (any pattern matching is a match).
type CompiledMatcher struct {
	patterns []string
}

// CompileMatcher validates every pattern and returns a matcher over the
// whole list. If any single pattern is invalid, no matcher is returned and
// the caller must keep using its previous one.
func CompileMatcher(patterns []string) (*CompiledMatcher, error) {
	logger := logging.GetLogger("filter.matcher")

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			logger.Debug().Str("pattern", pattern).Msg("invalid glob pattern")
			return nil, errors.Newf(errors.ErrPatternInvalid,
				"invalid glob pattern %q", pattern).WithDetail("pattern", pattern)
		}
	}

	compiled := make([]string, len(patterns))
	copy(compiled, patterns)

	logger.Debug().Int("patternCount", len(compiled)).Msg("compiled matcher")
	return &CompiledMatcher{patterns: compiled}, nil
}

// Empty reports whether the matcher was compiled from an empty pattern list.
func (m *CompiledMatcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// Match reports whether the relative path matches any pattern in the list.
// Paths are normalized to forward slashes before matching.
func (m *CompiledMatcher) Match(relPath string) bool {
	if m.Empty() {
		return false
	}
	path := filepath.ToSlash(relPath)
	for _, pattern := range m.patterns {
		// Patterns were validated at compile time, so the error is
		// unreachable here.
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the source pattern list in its original order.
func (m *CompiledMatcher) Patterns() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}
