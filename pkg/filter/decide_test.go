// Test Type: Unit Test
// Description: Tests for the inclusion resolver precedence ladder

package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpack/promptpack/pkg/filter"
)

func compile(t *testing.T, patterns []string) *filter.CompiledMatcher {
	t.Helper()
	m, err := filter.CompileMatcher(patterns)
	require.NoError(t, err)
	return m
}

func set(paths ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		out[p] = struct{}{}
	}
	return out
}

func TestDecide_Precedence(t *testing.T) {
	include := compile(t, []string{"*.txt"})
	exclude := compile(t, []string{"*.log"})
	none := compile(t, nil)

	t.Run("explicit_exclude_beats_everything", func(t *testing.T) {
		// Even a path matched by the include patterns is excluded.
		assert.False(t, filter.Decide("a.txt", include, none, set(), set("a.txt")))
		// Even an explicitly included path loses to the exclude set being
		// checked first; the session never lets a path sit in both sets,
		// but the resolver's ordering is fixed regardless.
		assert.False(t, filter.Decide("a.txt", include, none, set("a.txt"), set("a.txt")))
	})

	t.Run("explicit_include_beats_patterns", func(t *testing.T) {
		assert.True(t, filter.Decide("b.log", include, exclude, set("b.log"), set()))
	})

	t.Run("exclude_pattern_without_include_match", func(t *testing.T) {
		assert.False(t, filter.Decide("b.log", include, exclude, set(), set()))
	})

	t.Run("include_pattern_beats_exclude_pattern", func(t *testing.T) {
		both := compile(t, []string{"a.txt"})
		assert.True(t, filter.Decide("a.txt", include, both, set(), set()))
	})

	t.Run("empty_include_list_means_include_everything", func(t *testing.T) {
		assert.True(t, filter.Decide("anything.bin", none, none, set(), set()))
	})

	t.Run("empty_include_list_still_respects_excludes", func(t *testing.T) {
		assert.False(t, filter.Decide("b.log", none, exclude, set(), set()))
	})

	t.Run("no_match_is_excluded", func(t *testing.T) {
		assert.False(t, filter.Decide("b.log", include, none, set(), set()))
	})
}

func TestDecide_ScenarioA(t *testing.T) {
	include := compile(t, []string{"*.txt"})
	none := compile(t, nil)

	assert.True(t, filter.Decide("a.txt", include, none, set(), set()))
	assert.False(t, filter.Decide("b.log", include, none, set(), set()))
}

func TestDecide_ScenarioB(t *testing.T) {
	include := compile(t, []string{"*.txt"})
	none := compile(t, nil)

	assert.False(t, filter.Decide("a.txt", include, none, set(), set("a.txt")))
}

func TestDecide_IsTotal(t *testing.T) {
	// Every input maps to exactly one boolean; no input errors.
	include := compile(t, []string{"**/*.go"})
	exclude := compile(t, []string{"vendor/**"})

	for _, path := range []string{"", ".", "a", "a/b/c.go", "vendor/x.go", "weird path/with spaces.go"} {
		filter.Decide(path, include, exclude, set(), set())
	}
}
