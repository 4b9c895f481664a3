// Test Type: Unit Test
// Description: Tests for the simplified search matcher

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promptpack/promptpack/pkg/tree"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  bool
	}{
		{"empty_query_matches_everything", "", "anything", true},
		{"empty_query_matches_empty", "", "", true},

		// "**" queries: contains-prefix AND contains-suffix, unanchored.
		{"bare_doublestar_matches_everything", "**", "whatever", true},
		{"doublestar_prefix_only", "src/**", "path/src/main.go", true},
		{"doublestar_prefix_only_miss", "src/**", "path/lib/main.go", false},
		{"doublestar_suffix_only", "**/main.go", "deep/main.go", true},
		{"doublestar_prefix_and_suffix", "src/**/util.go", "src/a/b/util.go", true},
		{"doublestar_unordered_contains", "src/**/util.go", "util.go/x/src", true},
		{"doublestar_suffix_miss", "src/**/util.go", "src/a/b/main.go", false},

		// The split-count rule: two "**" separators yield three parts and
		// fall through to plain containment of the literal query.
		{"double_doublestar_falls_through", "a/**/b/**/c", "a/x/b/y/c", false},
		{"double_doublestar_literal_match", "a/**/b/**/c", "za/**/b/**/cz", true},

		// Single "*" queries: both halves contained, in either order.
		{"single_star_both_parts", "main*go", "src/main.go", true},
		{"single_star_reversed_order", "go*main", "src/main.go", true},
		{"single_star_missing_part", "main*rs", "src/main.go", false},

		// Scenario D: two "*" delimiters, three parts, falls through to
		// case-insensitive containment of the literal "a*b*c".
		{"two_stars_falls_through", "a*b*c", "abc", false},
		{"two_stars_literal_match", "a*b*c", "xa*b*cx", true},

		// Plain substring fallback is case-insensitive.
		{"plain_contains", "read", "README.md", true},
		{"plain_contains_case_insensitive", "ReadMe", "path/readme.md", true},
		{"plain_contains_miss", "xyz", "README.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.Matches(tt.query, tt.text))
		})
	}
}

func TestMatches_TrimsSlashesAroundDoublestar(t *testing.T) {
	// "src/**" strips the trailing "/" from the prefix, so "src" is the
	// required substring, and the empty suffix is vacuously satisfied.
	assert.True(t, tree.Matches("src/**", "a/srcb"))
	assert.True(t, tree.Matches("**/go", "go"))
}

func TestNodeMatches(t *testing.T) {
	node := &tree.FileNode{Name: "main.go", Path: "/repo/src/main.go"}

	assert.True(t, tree.NodeMatches("", node))
	assert.True(t, tree.NodeMatches("main", node))
	// Path matches even when the name does not.
	assert.True(t, tree.NodeMatches("repo", node))
	assert.False(t, tree.NodeMatches("nothere", node))
}
