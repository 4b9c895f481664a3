package tree

import "strings"

// Matches reports whether candidate text satisfies the search query. This
// is a deliberately simplified, non-anchored matcher, not real glob
// semantics: `*` matches across path separators and nothing is anchored.
// Cases, in fixed order:
//
//  1. empty query matches everything
//  2. a query with one "**" splits into a contains-prefix (trailing "/"
//     stripped) and contains-suffix (leading "/" stripped) check; empty
//     parts are vacuously satisfied
//  3. a query with a single "*" splits into two parts that must both be
//     contained, in either order
//  4. anything else: case-insensitive substring containment of the raw
//     query
//
// A "**" or "*" split that does not yield exactly two parts falls through
// to the plain containment check.
func Matches(query, text string) bool {
	if query == "" {
		return true
	}

	if strings.Contains(query, "**") {
		parts := strings.Split(query, "**")
		if len(parts) == 2 {
			prefix := strings.TrimRight(parts[0], "/")
			suffix := strings.TrimLeft(parts[1], "/")

			if prefix == "" && suffix == "" {
				return true
			}

			prefixMatch := prefix == "" || strings.Contains(text, prefix)
			suffixMatch := suffix == "" || strings.Contains(text, suffix)
			return prefixMatch && suffixMatch
		}
	} else if strings.Contains(query, "*") {
		parts := strings.Split(query, "*")
		if len(parts) == 2 {
			return strings.Contains(text, parts[0]) && strings.Contains(text, parts[1])
		}
	}

	return strings.Contains(strings.ToLower(text), strings.ToLower(query))
}

// NodeMatches reports whether a node is visible under the query: its
// display name or its full path must satisfy Matches.
func NodeMatches(query string, node *FileNode) bool {
	if query == "" {
		return true
	}
	return Matches(query, node.Name) || Matches(query, node.Path)
}
