package filter

import "path/filepath"

// Decide resolves whether a root-relative path is included, applying the
// precedence ladder:
//
//  1. explicit exclude wins over everything
//  2. explicit include wins over patterns
//  3. an exclude-pattern match (not overridden by an include-pattern match)
//     excludes
//  4. an include-pattern match includes; an empty include list means
//     "include everything not excluded"
//  5. otherwise excluded
//
// Decide is pure and total. It is the single source of truth for both the
// interactive view and the batch traversal, which must call it identically.
func Decide(relPath string, include, exclude *CompiledMatcher, explicitIncludes, explicitExcludes map[string]struct{}) bool {
	path := filepath.ToSlash(relPath)

	if _, ok := explicitExcludes[path]; ok {
		return false
	}
	if _, ok := explicitIncludes[path]; ok {
		return true
	}

	included := include.Match(path)
	excluded := exclude.Match(path)

	if excluded && (!included || include.Empty()) {
		return false
	}
	if included || include.Empty() {
		return true
	}
	return false
}
