// Package session provides the stateful façade over the selection engine.
// A Session owns the filter configuration and the explicit override sets,
// keeps the compiled matchers in sync with the pattern lists, and is the
// only writer of either. The tree's per-node selection flags are a
// separate, user-visible layer kept loosely synchronized through the
// toggle operations; RefreshSelection re-derives them on demand.
package session

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/promptpack/promptpack/pkg/filter"
	"github.com/promptpack/promptpack/pkg/logging"
	"github.com/promptpack/promptpack/pkg/tree"
)

// Session holds the live selection state for one root directory.
type Session struct {
	root   string
	config *filter.Config

	include *filter.CompiledMatcher
	exclude *filter.CompiledMatcher

	// Tree is the lazily loaded file tree the interactive view renders.
	Tree *tree.Tree

	// SearchQuery filters the visible projection of the tree.
	SearchQuery string

	// TreeCursor is the cursor index into the visible projection.
	TreeCursor int

	logger zerolog.Logger
}

// New creates a session for root with the given initial configuration and
// compiles the initial matchers. The configuration typically comes from
// CLI flags or a saved profile.
func New(root string, config *filter.Config) (*Session, error) {
	if config == nil {
		config = filter.NewConfig()
	}

	include, err := filter.CompileMatcher(config.IncludePatterns)
	if err != nil {
		return nil, err
	}
	exclude, err := filter.CompileMatcher(config.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	return &Session{
		root:    root,
		config:  config,
		include: include,
		exclude: exclude,
		Tree:    tree.New(),
		logger:  logging.GetLogger("session"),
	}, nil
}

// Root returns the session's root directory.
func (s *Session) Root() string {
	return s.root
}

// Config returns the session's filter configuration. Callers that need an
// independent snapshot (the batch traversal) should Clone it.
func (s *Session) Config() *filter.Config {
	return s.config
}

// Browse creates the root-level tree nodes from a single non-recursive
// listing of the session root.
func (s *Session) Browse() error {
	return s.Tree.LoadRoot(s.root)
}

// IsIncluded resolves whether path is currently included, applying the full
// precedence ladder (explicit overrides first, then patterns).
func (s *Session) IsIncluded(path string) bool {
	return filter.Decide(s.rel(path), s.include, s.exclude,
		s.config.ExplicitIncludes, s.config.ExplicitExcludes)
}

// Include forces path in: it is removed from the explicit excludes and
// inserted into the explicit includes. Never fails.
func (s *Session) Include(path string) *Session {
	rel := s.rel(path)
	delete(s.config.ExplicitExcludes, rel)
	s.config.ExplicitIncludes[rel] = struct{}{}
	s.logger.Debug().Str("path", rel).Msg("explicit include")
	return s
}

// Exclude forces path out: it is removed from the explicit includes and
// inserted into the explicit excludes. Never fails.
func (s *Session) Exclude(path string) *Session {
	rel := s.rel(path)
	delete(s.config.ExplicitIncludes, rel)
	s.config.ExplicitExcludes[rel] = struct{}{}
	s.logger.Debug().Str("path", rel).Msg("explicit exclude")
	return s
}

// Toggle flips the current inclusion decision for path, whether that
// decision came from a pattern or from a prior override.
func (s *Session) Toggle(path string) *Session {
	if s.IsIncluded(path) {
		return s.Exclude(path)
	}
	return s.Include(path)
}

// ClearOverrides empties both explicit sets, reverting every path to pure
// pattern-based decisions.
func (s *Session) ClearOverrides() *Session {
	s.config.ExplicitIncludes = make(map[string]struct{})
	s.config.ExplicitExcludes = make(map[string]struct{})
	s.logger.Debug().Msg("cleared explicit overrides")
	return s
}

// AddIncludePattern appends to the include pattern list. The matcher is not
// rebuilt here; call Recompile before the next decision.
func (s *Session) AddIncludePattern(pattern string) *Session {
	s.config.IncludePatterns = append(s.config.IncludePatterns, pattern)
	return s
}

// AddExcludePattern appends to the exclude pattern list. The matcher is not
// rebuilt here; call Recompile before the next decision.
func (s *Session) AddExcludePattern(pattern string) *Session {
	s.config.ExcludePatterns = append(s.config.ExcludePatterns, pattern)
	return s
}

// Recompile rebuilds both matchers from the current pattern lists. If
// either list fails to compile, both previous matchers are kept and the
// error is returned; the configuration is then not-yet-applicable and
// decisions keep using the prior state.
func (s *Session) Recompile() error {
	include, err := filter.CompileMatcher(s.config.IncludePatterns)
	if err != nil {
		return err
	}
	exclude, err := filter.CompileMatcher(s.config.ExcludePatterns)
	if err != nil {
		return err
	}
	s.include = include
	s.exclude = exclude
	s.logger.Debug().
		Int("includePatterns", len(s.config.IncludePatterns)).
		Int("excludePatterns", len(s.config.ExcludePatterns)).
		Msg("recompiled matchers")
	return nil
}

// RefreshSelection re-derives the IsSelected flag of every currently
// loaded tree node from the inclusion rules. Pattern changes do not
// propagate to the tree automatically; this is the explicit
// recompute-on-demand operation.
func (s *Session) RefreshSelection() {
	s.Tree.Walk(func(node *tree.FileNode) {
		node.IsSelected = s.IsIncluded(node.Path)
	})
}

// VisibleNodes returns the tree projection under the current search query.
func (s *Session) VisibleNodes() []*tree.FileNode {
	return s.Tree.VisibleNodes(s.SearchQuery)
}

// rel turns an absolute path under the session root into the root-relative,
// slash-normalized form the override sets and matchers are keyed by. Paths
// outside the root pass through unchanged.
func (s *Session) rel(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
