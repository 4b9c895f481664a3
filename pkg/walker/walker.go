// Package walker is the batch traversal that produces the final file list
// for the rendered artifact. It applies the exact same inclusion resolver
// as the interactive view, over a snapshot of the filter configuration, so
// the output always agrees with what the tree showed.
package walker

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/filter"
	"github.com/promptpack/promptpack/pkg/logging"
	"github.com/promptpack/promptpack/pkg/tokenizer"
)

// FileEntry is one included file with its content and metadata, in the
// shape the template layer consumes.
type FileEntry struct {
	Path       string `json:"path"`
	Extension  string `json:"extension"`
	Code       string `json:"code"`
	ModTime    string `json:"mod_time"`
	TokenCount int    `json:"token_count"`
}

// Result holds the collected codebase data: the rendered source tree and
// the included files in traversal order.
type Result struct {
	SourceTree string
	Files      []FileEntry
}

// Options control traversal behavior outside the filter rules themselves.
type Options struct {
	ShowHidden bool
	Encoding   tokenizer.Encoding
}

// Walker traverses one root directory with one immutable configuration
// snapshot. Matchers are compiled once at construction.
type Walker struct {
	root    string
	config  *filter.Config
	include *filter.CompiledMatcher
	exclude *filter.CompiledMatcher
	opts    Options
	logger  zerolog.Logger
}

// New compiles the configuration's pattern lists and returns a walker. An
// invalid pattern fails construction; nothing is traversed.
func New(root string, config *filter.Config, opts Options) (*Walker, error) {
	include, err := filter.CompileMatcher(config.IncludePatterns)
	if err != nil {
		return nil, err
	}
	exclude, err := filter.CompileMatcher(config.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	return &Walker{
		root:    root,
		config:  config,
		include: include,
		exclude: exclude,
		opts:    opts,
		logger:  logging.GetLogger("walker"),
	}, nil
}

// Decide applies the inclusion resolver to a root-relative path under this
// walker's configuration snapshot.
func (w *Walker) Decide(relPath string) bool {
	return filter.Decide(relPath, w.include, w.exclude,
		w.config.ExplicitIncludes, w.config.ExplicitExcludes)
}

// Walk traverses the root and collects every included, readable text file.
// Unreadable files are skipped with a warning; only a failure to walk the
// root itself is an error.
func (w *Walker) Walk() (*Result, error) {
	var files []FileEntry

	walkErr := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == w.root {
				return errors.Wrapf(err, errors.ErrDirList,
					"cannot traverse %s", w.root).WithDetail("path", w.root)
			}
			w.logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == w.root {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if name == ".git" {
				return filepath.SkipDir
			}
			if !w.opts.ShowHidden && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.opts.ShowHidden && strings.HasPrefix(name, ".") {
			return nil
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !w.Decide(rel) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			w.logger.Warn().Err(readErr).Str("path", path).Msg("skipping unreadable file")
			return nil
		}
		if isBinary(content) {
			w.logger.Debug().Str("path", rel).Msg("skipping binary file")
			return nil
		}

		info, infoErr := d.Info()
		modTime := ""
		if infoErr == nil {
			modTime = info.ModTime().UTC().Format("2006-01-02T15:04:05Z")
		}

		code := string(content)
		files = append(files, FileEntry{
			Path:       rel,
			Extension:  strings.TrimPrefix(filepath.Ext(name), "."),
			Code:       code,
			ModTime:    modTime,
			TokenCount: tokenizer.CountTokens(code, w.opts.Encoding),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	w.logger.Info().Int("files", len(files)).Str("root", w.root).Msg("traversal complete")

	return &Result{
		SourceTree: renderSourceTree(w.root, files),
		Files:      files,
	}, nil
}

// isBinary uses the classic NUL-byte probe over the first 8000 bytes.
func isBinary(content []byte) bool {
	probe := content
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	return bytes.IndexByte(probe, 0) >= 0
}

// treeNode is a transient directory-tree shape used only for rendering the
// source tree string.
type treeNode struct {
	children map[string]*treeNode
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

func (n *treeNode) insert(parts []string) {
	if len(parts) == 0 {
		return
	}
	child, ok := n.children[parts[0]]
	if !ok {
		child = newTreeNode()
		n.children[parts[0]] = child
	}
	child.insert(parts[1:])
}

// renderSourceTree renders the included files as an indented tree rooted at
// the directory's base name.
func renderSourceTree(root string, files []FileEntry) string {
	top := newTreeNode()
	for _, f := range files {
		top.insert(strings.Split(f.Path, "/"))
	}

	var b strings.Builder
	b.WriteString(filepath.Base(root))
	b.WriteString("\n")
	renderChildren(&b, top, "")
	return b.String()
}

func renderChildren(b *strings.Builder, node *treeNode, prefix string) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(names)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(name)
		b.WriteString("\n")
		renderChildren(b, node.children[name], childPrefix)
	}
}
