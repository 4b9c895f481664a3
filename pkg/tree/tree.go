package tree

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/logging"
)

// Tree is the owned forest of FileNodes mirroring the filesystem, built
// incrementally through lazy child loading. All mutation is synchronous and
// single-writer; the rendering layer only ever sees the read-only
// projection returned by VisibleNodes.
type Tree struct {
	roots  []*FileNode
	logger zerolog.Logger
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{
		logger: logging.GetLogger("tree"),
	}
}

// Roots returns the root-level nodes.
func (t *Tree) Roots() []*FileNode {
	return t.roots
}

// SetRoots replaces the whole forest. Used by full rebuilds and tests.
func (t *Tree) SetRoots(roots []*FileNode) {
	t.roots = roots
}

// LoadRoot creates the root-level nodes from a single non-recursive listing
// of dir. Called once when a session begins browsing.
func (t *Tree) LoadRoot(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirList,
			"cannot list directory %s", dir).WithDetail("path", dir)
	}

	roots := make([]*FileNode, 0, len(entries))
	for _, entry := range entries {
		roots = append(roots, NewFileNode(filepath.Join(dir, entry.Name()), 0))
	}
	sortNodes(roots)
	t.roots = roots

	t.logger.Debug().Str("dir", dir).Int("entries", len(roots)).Msg("loaded root nodes")
	return nil
}

// LoadChildren lazily loads the immediate children of the directory node at
// path. Loading happens exactly once: a second call on an already-loaded
// node is a no-op. On failure ChildrenLoaded stays false so the user can
// retry by re-expanding.
func (t *Tree) LoadChildren(path string) error {
	node := findNode(t.roots, path)
	if node == nil || !node.IsDirectory || node.ChildrenLoaded {
		return nil
	}

	entries, err := os.ReadDir(node.Path)
	if err != nil {
		t.logger.Warn().Err(err).Str("path", node.Path).Msg("cannot list directory")
		return errors.Wrapf(err, errors.ErrDirList,
			"cannot list directory %s", node.Path).WithDetail("path", node.Path)
	}

	children := make([]*FileNode, 0, len(entries))
	for _, entry := range entries {
		children = append(children, NewFileNode(filepath.Join(node.Path, entry.Name()), node.Level+1))
	}
	sortNodes(children)

	node.Children = children
	node.ChildrenLoaded = true

	t.logger.Debug().Str("path", node.Path).Int("children", len(children)).Msg("loaded children")
	return nil
}

// SetSelection updates the selection flag for the node at path. For
// directories, every currently loaded descendant is overwritten to the same
// value; unloaded descendants are untouched and will initialize unselected
// when first loaded. For files, only the exact node changes.
func (t *Tree) SetSelection(path string, selected, isDirectory bool) {
	if isDirectory {
		setDirectorySelection(t.roots, path, selected)
	} else {
		setSingleSelection(t.roots, path, selected)
	}
}

// Expand marks the directory node at path as expanded. Display-only: it
// does not touch ChildrenLoaded or child selection.
func (t *Tree) Expand(path string) {
	setExpanded(t.roots, path, true)
}

// Collapse marks the directory node at path as collapsed.
func (t *Tree) Collapse(path string) {
	setExpanded(t.roots, path, false)
}

// Find returns the node at path, or nil.
func (t *Tree) Find(path string) *FileNode {
	return findNode(t.roots, path)
}

// VisibleNodes returns the flattened, depth-first pre-order projection of
// nodes visible under the given search query. A node is listed when it
// matches the query; its children are walked only when it is expanded and
// either matched the query or is a directory (so matching descendants of a
// non-matching expanded directory still surface). The returned slice is a
// fresh projection and must be recomputed after any state change.
func (t *Tree) VisibleNodes(query string) []*FileNode {
	var visible []*FileNode
	collectVisible(t.roots, query, &visible)
	return visible
}

// Walk visits every loaded node in depth-first pre-order.
func (t *Tree) Walk(fn func(*FileNode)) {
	walkNodes(t.roots, fn)
}

func walkNodes(nodes []*FileNode, fn func(*FileNode)) {
	for _, node := range nodes {
		fn(node)
		if len(node.Children) > 0 {
			walkNodes(node.Children, fn)
		}
	}
}

func collectVisible(nodes []*FileNode, query string, visible *[]*FileNode) {
	for _, node := range nodes {
		matched := NodeMatches(query, node)
		if matched {
			*visible = append(*visible, node)
		}
		if node.IsExpanded && (matched || node.IsDirectory) {
			collectVisible(node.Children, query, visible)
		}
	}
}

func findNode(nodes []*FileNode, path string) *FileNode {
	for _, node := range nodes {
		if node.Path == path {
			return node
		}
		if len(node.Children) > 0 {
			if found := findNode(node.Children, path); found != nil {
				return found
			}
		}
	}
	return nil
}

func setDirectorySelection(nodes []*FileNode, path string, selected bool) {
	for _, node := range nodes {
		if node.Path == path {
			node.IsSelected = selected
			setChildrenSelection(node.Children, selected)
			return
		}
		if len(node.Children) > 0 {
			setDirectorySelection(node.Children, path, selected)
		}
	}
}

func setSingleSelection(nodes []*FileNode, path string, selected bool) {
	for _, node := range nodes {
		if node.Path == path {
			node.IsSelected = selected
			return
		}
		if len(node.Children) > 0 {
			setSingleSelection(node.Children, path, selected)
		}
	}
}

func setChildrenSelection(nodes []*FileNode, selected bool) {
	for _, node := range nodes {
		node.IsSelected = selected
		if len(node.Children) > 0 {
			setChildrenSelection(node.Children, selected)
		}
	}
}

func setExpanded(nodes []*FileNode, path string, expanded bool) {
	for _, node := range nodes {
		if node.Path == path && node.IsDirectory {
			node.IsExpanded = expanded
			return
		}
		if len(node.Children) > 0 {
			setExpanded(node.Children, path, expanded)
		}
	}
}

// sortNodes orders directories first, then lexicographically by name.
func sortNodes(nodes []*FileNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].IsDirectory != nodes[j].IsDirectory {
			return nodes[i].IsDirectory
		}
		return nodes[i].Name < nodes[j].Name
	})
}
