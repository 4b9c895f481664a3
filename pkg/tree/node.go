package tree

import (
	"os"
	"path/filepath"
)

// FileNode is one entry in the navigable tree. A node exclusively owns its
// children; there are no shared or back references. IsSelected is the
// user-facing selection flag, held independently of the rule-derived
// filter.Decide result so user intent survives pattern edits.
type FileNode struct {
	Path           string
	Name           string
	IsDirectory    bool
	IsExpanded     bool
	IsSelected     bool
	Children       []*FileNode
	Level          int
	ChildrenLoaded bool
}

// NewFileNode creates an unloaded, collapsed, unselected node for the given
// absolute path at the given depth.
func NewFileNode(path string, level int) *FileNode {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		name = path
	}

	// Follows symlinks, so a link to a directory browses like one.
	info, err := os.Stat(path)
	isDir := err == nil && info.IsDir()

	return &FileNode{
		Path:        path,
		Name:        name,
		IsDirectory: isDir,
		Level:       level,
	}
}
