package template

// systemVariables describes the variables every rendered template can rely
// on. Process-wide constant lookup data: initialized once, never mutated.
var systemVariables = map[string]string{
	"AbsoluteCodePath": "Path to the codebase directory",
	"SourceTree":       "Directory tree structure",
	"Files":            "List of file objects with content",
	"GitDiff":          "Git worktree changes (if enabled)",
	"GitDiffBranch":    "Git diff between branches",
	"GitLogBranch":     "Git log between branches",

	// FileEntry fields, available inside a range over .Files.
	"Path":       "File path (inside range .Files)",
	"Code":       "File content (inside range .Files)",
	"Extension":  "File extension (inside range .Files)",
	"TokenCount": "Token count for the file (inside range .Files)",
	"ModTime":    "File modification time (inside range .Files)",
}

// SystemVariables returns a copy of the system variable description table.
func SystemVariables() map[string]string {
	out := make(map[string]string, len(systemVariables))
	for k, v := range systemVariables {
		out[k] = v
	}
	return out
}

// IsSystemVariable reports whether name is provided by the engine itself.
func IsSystemVariable(name string) bool {
	_, ok := systemVariables[name]
	return ok
}
