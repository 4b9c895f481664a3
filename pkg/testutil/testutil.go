// Package testutil provides shared helpers for building on-disk fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempTree creates a temporary directory populated with the given files.
// Keys are slash-separated relative paths; a key ending in "/" creates an
// empty directory. Returns the root path.
func TempTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()

	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		if strings.HasSuffix(path, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}
