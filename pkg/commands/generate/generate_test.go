// Test Type: Integration Test
// Description: End-to-end tests for the non-interactive generation pipeline

package generate_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpack/promptpack/pkg/commands/generate"
	"github.com/promptpack/promptpack/pkg/testutil"
)

func TestRun_Markdown(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"main.go":       "package main\n",
		"notes.txt":     "remember the milk\n",
		"sub/helper.go": "package sub\n",
	})

	result, err := generate.Run(generate.Options{
		Root:            root,
		IncludePatterns: []string{"**/*.go", "*.go"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, filepath.Base(root), result.DirectoryName)
	assert.ElementsMatch(t, []string{"main.go", "sub/helper.go"}, result.Files)
	assert.Contains(t, result.Prompt, "package main")
	assert.Contains(t, result.Prompt, "package sub")
	assert.NotContains(t, result.Prompt, "remember the milk")
	assert.Greater(t, result.TokenCount, 0)
	assert.NotEmpty(t, result.ModelInfo)
}

func TestRun_JSONEnvelope(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"a.txt": "alpha\n",
	})

	result, err := generate.Run(generate.Options{
		Root:         root,
		OutputFormat: "json",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.Prompt), &envelope))
	assert.Contains(t, envelope, "prompt")
	assert.Contains(t, envelope, "token_count")
	assert.Contains(t, envelope, "model_info")
	assert.Equal(t, filepath.Base(root), envelope["directory_name"])
}

func TestRun_ProjectProfileApplies(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"keep.go":            "package keep\n",
		"skip.md":            "# skipped\n",
		".promptpack.toml":   "include_patterns = [\"*.go\"]\n",
		"sub/also_skipped.c": "int x;\n",
	})

	result, err := generate.Run(generate.Options{Root: root})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, []string{"keep.go"}, result.Files)
}

func TestRun_CustomTemplate(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"a.txt": "alpha\n",
	})
	tmplPath := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(tmplPath, []byte("FILES:{{ range .Files }} {{ .Path }}{{ end }}"), 0644))

	result, err := generate.Run(generate.Options{
		Root:         root,
		TemplatePath: tmplPath,
	})
	require.NoError(t, err)
	assert.Equal(t, "FILES: a.txt", result.Prompt)
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing_root", func(t *testing.T) {
		_, err := generate.Run(generate.Options{Root: filepath.Join(t.TempDir(), "nope")})
		assert.Error(t, err)
	})

	t.Run("invalid_pattern", func(t *testing.T) {
		_, err := generate.Run(generate.Options{
			Root:            t.TempDir(),
			IncludePatterns: []string{"[unclosed"},
		})
		assert.Error(t, err)
	})

	t.Run("unknown_format", func(t *testing.T) {
		_, err := generate.Run(generate.Options{
			Root:         t.TempDir(),
			OutputFormat: "pdf",
		})
		assert.Error(t, err)
	})

	t.Run("missing_template_file", func(t *testing.T) {
		_, err := generate.Run(generate.Options{
			Root:         t.TempDir(),
			TemplatePath: filepath.Join(t.TempDir(), "ghost.tmpl"),
		})
		assert.Error(t, err)
	})
}
