// Package generate assembles the final prompt: it builds the selection
// session from the saved profile and CLI patterns, optionally runs the
// interactive selector, then traverses the tree with the same inclusion
// rules and renders the result through a template.
package generate

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/promptpack/promptpack/pkg/config"
	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/gitutil"
	"github.com/promptpack/promptpack/pkg/logging"
	"github.com/promptpack/promptpack/pkg/session"
	"github.com/promptpack/promptpack/pkg/template"
	"github.com/promptpack/promptpack/pkg/tokenizer"
	"github.com/promptpack/promptpack/pkg/tui"
	"github.com/promptpack/promptpack/pkg/walker"
)

// Options are the effective generation settings after flag parsing.
type Options struct {
	Root            string
	IncludePatterns []string
	ExcludePatterns []string
	OutputFormat    string
	TemplatePath    string
	Encoding        string
	ShowHidden      bool

	Diff         bool
	DiffBranches []string // exactly two branch names, or empty
	LogBranches  []string // exactly two branch names, or empty

	Interactive bool
}

// Result is the rendered prompt plus its metadata.
type Result struct {
	Prompt        string   `json:"prompt"`
	DirectoryName string   `json:"directory_name"`
	TokenCount    int      `json:"token_count"`
	ModelInfo     string   `json:"model_info"`
	Files         []string `json:"files"`
}

// Run executes the generation pipeline. A nil Result with a nil error means
// the user left the interactive selector without generating.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.generate")

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid root %s", opts.Root)
	}
	if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotFound, "not a directory: %s", root)
	}

	profile, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	filterCfg := profile.FilterConfig()
	filterCfg.IncludePatterns = append(filterCfg.IncludePatterns, opts.IncludePatterns...)
	filterCfg.ExcludePatterns = append(filterCfg.ExcludePatterns, opts.ExcludePatterns...)

	sess, err := session.New(root, filterCfg)
	if err != nil {
		return nil, err
	}

	if opts.Interactive {
		if err := sess.Browse(); err != nil {
			return nil, err
		}
		sess.RefreshSelection()

		generate, tuiErr := tui.Execute(sess)
		if tuiErr != nil {
			return nil, errors.Wrap(tuiErr, errors.ErrInternal, "interactive selector failed")
		}
		if !generate {
			logger.Info().Msg("selection aborted, nothing generated")
			return nil, nil
		}
	}

	formatName := opts.OutputFormat
	if formatName == "" {
		formatName = profile.OutputFormat
	}
	format, err := template.ParseOutputFormat(formatName)
	if err != nil {
		return nil, err
	}

	encodingName := opts.Encoding
	if encodingName == "" {
		encodingName = profile.Encoding
	}
	encoding := tokenizer.ParseEncoding(encodingName)

	showHidden := opts.ShowHidden || profile.ShowHidden

	w, err := walker.New(root, sess.Config().Clone(), walker.Options{
		ShowHidden: showHidden,
		Encoding:   encoding,
	})
	if err != nil {
		return nil, err
	}
	walked, err := w.Walk()
	if err != nil {
		return nil, err
	}

	data := &template.Data{
		AbsoluteCodePath: root,
		SourceTree:       walked.SourceTree,
		Files:            walked.Files,
	}

	// Git context is best effort: failures degrade to missing sections.
	if opts.Diff {
		if diff, gitErr := gitutil.WorktreeChanges(root); gitErr != nil {
			logger.Warn().Err(gitErr).Msg("git diff could not be loaded")
		} else {
			data.GitDiff = diff
		}
	}
	if len(opts.DiffBranches) == 2 {
		if diff, gitErr := gitutil.DiffBranches(root, opts.DiffBranches[0], opts.DiffBranches[1]); gitErr != nil {
			logger.Warn().Err(gitErr).Msg("git branch diff could not be loaded")
		} else {
			data.GitDiffBranch = diff
		}
	}
	if len(opts.LogBranches) == 2 {
		if log, gitErr := gitutil.LogBranches(root, opts.LogBranches[0], opts.LogBranches[1]); gitErr != nil {
			logger.Warn().Err(gitErr).Msg("git branch log could not be loaded")
		} else {
			data.GitLogBranch = log
		}
	}

	templateStr, templateName, err := resolveTemplate(opts.TemplatePath, profile.Template, format)
	if err != nil {
		return nil, err
	}

	rendered, err := template.Render(templateStr, templateName, data)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(walked.Files))
	for _, f := range walked.Files {
		files = append(files, f.Path)
	}

	result := &Result{
		Prompt:        rendered,
		DirectoryName: filepath.Base(root),
		TokenCount:    tokenizer.CountTokens(rendered, encoding),
		ModelInfo:     encoding.Description(),
		Files:         files,
	}

	if format == template.FormatJSON {
		encoded, jsonErr := json.MarshalIndent(result, "", "  ")
		if jsonErr != nil {
			return nil, errors.Wrap(jsonErr, errors.ErrInternal, "cannot encode JSON output")
		}
		result.Prompt = string(encoded)
	}

	logger.Info().
		Int("files", len(files)).
		Int("tokenCount", result.TokenCount).
		Msg("prompt generated")
	return result, nil
}

// resolveTemplate picks the template: an explicit flag path wins, then the
// profile's template path, then the embedded default for the format.
func resolveTemplate(flagPath, profilePath string, format template.OutputFormat) (string, string, error) {
	path := flagPath
	if path == "" {
		path = profilePath
	}
	if path == "" {
		str, name := template.Default(format)
		return str, name, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrFileRead,
			"cannot read template %s", path).WithDetail("path", path)
	}
	return string(content), filepath.Base(path), nil
}
