// Package template renders the final prompt from the collected codebase
// data. Templates are Go text/template with the sprig helper functions.
package template

import (
	_ "embed"
	"strings"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/walker"
)

//go:embed templates/default_markdown.tmpl
var defaultMarkdownTemplate string

//go:embed templates/default_xml.tmpl
var defaultXMLTemplate string

// OutputFormat selects the default template and the final output envelope.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatXML      OutputFormat = "xml"
	FormatJSON     OutputFormat = "json"
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(name)) {
	case FormatMarkdown, "md", "":
		return FormatMarkdown, nil
	case FormatXML:
		return FormatXML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput,
			"unknown output format %q (want markdown, xml or json)", name)
	}
}

// Data is the template context, mirroring what the session assembles.
type Data struct {
	AbsoluteCodePath string
	SourceTree       string
	Files            []walker.FileEntry
	GitDiff          string
	GitDiffBranch    string
	GitLogBranch     string
	UserVariables    map[string]string
}

// Default returns the embedded template and its name for a format. JSON
// output wraps the XML template's rendering, matching the envelope the
// caller builds.
func Default(format OutputFormat) (templateStr, name string) {
	switch format {
	case FormatXML, FormatJSON:
		return defaultXMLTemplate, "xml"
	default:
		return defaultMarkdownTemplate, "markdown"
	}
}

// Render parses templateStr and executes it with data. Parse failures and
// execution failures carry distinct error codes so callers can report them
// as configuration versus rendering problems.
func Render(templateStr, name string, data *Data) (string, error) {
	tmpl, err := texttemplate.New(name).Funcs(sprig.FuncMap()).Parse(templateStr)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateParse,
			"cannot parse template %q", name)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender,
			"cannot render template %q", name)
	}
	return b.String(), nil
}
