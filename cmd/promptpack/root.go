package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/promptpack/promptpack/internal/version"
	"github.com/promptpack/promptpack/pkg/commands/generate"
	"github.com/promptpack/promptpack/pkg/logging"
)

var (
	verbosity    int
	includeFlags []string
	excludeFlags []string
	outputFormat string
	outputFile   string
	templatePath string
	encoding     string
	showHidden   bool
	diff         bool
	diffBranches []string
	logBranches  []string
	interactive  bool

	rootCmd = &cobra.Command{
		Use:   "promptpack [path]",
		Short: "Turn a codebase into an LLM prompt",
		Long: `promptpack walks a directory tree, selects files through glob patterns
and per-path overrides, and renders the selected contents into a single
prompt. Run with --tui to pick files interactively before generating.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runGenerate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func runGenerate(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	if interactive && !isatty.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("--tui requires an interactive terminal")
	}

	result, err := generate.Run(generate.Options{
		Root:            root,
		IncludePatterns: includeFlags,
		ExcludePatterns: excludeFlags,
		OutputFormat:    outputFormat,
		TemplatePath:    templatePath,
		Encoding:        encoding,
		ShowHidden:      showHidden,
		Diff:            diff,
		DiffBranches:    diffBranches,
		LogBranches:     logBranches,
		Interactive:     interactive,
	})
	if err != nil {
		return err
	}
	if result == nil {
		// User left the selector without generating.
		return nil
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(result.Prompt), 0644); err != nil {
			return fmt.Errorf("cannot write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d tokens, %s)\n",
			outputFile, result.TokenCount, result.ModelInfo)
		return nil
	}

	fmt.Print(result.Prompt)
	return nil
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().StringArrayVarP(&includeFlags, "include", "i", nil, "Include glob pattern (repeatable)")
	rootCmd.Flags().StringArrayVarP(&excludeFlags, "exclude", "e", nil, "Exclude glob pattern (repeatable)")
	rootCmd.Flags().StringVarP(&outputFormat, "output-format", "F", "", "Output format: markdown, xml or json")
	rootCmd.Flags().StringVarP(&outputFile, "output-file", "O", "", "Write the prompt to a file instead of stdout")
	rootCmd.Flags().StringVarP(&templatePath, "template", "t", "", "Custom template file")
	rootCmd.Flags().StringVar(&encoding, "encoding", "", "Token encoding: cl100k, o200k, p50k, p50k_edit, r50k")
	rootCmd.Flags().BoolVar(&showHidden, "hidden", false, "Include hidden files and directories")
	rootCmd.Flags().BoolVarP(&diff, "diff", "d", false, "Include uncommitted git changes")
	rootCmd.Flags().StringSliceVar(&diffBranches, "git-diff-branch", nil, "Diff between two branches, e.g. main,feature")
	rootCmd.Flags().StringSliceVar(&logBranches, "git-log-branch", nil, "Log between two branches, e.g. main,feature")
	rootCmd.Flags().BoolVar(&interactive, "tui", false, "Pick files interactively before generating")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("promptpack version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}
