package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"analex/internal/driver"
	"analex/internal/fix"
	"analex/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file>",
	Short: "Apply suggested fixes to a source file",
	Long: `Analyze a file and apply the fixes attached to its diagnostics:
keyword spelling replacements and missing ';' terminators.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "print the fixed source instead of writing the file")
	fixCmd.Flags().Bool("once", false, "apply only the first available fix")
	fixCmd.Flags().Bool("only-lexical", false, "apply only spelling replacements")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
}

func runFix(cmd *cobra.Command, args []string) error {
	path := args[0]

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	onlyLexical, err := cmd.Flags().GetBool("only-lexical")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}

	if targetID != "" && (once || onlyLexical) {
		return fmt.Errorf("--id cannot be combined with --once or --only-lexical")
	}
	if once && onlyLexical {
		return fmt.Errorf("--once and --only-lexical are mutually exclusive")
	}
	opts := fix.ApplyOptions{Mode: fix.ApplyModeAll, TargetID: targetID}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
	case once:
		opts.Mode = fix.ApplyModeOnce
	case onlyLexical:
		opts.Mode = fix.ApplyModeLexical
	}

	fs := source.NewFileSet()
	file, err := loadInput(fs, path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	analyzeOpts := current.analyzeOptions()
	analyzeOpts.MaxDiagnostics = 0
	res := driver.AnalyzeWithOptions(cmd.Context(), nil, file, analyzeOpts)

	result, err := fix.Apply(file, res.Diagnostics, opts)
	if err != nil {
		if errors.Is(err, fix.ErrNoFixes) {
			if !current.quiet {
				fmt.Fprintln(cmd.ErrOrStderr(), "no applicable fixes found")
			}
			reportSkipped(cmd, result)
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	if dryRun || path == "-" {
		_, err = out.Write(result.Output)
		if err != nil {
			return err
		}
	} else if err := fix.WriteFile(path, result.Output); err != nil {
		return err
	}

	if !current.quiet {
		log := cmd.ErrOrStderr()
		for _, applied := range result.Applied {
			fmt.Fprintf(log, "fixed %s (line %d): %s\n", applied.ID, applied.Line, applied.Title)
		}
	}
	reportSkipped(cmd, result)
	return nil
}

func reportSkipped(cmd *cobra.Command, result *fix.ApplyResult) {
	if result == nil || current.quiet {
		return
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", skipped.ID, skipped.Reason)
	}
}
