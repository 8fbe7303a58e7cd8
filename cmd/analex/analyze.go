package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"analex/internal/diagfmt"
	"analex/internal/driver"
	"analex/internal/source"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <file|->",
	Short: "Show tokens, diagnostics and category counts for a source",
	Long: `Analyze runs the lexer and every structural check over a source file
(or stdin with "-") and prints the token table, the diagnostics and the
per-category counts.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := current.outputFormat(cmd)
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	fs := source.NewFileSet()
	file, err := loadInput(fs, args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	res := driver.AnalyzeWithOptions(cmd.Context(), nil, file, current.analyzeOptions())

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.AnalysisJSON(out, file, res.Tokens, res.Diagnostics, res.Counts, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeFixes:     true,
		})
		if err != nil {
			return err
		}
	} else {
		useColor := current.useColor(os.Stdout)
		if err := diagfmt.FormatTokensPretty(out, res.Tokens, useColor); err != nil {
			return err
		}
		fmt.Fprintln(out)
		if res.HasDiagnostics() {
			diagfmt.Pretty(out, res.Diagnostics, fs, current.prettyOpts(os.Stdout))
			fmt.Fprintln(out)
		} else if !current.quiet {
			fmt.Fprintln(out, "no diagnostics")
			fmt.Fprintln(out)
		}
		if err := diagfmt.FormatCounts(out, res.Counts, useColor); err != nil {
			return err
		}
	}
	if current.timings {
		printTimings(cmd.ErrOrStderr(), res.Timing)
	}
	return nil
}
