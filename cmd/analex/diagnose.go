package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"analex/internal/cache"
	"analex/internal/diag"
	"analex/internal/diagfmt"
	"analex/internal/driver"
	"analex/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file|directory|->",
	Short: "Report diagnostics for a source file or directory",
	Long: `Run the lexer and the structural checks over a file, stdin ("-"), or every
source file under a directory. Exits with status 1 when anything is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().String("ui", "off", "progress view for directories (auto|on|off), overrides [output].progress")
	diagCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	diagCmd.Flags().Bool("clear-cache", false, "drop the on-disk cache before running")
	diagCmd.Flags().String("paths", "auto", "path display (auto|absolute|relative|basename)")
	diagCmd.Flags().Bool("suggest", true, "include fix suggestions in output")
}

// fileReport is one file's entry in the JSON output of a directory run.
type fileReport struct {
	File        string                   `json:"file"`
	Cached      bool                     `json:"cached,omitempty"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics"`
}

type dirReport struct {
	Files []fileReport `json:"files"`
	Count int          `json:"count"`
	Note  string       `json:"note,omitempty"`
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := current.outputFormat(cmd)
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	pathsStr, err := cmd.Flags().GetString("paths")
	if err != nil {
		return fmt.Errorf("failed to get paths flag: %w", err)
	}
	withFixes, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	pathMode := diagfmt.ParsePathMode(pathsStr)

	if target != "-" {
		st, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", target, err)
		}
		if st.IsDir() {
			return diagnoseDir(cmd, target, format, pathMode, withFixes)
		}
	}

	fs := source.NewFileSet()
	file, err := loadInput(fs, target, cmd.InOrStdin())
	if err != nil {
		return err
	}
	res := driver.AnalyzeWithOptions(cmd.Context(), nil, file, current.analyzeOptions())

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.JSON(out, res.Diagnostics, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeFixes:     withFixes,
			IncludePreviews:  withFixes,
		})
		if err != nil {
			return err
		}
	case "short":
		diagfmt.Short(out, res.Diagnostics)
	default:
		opts := current.prettyOpts(os.Stdout)
		opts.PathMode = pathMode
		opts.ShowFixes = withFixes
		diagfmt.Pretty(out, res.Diagnostics, fs, opts)
	}
	if current.timings {
		printTimings(cmd.ErrOrStderr(), res.Timing)
	}
	if res.HasDiagnostics() {
		return errFindings
	}
	return nil
}

func diagnoseDir(cmd *cobra.Command, dir, format string, pathMode diagfmt.PathMode, withFixes bool) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	showProgress, err := current.progressView(cmd, os.Stdout)
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}

	opts := driver.DirOptions{
		Options:    current.analyzeOptions(),
		Jobs:       jobs,
		Extensions: current.config.Analysis.Extensions,
	}
	if useCache || clearCache {
		dc, err := cache.Open("analex")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if clearCache {
			if err := dc.DropAll(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = dc
		}
	}

	var (
		fs      *source.FileSet
		results []driver.FileResult
	)
	if format == "pretty" && showProgress {
		files, err := driver.ListFiles(dir, opts.Extensions)
		if err != nil {
			return err
		}
		fs, results, err = runDirWithUI(cmd.Context(), "analyzing "+dir, dir, files, opts)
		if err != nil {
			return err
		}
	} else {
		fs, results, err = driver.AnalyzeDir(cmd.Context(), dir, opts)
		if err != nil {
			return err
		}
	}

	found := false
	for _, r := range results {
		found = found || r.HasDiagnostics()
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = writeDirJSON(out, results, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeFixes:     withFixes,
		})
		if err != nil {
			return err
		}
	default:
		prettyOpts := current.prettyOpts(os.Stdout)
		prettyOpts.PathMode = pathMode
		prettyOpts.ShowFixes = withFixes
		prettyOpts.Footer = false
		structural := false
		for _, r := range results {
			diags := fileDiagnostics(r)
			if len(diags) == 0 {
				continue
			}
			if format == "short" {
				fmt.Fprintf(out, "%s:\n", r.Path)
				diagfmt.Short(out, diags)
				continue
			}
			if r.Load != nil {
				fmt.Fprintf(out, "%s: ", r.Path)
			}
			diagfmt.Pretty(out, diags, fs, prettyOpts)
			for _, d := range diags {
				structural = structural || d.Code.IsStructural()
			}
		}
		if structural && !current.quiet {
			fmt.Fprintln(out, diagfmt.HeuristicNote)
		}
		if !current.quiet {
			fmt.Fprintf(out, "%d file(s) analyzed\n", len(results))
		}
	}

	if current.timings {
		for _, r := range results {
			if r.Result != nil && r.Result.Timing != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", r.Path)
				printTimings(cmd.ErrOrStderr(), r.Result.Timing)
			}
		}
	}
	if found {
		return errFindings
	}
	return nil
}

func fileDiagnostics(r driver.FileResult) []diag.Diagnostic {
	if r.Load != nil {
		return []diag.Diagnostic{*r.Load}
	}
	if r.Result == nil {
		return nil
	}
	return r.Result.Diagnostics
}

func writeDirJSON(w io.Writer, results []driver.FileResult, fs *source.FileSet, opts diagfmt.JSONOpts) error {
	report := dirReport{Files: make([]fileReport, 0, len(results))}
	for _, r := range results {
		diags := fileDiagnostics(r)
		out := diagfmt.BuildDiagnosticsOutput(diags, fs, opts)
		report.Files = append(report.Files, fileReport{
			File:        r.Path,
			Cached:      r.Result != nil && r.Result.Cached,
			Diagnostics: out.Diagnostics,
		})
		report.Count += out.Count
		for _, d := range diags {
			if d.Code.IsStructural() {
				report.Note = diagfmt.HeuristicNote
			}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
