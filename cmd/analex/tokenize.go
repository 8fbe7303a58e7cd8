package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"analex/internal/diagfmt"
	"analex/internal/driver"
	"analex/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|->",
	Short: "Tokenize a source file",
	Long:  `Tokenize breaks a source file down into classified tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := current.outputFormat(cmd)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	file, err := loadInput(fs, args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	res := driver.AnalyzeWithOptions(cmd.Context(), nil, file, current.analyzeOptions())

	// Лексические диагностики идут в stderr
	if lexical := res.Lexical(); len(lexical) > 0 && !current.quiet {
		diagfmt.Pretty(cmd.ErrOrStderr(), lexical, fs, current.prettyOpts(os.Stderr))
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, current.useColor(os.Stdout))
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
