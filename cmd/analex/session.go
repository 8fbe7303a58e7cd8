package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"analex/internal/diagfmt"
	"analex/internal/driver"
	"analex/internal/session"
	"analex/internal/source"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Analyze submissions read from stdin in one session",
	Long: `Read source lines from stdin. A line containing only "." submits the
buffered text; names declared in earlier submissions stay known until
":reset". ":counts" prints the running category counts, ":quit" ends
the session. Remaining text is submitted at end of input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), sessionConfig{
			opts:     current.analyzeOptions(),
			pretty:   current.prettyOpts(os.Stdout),
			useColor: current.useColor(os.Stdout),
			prompt:   !current.quiet && isTerminalReader(cmd.InOrStdin()),
		})
	},
}

type sessionConfig struct {
	opts     driver.Options
	pretty   diagfmt.PrettyOpts
	useColor bool
	prompt   bool
}

// runSession drives one session over in. It returns when in is exhausted
// or ":quit" is read.
func runSession(ctx context.Context, in io.Reader, out io.Writer, cfg sessionConfig) error {
	sess := session.New()
	fs := source.NewFileSet()
	var buf strings.Builder
	submissions := 0

	submit := func() error {
		submissions++
		name := fmt.Sprintf("<submission %d>", submissions)
		file := fs.Get(fs.AddVirtual(name, []byte(buf.String())))
		buf.Reset()

		res := driver.AnalyzeWithOptions(ctx, sess, file, cfg.opts)
		if err := diagfmt.FormatTokensPretty(out, res.Tokens, cfg.useColor); err != nil {
			return err
		}
		if res.HasDiagnostics() {
			fmt.Fprintln(out)
			pretty := cfg.pretty
			pretty.Color = cfg.useColor
			diagfmt.Pretty(out, res.Diagnostics, fs, pretty)
		}
		fmt.Fprintln(out)
		return diagfmt.FormatCounts(out, res.Counts, cfg.useColor)
	}

	// строки читаются без ограничения длины
	reader := bufio.NewReader(in)
	for {
		if cfg.prompt {
			fmt.Fprint(out, "> ")
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if line == "" && err != nil {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		switch strings.TrimSpace(line) {
		case ".":
			if err := submit(); err != nil {
				return err
			}
			continue
		case ":reset":
			sess.Reset()
			fmt.Fprintln(out, "session reset")
			continue
		case ":counts":
			if err := diagfmt.FormatCounts(out, sess.Counts(), cfg.useColor); err != nil {
				return err
			}
			continue
		case ":quit":
			return nil
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if strings.TrimSpace(buf.String()) != "" {
		return submit()
	}
	return nil
}
