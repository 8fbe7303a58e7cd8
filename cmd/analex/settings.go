package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"analex/internal/diagfmt"
	"analex/internal/driver"
	"analex/internal/project"
)

// settings is the merged view of analex.toml and the command line.
type settings struct {
	config   project.Config
	manifest string // path of the manifest in use, "" for defaults
	color    string
	quiet    bool
	timings  bool
}

var current = settings{config: project.Defaults(), color: "auto"}

// prepare runs before every subcommand: it loads the manifest, applies flag
// overrides and sets up tracing and profiling.
func prepare(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	current = s
	color.NoColor = !current.useColor(os.Stdout)
	if err := setupTracing(cmd); err != nil {
		return err
	}
	return setupProfiling(cmd)
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Root().PersistentFlags()
	s := settings{config: project.Defaults()}

	configPath, err := flags.GetString("config")
	if err != nil {
		return s, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		cfg, err := project.LoadFile(configPath)
		if err != nil {
			return s, err
		}
		s.config, s.manifest = cfg, configPath
	} else {
		m, ok, err := project.Load(".")
		if err != nil {
			return s, err
		}
		if ok {
			s.config, s.manifest = m.Config, m.Path
		}
	}

	if s.color, err = switchValue(flags, "color", s.config.Output.Color); err != nil {
		return s, err
	}
	if flags.Changed("max-diagnostics") {
		if s.config.Analysis.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("threshold") {
		if s.config.Analysis.SuggestionThreshold, err = flags.GetFloat64("threshold"); err != nil {
			return s, fmt.Errorf("failed to get threshold flag: %w", err)
		}
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

// switchValue resolves an auto|on|off setting: the flag wins when given,
// otherwise the manifest value stands.
func switchValue(flags *pflag.FlagSet, name, fallback string) (string, error) {
	if !flags.Changed(name) {
		return fallback, nil
	}
	value, err := flags.GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "auto", "on", "off":
		return value, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", name, value)
}

// switchOn: "auto" follows whether f is a terminal.
func switchOn(value string, f *os.File) bool {
	switch value {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}

func (s settings) useColor(f *os.File) bool {
	return switchOn(s.color, f)
}

// progressView reports whether a directory run on cmd shows the progress view.
// --ui overrides [output].progress.
func (s settings) progressView(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := switchValue(cmd.Flags(), "ui", s.config.Output.Progress)
	if err != nil {
		return false, err
	}
	return switchOn(mode, f), nil
}

func (s settings) analyzeOptions() driver.Options {
	return driver.Options{
		Threshold:      s.config.Analysis.SuggestionThreshold,
		MaxDiagnostics: s.config.Analysis.MaxDiagnostics,
		Timings:        s.timings,
	}
}

func (s settings) prettyOpts(f *os.File) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.useColor(f),
		Context:   s.config.Output.Context,
		ShowFixes: true,
		Footer:    !s.quiet,
	}
}

// outputFormat returns the --format flag when given, else the manifest value.
func (s settings) outputFormat(cmd *cobra.Command) (string, error) {
	if !cmd.Flags().Changed("format") {
		return s.config.Output.Format, nil
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	return format, nil
}
