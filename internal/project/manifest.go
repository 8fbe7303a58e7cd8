// Package project reads and writes the analex.toml manifest.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"analex/internal/suggest"
)

// Config mirrors analex.toml. Zero values mean "not set"; Defaults fills them.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
}

type AnalysisConfig struct {
	SuggestionThreshold float64  `toml:"suggestion_threshold"`
	MaxDiagnostics      int      `toml:"max_diagnostics"`
	Extensions          []string `toml:"extensions,omitempty"`
}

type OutputConfig struct {
	Format   string `toml:"format"`
	Color    string `toml:"color"`
	Progress string `toml:"progress"` // progress view for directory runs
	Context  int    `toml:"context"`
}

// Manifest is a located and decoded analex.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Defaults returns the configuration used when no manifest exists.
func Defaults() Config {
	return Config{
		Analysis: AnalysisConfig{
			SuggestionThreshold: suggest.DefaultThreshold,
			MaxDiagnostics:      0,
			Extensions:          []string{".prg", ".txt"},
		},
		Output: OutputConfig{
			Format:   "pretty",
			Color:    "auto",
			Progress: "off",
			Context:  1,
		},
	}
}

// Load finds analex.toml above startDir and decodes it.
// ok reports whether a manifest was found.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadFile decodes path over Defaults and validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("analysis", "suggestion_threshold") {
		if t := cfg.Analysis.SuggestionThreshold; t <= 0 || t > 1 {
			return Config{}, fmt.Errorf("%s: [analysis].suggestion_threshold must be in (0, 1], got %g", path, t)
		}
	}
	if cfg.Analysis.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [analysis].max_diagnostics must not be negative", path)
	}
	for i, ext := range cfg.Analysis.Extensions {
		if !strings.HasPrefix(ext, ".") {
			cfg.Analysis.Extensions[i] = "." + ext
		}
	}
	switch cfg.Output.Format {
	case "pretty", "json":
	default:
		return Config{}, fmt.Errorf("%s: [output].format must be pretty or json, got %q", path, cfg.Output.Format)
	}
	for _, sw := range [...]struct{ key, value string }{
		{"color", cfg.Output.Color},
		{"progress", cfg.Output.Progress},
	} {
		switch sw.value {
		case "auto", "on", "off":
		default:
			return Config{}, fmt.Errorf("%s: [output].%s must be auto, on or off, got %q", path, sw.key, sw.value)
		}
	}
	if cfg.Output.Context < 0 {
		return Config{}, fmt.Errorf("%s: [output].context must not be negative", path)
	}
	return cfg, nil
}

// ErrManifestExists is returned by WriteDefault when the target already exists.
var ErrManifestExists = errors.New("analex.toml already exists")

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# analex configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefault creates dir/analex.toml with Defaults. Existing files are
// left alone unless force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, ErrManifestExists
		} else if !errors.Is(err, os.ErrNotExist) {
			return path, err
		}
	}
	data, err := Encode(Defaults())
	if err != nil {
		return path, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
