package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[analysis]\nsuggestion_threshold = 0.8\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
	if m.Config.Analysis.SuggestionThreshold != 0.8 {
		t.Errorf("threshold = %g", m.Config.Analysis.SuggestionThreshold)
	}
	if m.Config.Output.Format != "pretty" || m.Config.Output.Context != 1 {
		t.Errorf("defaults not kept: %+v", m.Config.Output)
	}
}

func TestLoadMissing(t *testing.T) {
	// t.TempDir lives under the system temp dir, which carries no manifest.
	_, ok, err := Load(t.TempDir())
	if err != nil || ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[analysis\n", "failed to parse TOML"},
		{"unknown key", "[analysis]\nfoo = 1\n", "unknown keys: analysis.foo"},
		{"threshold", "[analysis]\nsuggestion_threshold = 1.5\n", "suggestion_threshold"},
		{"negative limit", "[analysis]\nmax_diagnostics = -1\n", "max_diagnostics"},
		{"format", "[output]\nformat = \"xml\"\n", "[output].format"},
		{"color", "[output]\ncolor = \"always\"\n", "[output].color"},
		{"progress", "[output]\nprogress = \"yes\"\n", "[output].progress"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestExtensionsNormalized(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[analysis]\nextensions = [\"src\", \".prg\"]\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{".src", ".prg"}; !reflect.DeepEqual(cfg.Analysis.Extensions, want) {
		t.Errorf("extensions = %v, want %v", cfg.Analysis.Extensions, want)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, Defaults()) {
		t.Errorf("decoded %+v, want %+v", cfg, Defaults())
	}
	if _, err := WriteDefault(dir, false); !errors.Is(err, ErrManifestExists) {
		t.Errorf("second write err = %v", err)
	}
	if _, err := WriteDefault(dir, true); err != nil {
		t.Errorf("forced write err = %v", err)
	}
}
