package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDisabled(t *testing.T) {
	p, err := Start(Config{})
	if err != nil || p != nil {
		t.Fatalf("Start(empty) = %v, %v", p, err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("nil Stop: %v", err)
	}
}

func TestWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	p, err := Start(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Stop(); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{cfg.CPU, cfg.Mem, cfg.Trace} {
		st, err := os.Stat(path)
		if err != nil {
			t.Errorf("%s: %v", path, err)
			continue
		}
		if st.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestBadPath(t *testing.T) {
	if _, err := Start(Config{CPU: filepath.Join(t.TempDir(), "no", "such", "cpu.out")}); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
