package main

import (
	"bytes"
	"context"
	"os"
	"regexp"
	"strings"
	"testing"

	"analex/internal/project"
)

func runSessionText(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	s := settings{config: project.Defaults(), color: "off"}
	cfg := sessionConfig{
		opts:     s.analyzeOptions(),
		pretty:   s.prettyOpts(os.Stdout),
		useColor: false,
	}
	if err := runSession(context.Background(), strings.NewReader(input), &out, cfg); err != nil {
		t.Fatalf("runSession: %v", err)
	}
	return out.String()
}

func TestSessionRegistryPersists(t *testing.T) {
	out := runSessionText(t, "int a;\n.\na = a;\n.\n:counts\n")
	// a объявлена в первой отправке, во второй она уже переменная
	if !regexp.MustCompile(`(?m)^1\s+a\s+Variable$`).MatchString(out) {
		t.Errorf("second submission should classify a as Variable:\n%s", out)
	}
	if !regexp.MustCompile(`(?m)^Variable\s+2$`).MatchString(out) {
		t.Errorf(":counts should show cumulative variables:\n%s", out)
	}
}

func TestSessionReset(t *testing.T) {
	out := runSessionText(t, "int a;\n.\n:reset\na;\n")
	if !strings.Contains(out, "session reset") {
		t.Fatalf("missing reset acknowledgement:\n%s", out)
	}
	// хвост без "." отправляется в конце ввода
	if !regexp.MustCompile(`(?m)^1\s+a\s+Identificador$`).MatchString(out) {
		t.Errorf("after reset a is unknown again:\n%s", out)
	}
}

func TestSessionQuit(t *testing.T) {
	out := runSessionText(t, ":quit\nint a;\n.\n")
	if out != "" {
		t.Errorf("nothing should run after :quit, got:\n%s", out)
	}
}

func TestSessionDiagnostics(t *testing.T) {
	out := runSessionText(t, "int a\n.\n")
	if !strings.Contains(out, "STR2301") {
		t.Errorf("expected terminator diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "help: insert ';'") {
		t.Errorf("expected fix hint:\n%s", out)
	}
}

func TestSessionLongLine(t *testing.T) {
	name := strings.Repeat("a", 70000)
	out := runSessionText(t, "int "+name+";\n.\n")
	if !strings.Contains(out, "Identificador") {
		t.Errorf("long declaration was not analyzed:\n%.200s", out)
	}
	if strings.Contains(out, "STR") {
		t.Errorf("unexpected structural finding:\n%.200s", out)
	}
}

func TestSessionLastLineWithoutNewline(t *testing.T) {
	out := runSessionText(t, "int a;\r\n.\r\nint b;")
	if !regexp.MustCompile(`(?m)^1\s+b\s+Identificador$`).MatchString(out) {
		t.Errorf("trailing text must be submitted at end of input:\n%s", out)
	}
}
