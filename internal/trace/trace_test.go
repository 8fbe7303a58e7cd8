package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"analex/internal/trace"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level trace.Level
		kind  trace.Kind
		scope trace.Scope
		want  bool
	}{
		{trace.LevelOff, trace.KindSpanBegin, trace.ScopeDriver, false},
		{trace.LevelOff, trace.KindFailure, trace.ScopeDriver, false},
		{trace.LevelError, trace.KindSpanBegin, trace.ScopeDriver, false},
		{trace.LevelError, trace.KindFailure, trace.ScopeLine, true},
		{trace.LevelPhase, trace.KindSpanEnd, trace.ScopePass, true},
		{trace.LevelPhase, trace.KindPoint, trace.ScopeFile, false},
		{trace.LevelDetail, trace.KindPoint, trace.ScopeFile, true},
		{trace.LevelDetail, trace.KindPoint, trace.ScopeLine, false},
		{trace.LevelDebug, trace.KindPoint, trace.ScopeLine, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.kind, tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s, %s) = %v, want %v", tt.level, tt.kind, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		if _, err := trace.ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q): %v", s, err)
		}
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatNDJSON)

	root := trace.Begin(tr, trace.ScopeDriver, "analyze", 0)
	pass := trace.Begin(tr, trace.ScopePass, "lex", root.ID())
	pass.WithExtra("tokens", "7").End("")
	trace.Begin(tr, trace.ScopeFile, "file:skipped", root.ID()).End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "lex" || ev.ParentID != root.ID() || ev.Extra["tokens"] != "7" {
		t.Errorf("pass end event = %+v", ev)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	trace.Point(tr, trace.ScopeFile, "cache", "hit", 0)
	if out := buf.String(); !strings.Contains(out, "• cache (hit)") {
		t.Errorf("text output = %q", out)
	}
}

func TestContext(t *testing.T) {
	if trace.FromContext(context.Background()).Enabled() {
		t.Fatal("background context must carry the nop tracer")
	}
	tr := trace.NewStreamTracer(&bytes.Buffer{}, trace.LevelPhase, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	if trace.FromContext(ctx) != tr {
		t.Fatal("tracer lost in context")
	}
	span := trace.Begin(tr, trace.ScopeDriver, "root", 0)
	ctx = trace.WithParent(ctx, span)
	if trace.ParentFrom(ctx) != span.ID() || span.ID() == 0 {
		t.Errorf("parent = %d, span = %d", trace.ParentFrom(ctx), span.ID())
	}
}

func TestNopSpan(t *testing.T) {
	span := trace.Begin(trace.Nop, trace.ScopeDriver, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Error("nop span must be inert")
	}
}

func TestFailurePassesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelError, trace.FormatText)
	trace.Begin(tr, trace.ScopeDriver, "analyze", 0).End("")
	trace.Point(tr, trace.ScopeFile, "cache", "hit", 0)
	trace.Failure(tr, trace.ScopeFile, "cache", nil, 0)
	trace.Failure(tr, trace.ScopeFile, "cache", errors.New("disk full"), 0)

	out := buf.String()
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, "✗ cache (disk full)") {
		t.Errorf("error level output = %q", out)
	}
}
