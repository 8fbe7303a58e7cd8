package observ_test

import (
	"strings"
	"testing"

	"analex/internal/observ"
)

func TestTimerPhases(t *testing.T) {
	tm := observ.NewTimer()
	lex := tm.Begin("lex")
	tm.End(lex, "tokens=3")
	chk := tm.Begin("check:balance")
	tm.End(chk, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "lex" || r.Phases[0].Note != "tokens=3" {
		t.Fatalf("report = %+v", r)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f below a phase %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}
	s := tm.Summary()
	for _, want := range []string{"timings:", "lex", "// tokens=3", "check:balance", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary lacks %q:\n%s", want, s)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *observ.Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	if idx != -1 || len(tm.Report().Phases) != 0 {
		t.Error("nil timer must record nothing")
	}
}
