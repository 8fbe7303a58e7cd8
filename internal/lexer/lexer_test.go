package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"analex/internal/diag"
	"analex/internal/lexer"
	"analex/internal/session"
	"analex/internal/source"
	"analex/internal/testkit"
	"analex/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, line uint32, msg string, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev, Code: code, Message: msg, Primary: primary, Line: line, Fixes: fixes,
	})
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.String())
	}
	return out
}

func lex(t *testing.T, input string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.prg", []byte(input)))
	rep := &testReporter{}
	toks := lexer.New(f, lexer.Options{Reporter: rep}).All()
	if err := testkit.CheckTokenInvariants(toks, f); err != nil {
		t.Fatalf("invariants broken for %q: %v", input, err)
	}
	return toks, rep
}

func kinds(toks []token.Token) string {
	parts := make([]string, len(toks))
	for i, tok := range toks {
		parts[i] = fmt.Sprintf("%s(%s)", tok.Kind, tok.Text)
	}
	return strings.Join(parts, " ")
}

func TestTokenSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"keywords", "programa int read printf end",
			"ReservedWord(programa) ReservedWord(int) ReservedWord(read) ReservedWord(printf) ReservedWord(end)"},
		{"keyword prefix is identifier", "integer ending",
			"Identifier(integer) Identifier(ending)"},
		{"case sensitive keywords", "Programa",
			"Identifier(Programa)"},
		{"symbols", ";:,.=(){}+-*/",
			"Symbol(;) Symbol(:) Symbol(,) Symbol(.) Symbol(=) Symbol(() Symbol()) Symbol({) Symbol(}) Symbol(+) Symbol(-) Symbol(*) Symbol(/)"},
		{"assignment", "x = 42;",
			"Identifier(x) Symbol(=) Number(42) Symbol(;)"},
		{"string keeps spaces", `printf("la suma es");`,
			`ReservedWord(printf) Symbol(() String("la suma es") Symbol()) Symbol(;)`},
		{"unterminated string", `"ab`,
			`Unknown(") Identifier(ab)`},
		{"digits glued to letters", "1int",
			"Unknown(1) Unknown(i) Unknown(n) Unknown(t)"},
		{"number then symbol", "12+3",
			"Number(12) Symbol(+) Number(3)"},
		{"non ascii letter glues a word", "añb",
			"Unknown(a) Unknown(ñ) Unknown(b)"},
		{"unknown characters", "#@",
			"Unknown(#) Unknown(@)"},
		{"underscore identifiers", "_tmp x_1",
			"Identifier(_tmp) Identifier(x_1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, _ := lex(t, tt.input)
			if got := kinds(toks); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestVariablePromotion(t *testing.T) {
	toks, rep := lex(t, "int a; a = a;")
	var names []token.Kind
	for _, tok := range toks {
		if tok.Text == "a" {
			names = append(names, tok.Kind)
		}
	}
	want := []token.Kind{token.Identifier, token.Variable, token.Variable}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("occurrences of a = %v, want %v", names, want)
	}
	if len(rep.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.messages())
	}
}

func TestUnknownCharacter(t *testing.T) {
	toks, rep := lex(t, "a\n#")
	if len(toks) != 2 || toks[1].Kind != token.Unknown || toks[1].Line != 2 {
		t.Fatalf("tokens = %s", kinds(toks))
	}
	if got := rep.messages(); len(got) != 1 || got[0] != "Line 2: invalid token '#'" {
		t.Errorf("diagnostics = %v", got)
	}
	if rep.diagnostics[0].Code != diag.LexInvalidToken {
		t.Errorf("code = %v", rep.diagnostics[0].Code)
	}
}

func TestSumIsAlwaysFlagged(t *testing.T) {
	toks, rep := lex(t, "sum = sum + 1;")
	var flagged int
	for _, tok := range toks {
		if tok.Text != "sum" {
			continue
		}
		flagged++
		if tok.Suggestion != "suma" || tok.Kind != token.Identifier || !tok.Invalid() {
			t.Errorf("sum token = %+v", tok)
		}
	}
	if flagged != 2 {
		t.Fatalf("saw %d sum tokens", flagged)
	}
	want := []string{
		"Line 1: expected 'suma' instead of 'sum'",
		"Line 1: expected 'suma' instead of 'sum'",
	}
	if fmt.Sprint(rep.messages()) != fmt.Sprint(want) {
		t.Errorf("diagnostics = %v", rep.messages())
	}
	fix := rep.diagnostics[0].Fixes
	if len(fix) != 1 || fix[0].Edits[0].NewText != "suma" || fix[0].Edits[0].OldText != "sum" {
		t.Errorf("fix = %+v", fix)
	}
}

func TestMisspelledKeywordSuggestion(t *testing.T) {
	toks, rep := lex(t, "prinft(x);\nprinft(x);")
	if toks[0].Suggestion != "printf" || toks[0].Kind != token.Identifier {
		t.Errorf("first token = %+v", toks[0])
	}
	// not registered: the second occurrence is flagged again, not promoted
	if toks[5].Text != "prinft" || toks[5].Kind != token.Identifier || !toks[5].Invalid() {
		t.Errorf("second occurrence = %+v", toks[5])
	}
	if len(rep.diagnostics) != 2 || rep.diagnostics[0].Code != diag.LexInvalidIdent {
		t.Errorf("diagnostics = %v", rep.messages())
	}
}

func TestSharedRegistry(t *testing.T) {
	s := session.New()
	fs := source.NewFileSet()

	first := fs.Get(fs.AddVirtual("one.prg", []byte("int total;")))
	run := s.Begin()
	lexer.New(first, lexer.Options{Registry: run}).All()
	run.End()

	second := fs.Get(fs.AddVirtual("two.prg", []byte("total = 1;")))
	run = s.Begin()
	toks := lexer.New(second, lexer.Options{Registry: run}).All()
	counts := run.Counts()
	run.End()

	if toks[0].Kind != token.Variable {
		t.Errorf("name from earlier submission = %s, want Variable", toks[0].Kind)
	}
	if counts[token.Variable] != 1 || counts[token.Number] != 1 || counts[token.Symbol] != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestEmptyAndBlankInput(t *testing.T) {
	for _, in := range []string{"", "\n\n", "   \t\n  "} {
		toks, rep := lex(t, in)
		if len(toks) != 0 || len(rep.diagnostics) != 0 {
			t.Errorf("%q: tokens=%s diagnostics=%v", in, kinds(toks), rep.messages())
		}
	}
}

func TestScanCoversNonSpaceInput(t *testing.T) {
	inputs := []string{
		"programa\nint a, b;\nread a;\nprintf(\"la suma es\");\nend\n",
		"¿qué? ™ x==y ;; \"\" 007",
		"{(}\n\t)(",
	}
	for _, in := range inputs {
		toks, _ := lex(t, in) // lex runs CheckTokenInvariants
		var n int
		for _, tok := range toks {
			n += len(tok.Text)
		}
		if n == 0 {
			t.Errorf("%q produced no text", in)
		}
	}
}
