package driver_test

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"

	"analex/internal/diag"
	"analex/internal/driver"
	"analex/internal/session"
	"analex/internal/testkit"
	"analex/internal/token"
)

const program = `programa
int a, b;
read a;
printf("la suma es");
end
`

func messages(ds []diag.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.String())
	}
	return out
}

func TestEndToEnd(t *testing.T) {
	res := driver.AnalyzeText(context.Background(), nil, "prog.txt", program)
	if err := testkit.CheckTokenInvariants(res.Tokens, res.File); err != nil {
		t.Fatal(err)
	}

	want := []struct {
		text string
		kind token.Kind
	}{
		{"programa", token.ReservedWord},
		{"int", token.ReservedWord}, {"a", token.Identifier}, {",", token.Symbol}, {"b", token.Identifier}, {";", token.Symbol},
		{"read", token.ReservedWord}, {"a", token.Variable}, {";", token.Symbol},
		{"printf", token.ReservedWord}, {"(", token.Symbol}, {`"la suma es"`, token.String}, {")", token.Symbol}, {";", token.Symbol},
		{"end", token.ReservedWord},
	}
	if len(res.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(res.Tokens), len(want))
	}
	for i, w := range want {
		if got := res.Tokens[i]; got.Text != w.text || got.Kind != w.kind {
			t.Errorf("token %d = %s(%q), want %s(%q)", i, got.Kind, got.Text, w.kind, w.text)
		}
	}
	if len(res.Structural()) != 0 {
		t.Errorf("structural diagnostics: %v", messages(res.Structural()))
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics: %v", messages(res.Diagnostics))
	}

	wantCounts := map[token.Kind]int{
		token.ReservedWord: 5, token.Identifier: 2, token.Variable: 1,
		token.Number: 0, token.String: 1, token.Symbol: 6,
	}
	for k, n := range wantCounts {
		if res.Counts[k] != n {
			t.Errorf("count %s = %d, want %d", k, res.Counts[k], n)
		}
	}
	if res.Counts[token.Unknown] != 0 {
		t.Error("Unknown must never be counted")
	}
}

func TestCountsMatchTokens(t *testing.T) {
	res := driver.AnalyzeText(context.Background(), nil, "x", "x = 1 # y;\nsum = x + \"s\";")
	tally := session.NewCounts()
	for _, tok := range res.Tokens {
		tally.Add(tok.Kind)
	}
	if !reflect.DeepEqual(tally, res.Counts) {
		t.Errorf("counts %v, tokens say %v", res.Counts, tally)
	}
}

func TestVariablePromotion(t *testing.T) {
	res := driver.AnalyzeText(context.Background(), nil, "p", "int a; a = a;")
	var got []token.Kind
	for _, tok := range res.Tokens {
		if tok.Text == "a" {
			got = append(got, tok.Kind)
		}
	}
	want := []token.Kind{token.Identifier, token.Variable, token.Variable}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("kinds of a = %v, want %v", got, want)
	}
}

func TestBalanceProperty(t *testing.T) {
	ctx := context.Background()
	if res := driver.AnalyzeText(ctx, nil, "p", "(){}"); len(res.Structural()) != 0 {
		t.Errorf("(){}: %v", messages(res.Structural()))
	}
	res := driver.AnalyzeText(ctx, nil, "p", "{(}")
	var open, closeBrace int
	for _, d := range res.Structural() {
		switch d.Message {
		case "missing opening of (":
			open++
		case "missing closing of {":
			closeBrace++
		}
	}
	if open != 1 || closeBrace != 1 {
		t.Errorf("{(}: %v", messages(res.Structural()))
	}
}

func TestTerminatorProperty(t *testing.T) {
	has := func(text string) bool {
		for _, d := range driver.AnalyzeText(context.Background(), nil, "p", text).Diagnostics {
			if d.Code == diag.TerminatorMissing {
				return true
			}
		}
		return false
	}
	if !has("int a, b") {
		t.Error("int a, b: terminator not flagged")
	}
	if has("int a, b;") {
		t.Error("int a, b;: terminator flagged")
	}
}

func TestSumSuggestion(t *testing.T) {
	for _, text := range []string{"sum", "x = sum;", "read sum;"} {
		res := driver.AnalyzeText(context.Background(), nil, "p", text)
		found := false
		for _, tok := range res.Tokens {
			if tok.Text == "sum" && tok.Suggestion == "suma" {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: no suma suggestion", text)
		}
	}
}

func TestDiagnosticOrder(t *testing.T) {
	res := driver.AnalyzeText(context.Background(), nil, "p", "x # y z\n(z);\nint a b;")
	var kinds []string
	for _, d := range res.Diagnostics {
		kinds = append(kinds, d.Code.ID())
	}
	// lexical first, then balance, comma, operator, terminator, declaration, call
	want := []string{"LEX1001", "STR2201", "STR2301", "STR2401", "STR2501"}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("order = %v (%v), want %v", kinds, messages(res.Diagnostics), want)
	}
}

func TestIdempotentUnderReset(t *testing.T) {
	ctx := context.Background()
	sess := session.New()
	text := "int a;\na = b + prinft;\n"

	sess.Reset()
	first := driver.AnalyzeText(ctx, sess, "p", text)
	sess.Reset()
	second := driver.AnalyzeText(ctx, sess, "p", text)

	if !reflect.DeepEqual(messages(first.Diagnostics), messages(second.Diagnostics)) {
		t.Errorf("diagnostics differ:\n%v\n%v", messages(first.Diagnostics), messages(second.Diagnostics))
	}
	if !reflect.DeepEqual(first.Counts, second.Counts) {
		t.Errorf("counts differ: %v vs %v", first.Counts, second.Counts)
	}
	for i := range first.Tokens {
		a, b := first.Tokens[i], second.Tokens[i]
		if a.Kind != b.Kind || a.Text != b.Text || a.Suggestion != b.Suggestion {
			t.Errorf("token %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestSessionCarriesRegistry(t *testing.T) {
	ctx := context.Background()
	sess := session.New()
	driver.AnalyzeText(ctx, sess, "one", "int total;")
	res := driver.AnalyzeText(ctx, sess, "two", "total = 1;")
	if res.Tokens[0].Kind != token.Variable {
		t.Errorf("total = %s, want Variable", res.Tokens[0].Kind)
	}
	if got := sess.Counts()[token.ReservedWord]; got != 1 {
		t.Errorf("cumulative reserved words = %d", got)
	}

	// без сессии каждый вызов начинает с нуля
	res = driver.AnalyzeText(ctx, nil, "three", "total = 1;")
	if res.Tokens[0].Kind != token.Identifier {
		t.Errorf("fresh analysis saw a registered name")
	}
}

func TestConcurrentAnalysesSerialize(t *testing.T) {
	ctx := context.Background()
	sess := session.New()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			driver.AnalyzeText(ctx, sess, "p", "shared;")
		}()
	}
	wg.Wait()
	c := sess.Counts()
	if c[token.Identifier] != 1 || c[token.Variable] != 15 || sess.Runs() != 16 {
		t.Errorf("counts = %v runs = %d", c, sess.Runs())
	}
}

func TestOptions(t *testing.T) {
	ctx := context.Background()
	fsText := "a b\nc d\ne f\n"
	res := driver.AnalyzeText(ctx, nil, "p", fsText)
	if len(res.Diagnostics) != 6 {
		t.Fatalf("diagnostics = %v", messages(res.Diagnostics))
	}

	limited := analyzeWith(t, fsText, driver.Options{MaxDiagnostics: 2, Timings: true})
	if len(limited.Diagnostics) != 2 || limited.Dropped != 4 {
		t.Errorf("limit ignored: %v (dropped %d)", messages(limited.Diagnostics), limited.Dropped)
	}
	if limited.Timing == nil || len(limited.Timing.Phases) != 7 {
		t.Errorf("timing = %+v", limited.Timing)
	}

	// высокий порог отключает подсказку для "prinft"
	strict := analyzeWith(t, "prinft;", driver.Options{Threshold: 0.95})
	if strict.Tokens[0].Invalid() {
		t.Errorf("threshold ignored: %+v", strict.Tokens[0])
	}
}

func analyzeWith(t *testing.T, text string, opts driver.Options) *driver.Result {
	t.Helper()
	res := driver.AnalyzeText(context.Background(), nil, "p", text)
	return driver.AnalyzeWithOptions(context.Background(), nil, res.File, opts)
}

func TestLexicalSplit(t *testing.T) {
	res := driver.AnalyzeText(context.Background(), nil, "p", "@;")
	if len(res.Lexical()) != 1 || !strings.Contains(res.Lexical()[0].Message, "'@'") {
		t.Errorf("lexical = %v", messages(res.Lexical()))
	}
	if !res.HasDiagnostics() {
		t.Error("HasDiagnostics = false")
	}
}

func TestCarriageReturnEndsLine(t *testing.T) {
	res := driver.AnalyzeText(context.Background(), nil, "p", "int a\rint b;")
	for _, tok := range res.Tokens {
		if tok.Text == "b" && tok.Line != 2 {
			t.Errorf("b on line %d, want 2", tok.Line)
		}
	}
	type finding struct {
		code diag.Code
		line uint32
	}
	var got []finding
	for _, d := range res.Diagnostics {
		got = append(got, finding{d.Code, d.Line})
	}
	want := []finding{{diag.TerminatorMissing, 1}, {diag.DeclarationMalformed, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("diagnostics = %v, want %v", messages(res.Diagnostics), want)
	}
}
