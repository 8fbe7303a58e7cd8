package driver

import (
	"context"
	"fmt"

	"analex/internal/checks"
	"analex/internal/diag"
	"analex/internal/lexer"
	"analex/internal/observ"
	"analex/internal/session"
	"analex/internal/source"
	"analex/internal/suggest"
	"analex/internal/token"
	"analex/internal/trace"
)

// Result is everything one analysis produces.
type Result struct {
	File        *source.File
	Tokens      []token.Token
	Diagnostics []diag.Diagnostic // lexical in scan order, then each checker in turn
	Counts      session.Counts    // this run only; the session keeps the running total
	Timing      *observ.Report    // nil unless Options.Timings
	Cached      bool
	Dropped     int // diagnostics cut by Options.MaxDiagnostics
}

// HasDiagnostics reports whether anything was found.
func (r *Result) HasDiagnostics() bool {
	return r != nil && len(r.Diagnostics) > 0
}

// Lexical returns the diagnostics raised while scanning.
func (r *Result) Lexical() []diag.Diagnostic {
	return r.filter(diag.Code.IsLexical)
}

// Structural returns the heuristic checker diagnostics.
func (r *Result) Structural() []diag.Diagnostic {
	return r.filter(diag.Code.IsStructural)
}

func (r *Result) filter(keep func(diag.Code) bool) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		if keep(d.Code) {
			out = append(out, d)
		}
	}
	return out
}

// Options tune a single analysis.
type Options struct {
	Threshold      float64 // suggestion cutoff; out of (0,1] means suggest.DefaultThreshold
	MaxDiagnostics int     // <= 0: no limit
	Timings        bool
}

// Analyze runs the lexer and every checker over file with default options.
// A nil sess analyses in a fresh context that nothing else sees.
func Analyze(ctx context.Context, sess *session.Session, file *source.File) *Result {
	return AnalyzeWithOptions(ctx, sess, file, Options{})
}

// AnalyzeText registers text as a virtual file and analyses it.
func AnalyzeText(ctx context.Context, sess *session.Session, name, text string) *Result {
	fs := source.NewFileSet()
	return Analyze(ctx, sess, fs.Get(fs.AddVirtual(name, []byte(text))))
}

// AnalyzeWithOptions is Analyze with explicit options. The session is held
// for the whole run, so concurrent calls on one session are serialised.
func AnalyzeWithOptions(ctx context.Context, sess *session.Session, file *source.File, opts Options) *Result {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "analyze", trace.ParentFrom(ctx))
	root.WithExtra("file", file.Path)

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	if sess == nil {
		sess = session.New()
	}
	run := sess.Begin()
	defer run.End()

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	lexIdx := timer.Begin("lex")
	lexSpan := trace.Begin(tracer, trace.ScopePass, "lex", root.ID())
	lx := lexer.New(file, lexer.Options{
		Reporter: reporter,
		Registry: run,
		Suggest:  suggest.New(opts.Threshold),
	})
	tokens := lx.All()
	lexNote := fmt.Sprintf("tokens=%d diags=%d", len(tokens), bag.Len())
	lexSpan.End(lexNote)
	timer.End(lexIdx, lexNote)

	lines := file.Lines()
	checkReporter := checks.NewReporter(reporter)
	for _, c := range checks.All() {
		name := "check:" + c.Name()
		before := bag.Len()
		idx := timer.Begin(name)
		span := trace.Begin(tracer, trace.ScopePass, name, root.ID())
		c.Check(file, lines, checkReporter)
		note := fmt.Sprintf("diags=%d", bag.Len()-before)
		span.End(note)
		timer.End(idx, note)
	}

	res := &Result{
		File:        file,
		Tokens:      tokens,
		Diagnostics: bag.Items(),
		Counts:      run.Counts(),
		Dropped:     bag.Dropped(),
	}
	if timer != nil {
		report := timer.Report()
		res.Timing = &report
	}
	for _, d := range res.Diagnostics {
		trace.Point(tracer, trace.ScopeLine, d.Code.ID(), d.String(), root.ID())
	}
	root.End(fmt.Sprintf("tokens=%d diags=%d", len(res.Tokens), len(res.Diagnostics)))
	return res
}
