package checks_test

import (
	"fmt"
	"reflect"
	"testing"

	"analex/internal/checks"
	"analex/internal/diag"
	"analex/internal/source"
)

type finding struct {
	code  diag.Code
	span  source.Span
	line  uint32
	msg   string
	fixes []diag.Fix
}

type collector struct{ items []finding }

func (c *collector) Finding(code diag.Code, sp source.Span, line uint32, msg string, fixes ...diag.Fix) {
	c.items = append(c.items, finding{code: code, span: sp, line: line, msg: msg, fixes: fixes})
}

func (c *collector) messages() []string {
	out := []string{}
	for _, f := range c.items {
		out = append(out, fmt.Sprintf("Line %d: %s", f.line, f.msg))
	}
	return out
}

func run(ch checks.Checker, text string) (*collector, *source.File) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.prg", []byte(text)))
	c := &collector{}
	ch.Check(f, f.Lines(), c)
	return c, f
}

type checkCase struct {
	name string
	text string
	want []string
}

func runCases(t *testing.T, ch checks.Checker, cases []checkCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := run(ch, tc.text)
			want := tc.want
			if want == nil {
				want = []string{}
			}
			if got := c.messages(); !reflect.DeepEqual(got, want) {
				t.Errorf("%s(%q)\n got  %q\n want %q", ch.Name(), tc.text, got, want)
			}
		})
	}
}

func TestOrder(t *testing.T) {
	want := []string{"balance", "comma", "operator", "terminator", "declaration", "call"}
	if got := checks.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestBalance(t *testing.T) {
	runCases(t, checks.Balance{}, []checkCase{
		{"balanced", "(){}", nil},
		{"nested across lines", "programa {\n  read(a);\n}", nil},
		{"crossed", "{(}", []string{"Line 1: missing opening of (", "Line 1: missing closing of {"}},
		{"stray closer", "a);", []string{"Line 1: missing opening of )"}},
		{"leftovers are lifo", "{\nx(\n", []string{"Line 2: missing closing of (", "Line 1: missing closing of {"}},
		{"closer after mismatch", "(}\n)", []string{"Line 1: missing opening of (", "Line 2: missing opening of )"}},
	})
}

func TestBalanceSpans(t *testing.T) {
	c, f := run(checks.Balance{}, "ab\n  (")
	if len(c.items) != 1 {
		t.Fatalf("findings = %v", c.messages())
	}
	if got := f.Text(c.items[0].span); got != "(" {
		t.Errorf("span text = %q", got)
	}
	if c.items[0].code != diag.BalanceMissingClose {
		t.Errorf("code = %v", c.items[0].code)
	}
}

func TestComma(t *testing.T) {
	runCases(t, checks.Comma{}, []checkCase{
		{"well formed", "int a, b;", nil},
		{"trailing comma", "int a,;", []string{"Line 1: missing comma between variables"}},
		{"blank slot", "int a, , b;", []string{"Line 1: missing comma between variables"}},
		{"once per line", "int a,,,;", []string{"Line 1: missing comma between variables"}},
		{"no int on line", "x = a,;", nil},
		{"printf counts as int", "printf(a,);", nil},
		{"last int wins", "int a,; int b;", nil},
		{"second line", "int a;\nint b,;", []string{"Line 2: missing comma between variables"}},
	})
}

func TestOperator(t *testing.T) {
	runCases(t, checks.Operator{}, []checkCase{
		{"two names", "a b;", []string{"Line 1: missing operator between 'a b'"}},
		{"first pair only", "x = b c + d e;", []string{"Line 1: missing operator between 'b c'"}},
		{"keeps inner spacing", "x1   y2;", []string{"Line 1: missing operator between 'x1   y2'"}},
		{"reserved word on line", "int a b;", nil},
		{"reserved substring", "sprint a b;", nil},
		{"string on line", `x "a b";`, nil},
		{"operators present", "a = b + c;", nil},
		{"unicode letters glue words", "añ b;", nil},
		{"digits first", "1a b;", nil},
	})
}

func TestTerminator(t *testing.T) {
	runCases(t, checks.Terminator{}, []checkCase{
		{"missing", "int a, b", []string{"Line 1: missing ';' at end of line"}},
		{"present", "int a, b;", nil},
		{"blank lines", "\n   \n\t", nil},
		{"block open", "programa {", nil},
		{"block close", "  }", nil},
		{"ends with close", "x = 1 }", nil},
		{"bare keywords", "programa\nint a;\nend", nil},
		{"indented keyword", "  end  ", nil},
		{"keyword with more", "end x", []string{"Line 1: missing ';' at end of line"}},
		{"third line", "a;\nb;\nc", []string{"Line 3: missing ';' at end of line"}},
	})
}

func TestTerminatorFix(t *testing.T) {
	c, f := run(checks.Terminator{}, "  read a  \n")
	if len(c.items) != 1 || len(c.items[0].fixes) != 1 {
		t.Fatalf("findings = %+v", c.items)
	}
	edit := c.items[0].fixes[0].Edits[0]
	if edit.NewText != ";" || !edit.Span.Empty() || edit.Span.Start != 8 {
		t.Errorf("edit = %+v", edit)
	}
	if got := f.Text(c.items[0].span); got != "read a" {
		t.Errorf("span text = %q", got)
	}
}

func TestDeclaration(t *testing.T) {
	runCases(t, checks.Declaration{}, []checkCase{
		{"single", "int a;", nil},
		{"list", "  int a , b,c ;", nil},
		{"missing comma", "int a b;", []string{"Line 1: malformed variable declaration or missing ';'"}},
		{"missing terminator", "int a, b", []string{"Line 1: malformed variable declaration or missing ';'"}},
		{"prefix word", "integer = 1;", []string{"Line 1: malformed variable declaration or missing ';'"}},
		{"not a declaration", "a = 1;", nil},
		{"junk after terminator", "int a, b; c d", []string{"Line 1: invalid variable 'b; c d' in declaration or missing comma"}},
		{"doubled terminator", "int a;;", nil},
	})
}

func TestCall(t *testing.T) {
	runCases(t, checks.Call{}, []checkCase{
		{"bare parens", "(x);", []string{"Line 1: malformed function call or string outside a function"}},
		{"space before terminator", "  (x) ;", []string{"Line 1: malformed function call or string outside a function"}},
		{"empty parens", "();", []string{"Line 1: malformed function call or string outside a function"}},
		{"proper call", "read(x);", nil},
		{"string argument", `("la suma es");`, nil},
		{"no terminator", "(x)", nil},
	})
}

func TestNewReporterWritesBag(t *testing.T) {
	bag := diag.NewBag(0)
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.prg", []byte("a b")))
	r := checks.NewReporter(diag.BagReporter{Bag: bag})
	for _, ch := range checks.All() {
		ch.Check(f, f.Lines(), r)
	}
	var got []string
	for _, d := range bag.Items() {
		got = append(got, d.String())
	}
	want := []string{
		"Line 1: missing operator between 'a b'",
		"Line 1: missing ';' at end of line",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	if len(bag.Items()[1].Fixes) != 1 {
		t.Errorf("terminator finding lost its fix")
	}
	if checks.NewReporter(nil) == nil {
		t.Fatal("nil reporter adapter")
	}
}
