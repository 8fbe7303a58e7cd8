package checks

import (
	"fmt"

	"analex/internal/diag"
	"analex/internal/source"
)

// Balance matches '(' ')' and '{' '}' across the whole text with one
// stack.
//
// A closer with an empty stack reports the closer. A closer that does not
// match the top opener drops that opener and reports it; the closer itself
// is consumed. Openers left at the end are reported LIFO on the line they
// were opened.
type Balance struct{}

func (Balance) Name() string { return "balance" }

type opener struct {
	ch   byte
	line uint32
	span source.Span
}

var closerOf = map[byte]byte{'(': ')', '{': '}'}

func (Balance) Check(_ *source.File, lines []source.Line, r Reporter) {
	var stack []opener
	for _, ln := range lines {
		for i := 0; i < len(ln.Text); i++ {
			ch := ln.Text[i]
			switch ch {
			case '(', '{':
				stack = append(stack, opener{ch: ch, line: ln.Num, span: sub(ln, i, i+1)})
			case ')', '}':
				sp := sub(ln, i, i+1)
				if len(stack) == 0 {
					r.Finding(diag.BalanceMissingOpen, sp, ln.Num, fmt.Sprintf("missing opening of %c", ch))
					continue
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if closerOf[top.ch] != ch {
					r.Finding(diag.BalanceMissingOpen, sp, ln.Num, fmt.Sprintf("missing opening of %c", top.ch))
				}
			}
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r.Finding(diag.BalanceMissingClose, top.span, top.line, fmt.Sprintf("missing closing of %c", top.ch))
	}
}
