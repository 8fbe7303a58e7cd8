package lexer

import (
	"unicode"
)

// isWordRune matches the \w class of the pattern table: any Unicode letter,
// decimal digit or underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

// atWordStart reports a word boundary before the cursor.
func atWordStart(c *Cursor) bool {
	prev, ok := c.Prev()
	return !ok || !isWordRune(prev)
}

// boundaryAfter reports a word boundary n bytes ahead of the cursor.
func boundaryAfter(c *Cursor, n uint32) bool {
	next, sz := c.PeekAt(n)
	return sz == 0 || !isWordRune(next)
}
