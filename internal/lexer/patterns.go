package lexer

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"analex/internal/token"
)

// Match is the outcome of one pattern at the cursor: the category it
// recognised and how many bytes it consumes.
type Match struct {
	Kind token.Kind
	Len  uint32
}

// Pattern recognises one category anchored at the cursor. It must not move
// the cursor.
type Pattern struct {
	Kind  token.Kind
	Match func(c *Cursor) (uint32, bool)
}

// Table lists the patterns in priority order. The first pattern that matches
// wins, even if a later one would consume more.
var Table = []Pattern{
	{Kind: token.ReservedWord, Match: matchReserved},
	{Kind: token.Identifier, Match: matchIdent},
	{Kind: token.Number, Match: matchNumber},
	{Kind: token.String, Match: matchString},
	{Kind: token.Symbol, Match: matchSymbol},
}

// MatchAt tries the table at the cursor.
func MatchAt(c *Cursor) (Match, bool) {
	for _, p := range Table {
		if n, ok := p.Match(c); ok && n > 0 {
			return Match{Kind: p.Kind, Len: n}, true
		}
	}
	return Match{}, false
}

// matchReserved tries the keywords in table order; a keyword that is the
// prefix of a longer word does not match.
func matchReserved(c *Cursor) (uint32, bool) {
	if !atWordStart(c) {
		return 0, false
	}
	rest := c.Rest()
	for _, kw := range token.ReservedWords {
		if !bytes.HasPrefix(rest, []byte(kw)) {
			continue
		}
		n := size32(len(kw))
		if boundaryAfter(c, n) {
			return n, true
		}
	}
	return 0, false
}

// matchIdent accepts [A-Za-z_][A-Za-z0-9_]* when the run is not glued to
// another word character (for instance a non-ASCII letter).
func matchIdent(c *Cursor) (uint32, bool) {
	rest := c.Rest()
	if len(rest) == 0 || !isIdentStartByte(rest[0]) || !atWordStart(c) {
		return 0, false
	}
	n := 1
	for n < len(rest) && isIdentContinueByte(rest[n]) {
		n++
	}
	l := size32(n)
	if !boundaryAfter(c, l) {
		return 0, false
	}
	return l, true
}

// matchNumber accepts a run of decimal digits delimited by word boundaries.
func matchNumber(c *Cursor) (uint32, bool) {
	if !atWordStart(c) {
		return 0, false
	}
	rest := c.Rest()
	n := 0
	for n < len(rest) {
		r, sz := utf8.DecodeRune(rest[n:])
		if !unicode.IsDigit(r) {
			break
		}
		n += sz
	}
	if n == 0 {
		return 0, false
	}
	l := size32(n)
	if !boundaryAfter(c, l) {
		return 0, false
	}
	return l, true
}

// matchString accepts "..." with no quote inside; strings never cross lines.
func matchString(c *Cursor) (uint32, bool) {
	rest := c.Rest()
	if len(rest) == 0 || rest[0] != '"' {
		return 0, false
	}
	end := bytes.IndexByte(rest[1:], '"')
	if end < 0 {
		return 0, false
	}
	return size32(end + 2), true
}

func matchSymbol(c *Cursor) (uint32, bool) {
	r, sz := c.Peek()
	if sz == 0 || !token.IsSymbol(r) {
		return 0, false
	}
	return size32(sz), true
}
