package token

const (
	KwPrograma = "programa"
	KwInt      = "int"
	KwRead     = "read"
	KwPrintf   = "printf"
	KwEnd      = "end"
)

// ReservedWords are the keywords in the order the pattern table tries them.
var ReservedWords = []string{KwPrograma, KwInt, KwRead, KwPrintf, KwEnd}

// Symbols are the single-character symbols the lexer accepts.
const Symbols = ";:,.=(){}+-*/"

// Vocabulary is the suggestion vocabulary in tie-breaking order.
// '.' is a legal symbol but was never part of the suggestion list.
var Vocabulary = []string{
	"programa", "int", "read", "printf", "end",
	";", ":", ",", "=", "(", ")", "{", "}", "+", "-", "*", "/",
}

// IsReserved reports whether ident is one of the reserved words.
// Ключевые слова регистрозависимые.
func IsReserved(ident string) bool {
	for _, w := range ReservedWords {
		if w == ident {
			return true
		}
	}
	return false
}

// IsVocabulary reports whether s is a reserved word or a suggestible symbol.
func IsVocabulary(s string) bool {
	for _, w := range Vocabulary {
		if w == s {
			return true
		}
	}
	return false
}

// IsSymbol reports whether r is one of the accepted symbol characters.
func IsSymbol(r rune) bool {
	for _, s := range Symbols {
		if s == r {
			return true
		}
	}
	return false
}
