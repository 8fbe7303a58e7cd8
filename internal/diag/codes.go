package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInvalidToken    Code = 1001
	LexInvalidIdent    Code = 1002
	LexInvalidReserved Code = 1003

	// Структурные эвристики
	BalanceMissingOpen   Code = 2001
	BalanceMissingClose  Code = 2002
	CommaMissing         Code = 2101
	OperatorMissing      Code = 2201
	TerminatorMissing    Code = 2301
	DeclarationMalformed Code = 2401
	DeclarationBadName   Code = 2402
	CallMalformed        Code = 2501

	// Ввод-вывод
	IOLoadFile Code = 3001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInvalidToken:      "Invalid token",
	LexInvalidIdent:      "Invalid identifier",
	LexInvalidReserved:   "Invalid reserved word",
	BalanceMissingOpen:   "Missing opening delimiter",
	BalanceMissingClose:  "Missing closing delimiter",
	CommaMissing:         "Missing comma",
	OperatorMissing:      "Missing operator",
	TerminatorMissing:    "Missing terminator",
	DeclarationMalformed: "Malformed declaration",
	DeclarationBadName:   "Invalid declared name",
	CallMalformed:        "Malformed call",
	IOLoadFile:           "Cannot load file",
}

// ID returns the stable short form, e.g. LEX1001 or STR2301.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsLexical reports whether the code belongs to the lexer.
func (c Code) IsLexical() bool {
	return c >= 1000 && c < 2000
}

// IsStructural reports whether the code comes from a heuristic checker.
func (c Code) IsStructural() bool {
	return c >= 2000 && c < 3000
}
