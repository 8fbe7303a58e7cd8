package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Unknown marks a single character no pattern accepted.
	Unknown Kind = iota
	// ReservedWord is one of programa, int, read, printf, end.
	ReservedWord
	// Identifier is a name seen for the first time in the session.
	Identifier
	// Variable is a name already registered in the session.
	Variable
	// Number is a run of decimal digits.
	Number
	// String is a double-quoted literal without embedded quotes.
	String
	// Symbol is a single punctuation or operator character.
	Symbol
)

// Counted lists the kinds that appear in category counts, in display order.
var Counted = []Kind{ReservedWord, Identifier, Variable, Number, String, Symbol}

func (k Kind) String() string {
	switch k {
	case ReservedWord:
		return "ReservedWord"
	case Identifier:
		return "Identifier"
	case Variable:
		return "Variable"
	case Number:
		return "Number"
	case String:
		return "String"
	case Symbol:
		return "Symbol"
	default:
		return "Unknown"
	}
}

// Label returns the human-facing category name shown to students.
func (k Kind) Label() string {
	switch k {
	case ReservedWord:
		return "Palabra Reservada"
	case Identifier:
		return "Identificador"
	case Variable:
		return "Variable"
	case Number:
		return "Número"
	case String:
		return "Cadena"
	case Symbol:
		return "Símbolo"
	default:
		return "Desconocido"
	}
}

// IsCounted reports whether the kind contributes to category counts.
func (k Kind) IsCounted() bool {
	return k != Unknown
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Counted {
		if k.String() == s {
			return k, true
		}
	}
	if s == Unknown.String() {
		return Unknown, true
	}
	return Unknown, false
}
