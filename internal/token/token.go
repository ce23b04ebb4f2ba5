// Package token defines the lexeme records produced by the scanner.
package token

import "github.com/nerd-lang/nerd/internal/atom"

// Kind classifies a lexeme.
type Kind int

const (
	Number Kind = iota
	Character
	String
	Symbol

	// Reserved words.
	Nil
	Yes
	No
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Character:
		return "character"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	case Nil:
		return "nil"
	case Yes:
		return "yes"
	case No:
		return "no"
	}
	return "invalid"
}

// Lexeme is one recognized unit of source text. Lexemes are immutable
// once produced and live for the duration of one run.
//
// Start and End delimit the byte span in the original source. For
// String lexemes the span covers the raw content between the quotes,
// with escape sequences still undecoded; decoding happens when the
// reader constructs the string object.
type Lexeme struct {
	Start, End int
	Line       int // 1-based
	Kind       Kind

	// Value is the pre-resolved literal for lexemes the scanner can
	// resolve immediately (Number, Character). It is the nil atom for
	// everything the reader resolves later.
	Value atom.Atom
}

// Text returns the lexeme's span of the source it was scanned from.
func (l Lexeme) Text(source []byte) []byte {
	return source[l.Start:l.End]
}
