package vm

import (
	"fmt"

	"github.com/nerd-lang/nerd/internal/atom"
	"github.com/nerd-lang/nerd/internal/token"
)

// readNext consumes exactly one token and produces one value. Number
// and character tokens carry their value already; reserved words map
// to their singleton values; string tokens construct a heap string
// from the raw span, which is where escape decoding happens. Anything
// else is a read error.
func (vm *VM) readNext(source []byte, tokens []token.Lexeme, cursor *int) (atom.Atom, error) {
	t := tokens[*cursor]
	*cursor++

	switch t.Kind {
	case token.Number, token.Character:
		return t.Value, nil
	case token.Nil:
		return atom.Nil(), nil
	case token.Yes:
		return atom.Boolean(true), nil
	case token.No:
		return atom.Boolean(false), nil
	case token.String:
		return vm.NewString(t.Text(source))
	}
	return atom.Nil(), fmt.Errorf("%q at line %d: %w", t.Text(source), t.Line, ErrUnexpectedToken)
}
