package vm

import (
	"github.com/nerd-lang/nerd/internal/atom"
	"github.com/nerd-lang/nerd/internal/lexer"
)

// Run lexes source up front, then reads and evaluates one value per
// token, threading the most recent result forward. origin labels the
// source in diagnostics, e.g. a file name or "<stdin>".
//
// On a lex error the diagnostic is delivered to the output callback
// and Run fails with no result. On a read or evaluate error Run
// returns immediately; the returned value is the last attempted value,
// not the last fully successful one.
func (vm *VM) Run(origin string, source []byte) (atom.Atom, error) {
	tokens, err := lexer.Tokenize(origin, source)
	if err != nil {
		vm.reportf("%s", err)
		return atom.Nil(), err
	}

	result := atom.Nil()
	cursor := 0
	for cursor < len(tokens) {
		value, err := vm.readNext(source, tokens, &cursor)
		result = value
		if err != nil {
			return result, err
		}
		result, err = vm.Evaluate(value)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}
