package vm

import (
	"github.com/nerd-lang/nerd/internal/atom"
	"github.com/nerd-lang/nerd/internal/lexer"
)

// ToString converts a value to text. Normal mode renders the raw
// display form; REPL and Code modes render a re-readable form with
// strings quoted and characters in literal notation. The text is
// composed in a scratch session on the VM's scratch arena.
func (vm *VM) ToString(value atom.Atom, mode StringMode) string {
	vm.scratch.Push()
	start := vm.scratch.Cursor()

	switch value.Kind {
	case atom.KindNil:
		vm.scratch.Format("nil")
	case atom.KindInteger:
		vm.scratch.Format("%d", value.Int)
	case atom.KindBoolean:
		if value.Bool {
			vm.scratch.Format("yes")
		} else {
			vm.scratch.Format("no")
		}
	case atom.KindCharacter:
		if mode == ModeNormal {
			vm.scratch.Append([]byte{value.Char})
		} else {
			vm.scratch.Format("%s", charLiteral(value.Char))
		}
	case atom.KindObject:
		vm.scratch.Format("%s", vm.TypeOf(value.Obj).Format(vm, value, mode))
	default:
		vm.scratch.Format("<invalid atom>")
	}

	text := string(vm.scratch.Bytes(start, vm.scratch.Cursor()))
	vm.scratch.Pop()
	return text
}

// charLiteral renders a character in the lexer's literal notation:
// the named form where one exists, "\c" for printable characters, and
// "\#xNN" otherwise.
func charLiteral(c byte) string {
	if name, ok := lexer.CharName(c); ok {
		return "\\" + name
	}
	if c >= 0x20 && c < 0x7f {
		return string([]byte{'\\', c})
	}
	const hex = "0123456789abcdef"
	return string([]byte{'\\', '#', 'x', hex[c>>4], hex[c&0xf]})
}
