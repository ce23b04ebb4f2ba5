package nerd

import (
	"github.com/nerd-lang/nerd/internal/atom"
	"github.com/nerd-lang/nerd/internal/vm"
)

// marshal converts an interpreter value to its Go counterpart. Script
// strings come back as Go strings, so the result stays valid after
// Close.
func (v *VM) marshal(value atom.Atom) any {
	switch value.Kind {
	case atom.KindNil:
		return nil
	case atom.KindInteger:
		return value.Int
	case atom.KindBoolean:
		return value.Bool
	case atom.KindCharacter:
		return value.Char
	default:
		return v.machine.ToString(value, vm.ModeNormal)
	}
}
