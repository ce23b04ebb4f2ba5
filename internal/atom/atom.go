// Package atom defines the tagged value type the nerd kernel
// manipulates. Atoms are copied by value everywhere; the Object
// variant is a non-owning reference into a VM's object store.
package atom

// Kind discriminates the variants of an Atom.
type Kind int

const (
	KindNil Kind = iota
	KindInteger
	KindBoolean
	KindCharacter
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindCharacter:
		return "character"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Handle identifies a heap object owned by a VM. Handles are indexes
// into the VM's object store and are never reused within one VM.
type Handle int

// Atom is the unit of data the language manipulates: Nil, a 64-bit
// signed integer, a boolean, an 8-bit character, or a reference to a
// GC-managed heap object. The VM, not the atom, owns the referent of
// an Object atom.
type Atom struct {
	Kind Kind
	Int  int64
	Bool bool
	Char byte
	Obj  Handle
}

// Nil returns the nil atom.
func Nil() Atom {
	return Atom{Kind: KindNil}
}

// Integer returns an integer atom.
func Integer(i int64) Atom {
	return Atom{Kind: KindInteger, Int: i}
}

// Boolean returns a boolean atom.
func Boolean(b bool) Atom {
	return Atom{Kind: KindBoolean, Bool: b}
}

// Character returns a character atom holding one 8-bit code unit.
func Character(c byte) Atom {
	return Atom{Kind: KindCharacter, Char: c}
}

// Object returns an atom referencing the heap object behind h.
func Object(h Handle) Atom {
	return Atom{Kind: KindObject, Obj: h}
}
