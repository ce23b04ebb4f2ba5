package vm

import (
	"fmt"

	"github.com/nerd-lang/nerd/internal/atom"
)

// StringMode selects how a value is rendered as text.
type StringMode int

const (
	// ModeNormal renders the raw display form.
	ModeNormal StringMode = iota
	// ModeREPL renders the quoted, re-readable form used for
	// interactive echo.
	ModeREPL
	// ModeCode renders the quoted, re-readable form used when
	// emitting code.
	ModeCode
)

// ObjectType describes the behavior of one kind of heap object. Types
// are registered once and their ids are permanent; there is no
// unregistration. Embed BaseType to inherit the default behavior and
// override only what the type needs.
type ObjectType interface {
	// Name is the type's display name.
	Name() string

	// New builds the type's payload from caller-supplied init data. A
	// non-nil error aborts creation: Free is invoked on any partial
	// payload and the object is never registered.
	New(vm *VM, init any) (payload any, err error)

	// Free releases the payload. Called exactly once per object, at VM
	// teardown in reverse creation order.
	Free(vm *VM, payload any)

	// Eval evaluates an atom referencing an object of this type.
	Eval(vm *VM, self atom.Atom) (atom.Atom, error)

	// Format renders an object of this type under the given mode.
	Format(vm *VM, self atom.Atom, mode StringMode) string
}

// BaseType is the default object behavior: empty payload, no-op free,
// self-evaluation, and a generic "<name:#handle>" rendering.
type BaseType struct {
	TypeName string
}

func (b BaseType) Name() string { return b.TypeName }

func (b BaseType) New(vm *VM, init any) (any, error) { return nil, nil }

func (b BaseType) Free(vm *VM, payload any) {}

func (b BaseType) Eval(vm *VM, self atom.Atom) (atom.Atom, error) { return self, nil }

func (b BaseType) Format(vm *VM, self atom.Atom, mode StringMode) string {
	return fmt.Sprintf("<%s:#%d>", b.TypeName, self.Obj)
}

// object is one entry of the GC store: the Go shape of the header that
// precedes every heap object. The mark flag is written at creation and
// never read; the only collection event is VM teardown.
type object struct {
	typeID  int
	mark    bool
	payload any
}

// RegisterType appends t to the registry and returns its permanent
// type id.
func (vm *VM) RegisterType(t ObjectType) int {
	vm.types = append(vm.types, t)
	return len(vm.types) - 1
}

// NewObject creates a heap object of the given type and returns an
// atom referencing it. The VM owns the object until Close.
func (vm *VM) NewObject(typeID int, init any) (atom.Atom, error) {
	if typeID < 0 || typeID >= len(vm.types) {
		return atom.Nil(), fmt.Errorf("type id %d: %w", typeID, ErrUnknownType)
	}
	t := vm.types[typeID]
	payload, err := t.New(vm, init)
	if err != nil {
		if payload != nil {
			t.Free(vm, payload)
		}
		return atom.Nil(), fmt.Errorf("create %s: %v: %w", t.Name(), err, ErrObjectInit)
	}
	vm.objects = append(vm.objects, &object{typeID: typeID, payload: payload})
	return atom.Object(atom.Handle(len(vm.objects) - 1)), nil
}

// NewString creates a built-in string object from a raw source span,
// decoding its escape sequences.
func (vm *VM) NewString(raw []byte) (atom.Atom, error) {
	return vm.NewObject(vm.stringType, raw)
}

// Payload returns the payload of the object behind h.
func (vm *VM) Payload(h atom.Handle) any {
	return vm.objects[h].payload
}

// TypeOf returns the registered type of the object behind h.
func (vm *VM) TypeOf(h atom.Handle) ObjectType {
	return vm.types[vm.objects[h].typeID]
}

// Evaluate evaluates a value. Nil, integers, booleans and characters
// are self-evaluating; object values dispatch through their type's
// Eval, which defaults to self-evaluation. This dispatch point is the
// extension seam for richer behavior layered on top of the kernel.
func (vm *VM) Evaluate(value atom.Atom) (atom.Atom, error) {
	if value.Kind != atom.KindObject {
		return value, nil
	}
	return vm.TypeOf(value.Obj).Eval(vm, value)
}
