// Package vm implements the nerd kernel: the VM context, the object
// registry and GC store, the built-in string type, and the
// reader/evaluator that turns source text into values.
//
// A VM is single-threaded and not reentrant: exactly one logical
// thread of control may operate on a given VM at a time. Separate VMs
// are fully independent.
package vm

import (
	"github.com/nerd-lang/nerd/internal/arena"
)

// Config carries the pluggable callbacks and sizes of a VM. The zero
// value of any field falls back to its default.
type Config struct {
	// Memory backs every arena and heap allocation the VM makes.
	Memory arena.Allocator

	// Output receives formatted diagnostic and echo text, one message
	// per call. A nil Output discards diagnostics.
	Output func(message string)

	// ScratchSize is the initial capacity of the scratch arena.
	ScratchSize int64
}

// DefaultConfig returns the configuration Open uses for nil or
// partially filled configs.
func DefaultConfig() Config {
	return Config{
		Memory:      arena.DefaultAllocator,
		ScratchSize: arena.DefaultCapacity,
	}
}

// VM is one interpreter instance. It owns its scratch arena, its
// object-type registry, and every heap object it ever created.
type VM struct {
	cfg     Config
	scratch *arena.Arena

	types   []ObjectType
	objects []*object

	stringType int
}

// Open creates a VM. A nil config selects DefaultConfig.
func Open(cfg *Config) (*VM, error) {
	c := DefaultConfig()
	if cfg != nil {
		if cfg.Memory != nil {
			c.Memory = cfg.Memory
		}
		if cfg.Output != nil {
			c.Output = cfg.Output
		}
		if cfg.ScratchSize > 0 {
			c.ScratchSize = cfg.ScratchSize
		}
	}

	vm := &VM{
		cfg:     c,
		scratch: arena.New(c.Memory, c.ScratchSize),
	}
	vm.stringType = vm.RegisterType(newStringType())
	return vm, nil
}

// Close frees every live heap object, most recently created first,
// then releases the scratch arena. The VM must not be used afterwards.
func (vm *VM) Close() {
	for i := len(vm.objects) - 1; i >= 0; i-- {
		o := vm.objects[i]
		vm.types[o.typeID].Free(vm, o.payload)
		o.payload = nil
	}
	vm.objects = nil
	vm.scratch.Release()
}

// StringTypeID returns the type id of the built-in string type.
func (vm *VM) StringTypeID() int {
	return vm.stringType
}

// reportf formats a diagnostic in a scratch session and delivers it to
// the output callback.
func (vm *VM) reportf(format string, args ...any) {
	if vm.cfg.Output == nil {
		return
	}
	vm.scratch.Push()
	off := vm.scratch.Format(format, args...)
	msg := string(vm.scratch.Bytes(off, vm.scratch.Cursor()))
	vm.scratch.Pop()
	vm.cfg.Output(msg)
}
