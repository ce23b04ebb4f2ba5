// Package nerd is the public embedding API. It wraps the interpreter
// kernel and exposes script results as plain Go values.
package nerd

import (
	"fmt"
	"os"

	"github.com/nerd-lang/nerd/internal/vm"
)

// Config tunes an embedded interpreter. The zero value is usable.
type Config struct {
	// Output receives diagnostic messages. Defaults to stderr.
	Output func(string)

	// ScratchSize is the initial capacity of the scratch arena, in
	// bytes. Zero means the default.
	ScratchSize int64
}

// VM is one embedded interpreter instance. Instances are independent;
// values never cross between them.
type VM struct {
	machine *vm.VM
}

// New creates an interpreter with default settings.
func New() (*VM, error) {
	return Open(Config{})
}

// Open creates an interpreter with the given settings.
func Open(cfg Config) (*VM, error) {
	output := cfg.Output
	if output == nil {
		output = func(m string) { fmt.Fprintln(os.Stderr, m) }
	}
	inner := vm.Config{
		Output:      output,
		ScratchSize: cfg.ScratchSize,
	}
	machine, err := vm.Open(&inner)
	if err != nil {
		return nil, err
	}
	return &VM{machine: machine}, nil
}

// Eval runs code and returns the last result as a Go value: nil,
// int64, bool, byte, or string.
func (v *VM) Eval(code string) (any, error) {
	result, err := v.machine.Run("<eval>", []byte(code))
	if err != nil {
		return nil, err
	}
	return v.marshal(result), nil
}

// EvalFile runs the contents of a source file.
func (v *VM) EvalFile(path string) (any, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	result, err := v.machine.Run(path, source)
	if err != nil {
		return nil, err
	}
	return v.marshal(result), nil
}

// Close releases every value the interpreter created. The VM must not
// be used afterwards.
func (v *VM) Close() {
	v.machine.Close()
}
