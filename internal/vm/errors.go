package vm

import "errors"

var (
	// ErrUnexpectedToken is returned by the reader when a token does
	// not match an expected literal or reserved form. Bare symbols are
	// in this category: symbol interning is a layer above this kernel.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrObjectInit is returned when a type's create callback fails.
	// The partially built object is torn down and never registered.
	ErrObjectInit = errors.New("object initialization failed")

	// ErrUnknownType is returned for an unregistered type id.
	ErrUnknownType = errors.New("unknown object type")
)
