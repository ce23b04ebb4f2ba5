package vm

import (
	"fmt"

	"github.com/nerd-lang/nerd/internal/atom"
)

// stringPayload holds one decoded string's bytes.
type stringPayload struct {
	bytes []byte
}

// stringType is the built-in string type, registered at Open.
type stringType struct {
	BaseType
}

func newStringType() *stringType {
	return &stringType{BaseType{TypeName: "string"}}
}

// New accepts either a raw source span ([]byte), whose backslash
// escapes are decoded, or an already decoded Go string, copied
// verbatim.
func (st *stringType) New(vm *VM, init any) (any, error) {
	switch v := init.(type) {
	case nil:
		return &stringPayload{}, nil
	case []byte:
		return &stringPayload{bytes: decodeEscapes(v)}, nil
	case string:
		return &stringPayload{bytes: []byte(v)}, nil
	}
	return nil, fmt.Errorf("unsupported init data %T", init)
}

func (st *stringType) Free(vm *VM, payload any) {
	p := payload.(*stringPayload)
	p.bytes = nil
}

func (st *stringType) Format(vm *VM, self atom.Atom, mode StringMode) string {
	p := vm.Payload(self.Obj).(*stringPayload)
	if mode == ModeNormal {
		return string(p.bytes)
	}
	return string(quoteString(p.bytes))
}

// decodeEscapes resolves backslash escapes in a raw source span. The
// exact output length is computed first, then a buffer of that length
// is filled. \n, \r, \t, \b and \\ decode to their control characters;
// any other escaped character passes through literally.
func decodeEscapes(raw []byte) []byte {
	n := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
		}
		n++
	}

	out := make([]byte, n)
	j := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			default:
				c = raw[i]
			}
		}
		out[j] = c
		j++
	}
	return out
}

// quoteString renders decoded bytes as a double-quoted literal,
// re-escaping the control characters decodeEscapes understands. All
// other bytes pass through unescaped.
func quoteString(b []byte) []byte {
	out := make([]byte, 0, len(b)+2)
	out = append(out, '"')
	for _, c := range b {
		switch c {
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		case '\b':
			out = append(out, '\\', 'b')
		default:
			out = append(out, c)
		}
	}
	return append(out, '"')
}
