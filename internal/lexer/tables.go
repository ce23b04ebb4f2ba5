package lexer

import (
	"hash/fnv"

	"github.com/nerd-lang/nerd/internal/token"
)

// Reserved-word ids. Ids index both keyword tables below.
const (
	kwNil = iota
	kwYes
	kwNo
)

var keywords = [...]string{
	kwNil: "nil",
	kwYes: "yes",
	kwNo:  "no",
}

var keywordKinds = [...]token.Kind{
	kwNil: token.Nil,
	kwYes: token.Yes,
	kwNo:  token.No,
}

// keywordBuckets maps the low bits of a name's FNV-1a hash to the
// packed list of candidate reserved-word ids. Each candidate is
// confirmed by exact length and byte comparison before it is accepted.
var keywordBuckets [8][]uint8

func init() {
	for id, w := range keywords {
		b := fnvHash([]byte(w)) & uint64(len(keywordBuckets)-1)
		keywordBuckets[b] = append(keywordBuckets[b], uint8(id))
	}
}

func fnvHash(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}

// lookupKeyword reports whether name is a reserved word.
func lookupKeyword(name []byte) (int, bool) {
	b := fnvHash(name) & uint64(len(keywordBuckets)-1)
	for _, id := range keywordBuckets[b] {
		w := keywords[id]
		if len(w) == len(name) && string(name) == w {
			return int(id), true
		}
	}
	return 0, false
}

// namedChars is the fixed table of named character literals. Names are
// matched by exact length and byte comparison.
var namedChars = []struct {
	name  string
	value byte
}{
	{"space", ' '},
	{"backspace", '\b'},
	{"tab", '\t'},
	{"newline", '\n'},
	{"return", '\r'},
	{"bell", 7},
	{"esc", 27},
}

// NamedChar resolves a character-literal name, e.g. "newline".
func NamedChar(name []byte) (byte, bool) {
	for _, nc := range namedChars {
		if len(nc.name) == len(name) && string(name) == nc.name {
			return nc.value, true
		}
	}
	return 0, false
}

// CharName returns the literal name of c if it has one, e.g. '\n' has
// the name "newline".
func CharName(c byte) (string, bool) {
	for _, nc := range namedChars {
		if nc.value == c {
			return nc.name, true
		}
	}
	return "", false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// isNameStart reports whether c can begin a symbol or reserved word.
// The grammar claims ; " # : \ and the brackets, so they are excluded.
func isNameStart(c byte) bool {
	if isLetter(c) {
		return true
	}
	switch c {
	case '+', '-', '*', '/', '<', '>', '=', '!', '?', '_',
		'$', '%', '&', '.', '^', '~', '|', '@':
		return true
	}
	return false
}

// isNameCont reports whether c can continue a symbol or reserved word.
func isNameCont(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

// isCharEnd reports whether c terminates a character literal.
func isCharEnd(c byte) bool {
	return isSpace(c) || c == ')' || c == ']' || c == '}' || c == ':' || c == '\\'
}
