// Package lexer scans raw source bytes into a flat list of lexemes.
//
// The scanner makes a single forward pass with a one-character
// pushback. Line breaks are normalized: \r, \n and \r\n each count as
// one break and are reported as '\n'. Skipped constructs are
// whitespace, ";" comments to end of line, "#" followed by whitespace
// to end of line, and nestable "#|" ... "|#" block comments. A bare
// "#" before anything else is reserved prefix space and scanning
// simply continues after it.
package lexer

import (
	"fmt"

	"github.com/nerd-lang/nerd/internal/atom"
	"github.com/nerd-lang/nerd/internal/token"
)

// Error is a scan failure with its source position.
type Error struct {
	Origin string
	Line   int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s(%d): LEX ERROR: %s", e.Origin, e.Line, e.Msg)
}

// Lexer scans one source buffer. The zero value is not usable; see
// Tokenize.
type Lexer struct {
	origin string
	source []byte
	pos    int
	line   int

	// Saved state for the one-character pushback. Valid for exactly
	// one unget per next.
	lastPos  int
	lastLine int
}

// Tokenize scans source into its token list. On a scan failure the
// tokens built so far are discarded and the returned error is a *Error
// carrying the origin and the 1-based line of the failure.
func Tokenize(origin string, source []byte) ([]token.Lexeme, error) {
	l := &Lexer{origin: origin, source: source, line: 1}
	var tokens []token.Lexeme
	for {
		lex, ok, err := l.scan()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, lex)
	}
}

// next returns the next source character, normalizing line breaks to
// '\n', or ok=false at end of input.
func (l *Lexer) next() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	l.lastPos, l.lastLine = l.pos, l.line
	c := l.source[l.pos]
	l.pos++
	if c == '\r' {
		if l.pos < len(l.source) && l.source[l.pos] == '\n' {
			l.pos++
		}
		c = '\n'
	}
	if c == '\n' {
		l.line++
	}
	return c, true
}

// unget pushes the most recent character back.
func (l *Lexer) unget() {
	l.pos, l.line = l.lastPos, l.lastLine
}

func (l *Lexer) errorf(line int, format string, args ...any) *Error {
	return &Error{Origin: l.origin, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// scan skips trivia and produces the next lexeme. ok=false means the
// input is exhausted.
func (l *Lexer) scan() (token.Lexeme, bool, error) {
	for {
		c, ok := l.next()
		if !ok {
			return token.Lexeme{}, false, nil
		}
		start, line := l.lastPos, l.lastLine

		switch {
		case isSpace(c):
			continue

		case c == ';':
			l.skipLine()
			continue

		case c == '#':
			c2, ok := l.next()
			switch {
			case !ok:
				continue
			case c2 == '|':
				l.skipBlockComment()
			case c2 == '\n':
				// Comment marker at end of line; nothing left to skip.
			case isSpace(c2):
				l.skipLine()
			default:
				// Possible prefix character; no construct is defined
				// for it yet, so keep scanning from the next token.
				l.unget()
			}
			continue

		case c == '+' || c == '-' || isDigit(c):
			if lex, ok := l.scanNumber(c, start, line); ok {
				return lex, true, nil
			}
			// A sign with no digits after it starts a symbol.
			return l.scanSymbol(start, line), true, nil

		case c == '\\':
			lex, err := l.scanCharacter(start, line)
			return lex, err == nil, err

		case c == '"':
			lex, err := l.scanString(line)
			return lex, err == nil, err

		case isNameStart(c):
			return l.scanSymbol(start, line), true, nil

		default:
			return token.Lexeme{}, false, l.errorf(line, "unknown token '%c'", c)
		}
	}
}

// skipLine consumes everything up to and including the next line break.
func (l *Lexer) skipLine() {
	for {
		c, ok := l.next()
		if !ok || c == '\n' {
			return
		}
	}
}

// skipBlockComment consumes a "#|" ... "|#" comment, tracking nesting
// depth. The opening "#|" has already been consumed. Reaching end of
// input closes the comment implicitly.
func (l *Lexer) skipBlockComment() {
	depth := 1
	for depth > 0 {
		c, ok := l.next()
		if !ok {
			return
		}
		switch c {
		case '#':
			if c2, ok := l.next(); ok {
				if c2 == '|' {
					depth++
				} else {
					l.unget()
				}
			}
		case '|':
			if c2, ok := l.next(); ok {
				if c2 == '#' {
					depth--
				} else {
					l.unget()
				}
			}
		}
	}
}

// Number recognition states.
type numState int

const (
	numStart numState = iota
	numSign
	numDigits
)

// scanNumber recognizes an optionally signed run of decimal digits
// with an explicit state machine, accumulating a signed 64-bit value
// with no overflow checking. first is the already-consumed lead
// character. ok=false means first was a bare sign and the caller
// should rescan it as a symbol.
func (l *Lexer) scanNumber(first byte, start, line int) (token.Lexeme, bool) {
	state := numStart
	neg := false
	var value int64

	c, ok := first, true
	for {
		switch state {
		case numStart:
			switch {
			case c == '-':
				neg = true
				state = numSign
			case c == '+':
				state = numSign
			default:
				value = int64(c - '0')
				state = numDigits
			}

		case numSign:
			if !ok || !isDigit(c) {
				if ok {
					l.unget()
				}
				return token.Lexeme{}, false
			}
			value = int64(c - '0')
			state = numDigits

		case numDigits:
			if !ok || !isDigit(c) {
				if ok {
					l.unget()
				}
				if neg {
					value = -value
				}
				return token.Lexeme{
					Start: start,
					End:   l.pos,
					Line:  line,
					Kind:  token.Number,
					Value: atom.Integer(value),
				}, true
			}
			value = value*10 + int64(c-'0')
		}
		c, ok = l.next()
	}
}

// scanSymbol consumes the rest of a symbol whose first character is at
// start, then decides whether it is a reserved word.
func (l *Lexer) scanSymbol(start, line int) token.Lexeme {
	for {
		c, ok := l.next()
		if !ok {
			break
		}
		if !isNameCont(c) {
			l.unget()
			break
		}
	}
	lex := token.Lexeme{Start: start, End: l.pos, Line: line, Kind: token.Symbol}
	if id, ok := lookupKeyword(l.source[start:l.pos]); ok {
		lex.Kind = keywordKinds[id]
	}
	return lex
}

// scanCharacter recognizes a "\" character literal. The backslash has
// already been consumed.
//
// Forms: a single literal character; "\#" followed by decimal digits
// (decimal code, truncated to 8 bits); "\#x" followed by one or two
// hex digits; "\##" for a literal '#'; or a run of lowercase letters
// naming a character from the named table.
func (l *Lexer) scanCharacter(start, line int) (token.Lexeme, error) {
	c, ok := l.next()
	if !ok {
		return token.Lexeme{}, l.errorf(line, "malformed character literal")
	}

	if c == '#' {
		return l.scanCharacterCode(start, line)
	}

	if 'a' <= c && c <= 'z' {
		// Either one letter or a character name.
		for {
			c2, ok := l.next()
			if !ok {
				break
			}
			if 'a' <= c2 && c2 <= 'z' {
				continue
			}
			if !isCharEnd(c2) {
				return token.Lexeme{}, l.errorf(line, "malformed character literal")
			}
			l.unget()
			break
		}
		name := l.source[start+1 : l.pos]
		if len(name) == 1 {
			return l.charLexeme(start, line, name[0]), nil
		}
		value, ok := NamedChar(name)
		if !ok {
			return token.Lexeme{}, l.errorf(line, "unknown character name '\\%s'", name)
		}
		return l.charLexeme(start, line, value), nil
	}

	return l.charEnd(start, line, c)
}

// scanCharacterCode handles the "\#" forms. The "\#" prefix has been
// consumed.
func (l *Lexer) scanCharacterCode(start, line int) (token.Lexeme, error) {
	c, ok := l.next()
	if !ok {
		return token.Lexeme{}, l.errorf(line, "malformed character literal")
	}

	switch {
	case c == '#':
		return l.charEnd(start, line, '#')

	case c == 'x':
		value, digits := 0, 0
		for digits < 2 {
			c2, ok := l.next()
			if !ok {
				break
			}
			d := hexDigit(c2)
			if d < 0 {
				l.unget()
				break
			}
			value = value*16 + d
			digits++
		}
		if digits == 0 {
			return token.Lexeme{}, l.errorf(line, "malformed character literal")
		}
		return l.charEnd(start, line, byte(value))

	case isDigit(c):
		value := int(c - '0')
		for {
			c2, ok := l.next()
			if !ok {
				break
			}
			if !isDigit(c2) {
				l.unget()
				break
			}
			value = value*10 + int(c2-'0')
		}
		return l.charEnd(start, line, byte(value))
	}

	return token.Lexeme{}, l.errorf(line, "malformed character literal")
}

// charEnd checks that the literal is properly terminated and builds
// the lexeme. The terminator is not consumed.
func (l *Lexer) charEnd(start, line int, value byte) (token.Lexeme, error) {
	c, ok := l.next()
	if ok {
		if !isCharEnd(c) {
			return token.Lexeme{}, l.errorf(line, "malformed character literal")
		}
		l.unget()
	}
	return l.charLexeme(start, line, value), nil
}

func (l *Lexer) charLexeme(start, line int, value byte) token.Lexeme {
	return token.Lexeme{
		Start: start,
		End:   l.pos,
		Line:  line,
		Kind:  token.Character,
		Value: atom.Character(value),
	}
}

// scanString captures the raw span of a double-quoted string up to the
// next unescaped quote on the same line. Escape sequences are left
// undecoded; the string type's create callback decodes them at read
// time. The opening quote has been consumed.
func (l *Lexer) scanString(line int) (token.Lexeme, error) {
	contentStart := l.pos
	for {
		c, ok := l.next()
		if !ok || c == '\n' {
			return token.Lexeme{}, l.errorf(line, "unterminated string")
		}
		switch c {
		case '\\':
			if c2, ok := l.next(); !ok || c2 == '\n' {
				return token.Lexeme{}, l.errorf(line, "unterminated string")
			}
		case '"':
			return token.Lexeme{
				Start: contentStart,
				End:   l.lastPos,
				Line:  line,
				Kind:  token.String,
			}, nil
		}
	}
}

func hexDigit(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
