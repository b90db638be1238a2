package toml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// tokenKind classifies a lexical token
type tokenKind int

const (
	tokError tokenKind = iota
	tokEOF
	tokNewline
	tokWord   // bare key, number or boolean; the parser decides by context
	tokString // "quoted" or 'literal'
	tokEqual
	tokDot
	tokComma
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
)

// token is one lexeme with its source line
type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokNewline:
		return "newline"
	case tokError:
		return "error: " + t.text
	}
	return fmt.Sprintf("%q", t.text)
}

// lexer splits config source into tokens; comments are dropped here
type lexer struct {
	src  []byte
	pos  int
	line int
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1}
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.src[l.pos:])
	return r
}

func (l *lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r, w := utf8.DecodeRune(l.src[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *lexer) emit(kind tokenKind, text string) token {
	return token{kind: kind, text: text, line: l.line}
}

// next returns the following token
func (l *lexer) next() token {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
			continue
		case '#':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
			continue
		}
		break
	}

	if l.pos >= len(l.src) {
		return l.emit(tokEOF, "")
	}

	line := l.line
	ch := l.advance()
	switch ch {
	case '\n':
		return token{kind: tokNewline, text: "\n", line: line}
	case '=':
		return l.emit(tokEqual, "=")
	case '.':
		return l.emit(tokDot, ".")
	case ',':
		return l.emit(tokComma, ",")
	case '[':
		return l.emit(tokLBracket, "[")
	case ']':
		return l.emit(tokRBracket, "]")
	case '{':
		return l.emit(tokLBrace, "{")
	case '}':
		return l.emit(tokRBrace, "}")
	case '"':
		return l.basicString()
	case '\'':
		return l.literalString()
	}

	if isWordRune(ch) {
		return l.word(ch)
	}
	return l.emit(tokError, fmt.Sprintf("unexpected character %q", ch))
}

// word reads a bare run; dots are kept only inside numbers so dotted keys still split
func (l *lexer) word(first rune) token {
	start := l.pos - utf8.RuneLen(first)
	numeric := isDigit(first) || first == '+' || first == '-'
	for l.pos < len(l.src) {
		ch := l.peek()
		if isWordRune(ch) || (ch == '.' && numeric) {
			l.advance()
			continue
		}
		break
	}
	return l.emit(tokWord, string(l.src[start:l.pos]))
}

func (l *lexer) basicString() token {
	var sb strings.Builder
	for l.pos < len(l.src) {
		ch := l.advance()
		switch ch {
		case '"':
			return l.emit(tokString, sb.String())
		case '\n':
			return l.emit(tokError, "newline in string")
		case '\\':
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"', '\\':
				sb.WriteRune(esc)
			default:
				return l.emit(tokError, fmt.Sprintf("unknown escape \\%c", esc))
			}
		default:
			sb.WriteRune(ch)
		}
	}
	return l.emit(tokError, "unterminated string")
}

func (l *lexer) literalString() token {
	start := l.pos
	for l.pos < len(l.src) {
		switch l.peek() {
		case '\'':
			text := string(l.src[start:l.pos])
			l.advance()
			return l.emit(tokString, text)
		case '\n':
			return l.emit(tokError, "newline in string")
		}
		l.advance()
	}
	return l.emit(tokError, "unterminated string")
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isDigit(r) || r == '_' || r == '-' || r == '+'
}
