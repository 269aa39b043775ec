// FILE: lixenwraith/gameini/lexer.go
package gameini

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof = -1

const utf8BOM = "\uFEFF"

// Lexer turns INI text into Tokens. Besides the cursor it remembers the kind of
// the last token, since the text right of '=' is always read as a value.
type Lexer struct {
	input string
	pos   int // byte offset of the next rune
	line  int
	col   int
	last  TokenKind
	depth int // open '(' count, reset by section headers
}

// NewLexer creates a lexer over input. A leading UTF-8 byte order mark is ignored.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: strings.TrimPrefix(input, utf8BOM),
		line:  1,
		col:   1,
		last:  TokenNewline,
	}
}

// Tokenize lexes the whole input, EOF token included.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) errorf(line, col int, msg string) error {
	return &LexError{Line: line, Column: col, Msg: msg}
}

func (l *Lexer) emit(kind TokenKind, text string, line, col int) (Token, error) {
	l.last = kind
	return Token{Kind: kind, Text: text, Line: line, Column: col}, nil
}

// skipBlanks skips whitespace up to, not including, a newline.
func (l *Lexer) skipBlanks() {
	for r := l.peek(); r != '\n' && r != eof && unicode.IsSpace(r); r = l.peek() {
		l.next()
	}
}

// valueContext reports whether the next token must be read as a value.
// Top-level commas continue a value list; commas inside a struct precede a field key.
func (l *Lexer) valueContext() bool {
	return l.last == TokenEquals || (l.last == TokenComma && l.depth == 0)
}

// NextToken returns the next token, TokenEOF once the input is exhausted.
func (l *Lexer) NextToken() (Token, error) {
	if l.valueContext() {
		l.skipBlanks()
		return l.lexValue()
	}

	for {
		line, col := l.line, l.col
		r := l.peek()
		switch {
		case r == eof:
			return l.emit(TokenEOF, "", line, col)
		case r == '\n':
			l.next()
			return l.emit(TokenNewline, "\n", line, col)
		case unicode.IsSpace(r):
			l.next()
		case r == ';':
			l.skipComment()
		case r == '[':
			return l.lexSectionHeader()
		case r == '_' || unicode.IsLetter(r):
			return l.lexKey()
		case r == '=':
			l.next()
			return l.emit(TokenEquals, "=", line, col)
		case r == '(' && l.last.isScalar():
			// Glued to a bare value, as in "Welcome (beta"; opens nothing
			l.next()
			return l.emit(TokenIllegal, "(", line, col)
		case r == '(':
			l.next()
			l.depth++
			return l.emit(TokenStructStart, "(", line, col)
		case r == ')':
			l.next()
			if l.depth > 0 {
				l.depth--
			}
			return l.emit(TokenStructEnd, ")", line, col)
		case r == ',':
			l.next()
			return l.emit(TokenComma, ",", line, col)
		case r == '"':
			return l.lexQuoted()
		case r == '-' || isDigit(r):
			return l.lexNumber()
		default:
			l.next()
			return l.emit(TokenIllegal, string(r), line, col)
		}
	}
}

func (l *Lexer) skipComment() {
	for r := l.peek(); r != '\n' && r != eof; r = l.peek() {
		l.next()
	}
}

func (l *Lexer) lexSectionHeader() (Token, error) {
	line, col := l.line, l.col
	l.next() // '['
	start := l.pos
	for {
		switch l.peek() {
		case ']':
			text := strings.TrimSpace(l.input[start:l.pos])
			l.next()
			l.depth = 0
			return l.emit(TokenSectionHeader, text, line, col)
		case '\n', eof:
			return Token{}, l.errorf(line, col, "unterminated section header")
		default:
			l.next()
		}
	}
}

func (l *Lexer) lexKey() (Token, error) {
	line, col := l.line, l.col
	start := l.pos
	for r := l.peek(); isKeyRune(r); r = l.peek() {
		l.next()
	}
	if l.peek() != '[' {
		return l.emit(TokenKey, l.input[start:l.pos], line, col)
	}

	l.next() // '['
	idxStart := l.pos
	for {
		switch l.peek() {
		case ']':
			index := l.input[idxStart:l.pos]
			l.next()
			kind := TokenNamedIndex
			if _, err := strconv.ParseInt(strings.TrimSpace(index), 10, 32); err == nil {
				kind = TokenNumericIndex
			}
			return l.emit(kind, l.input[start:l.pos], line, col)
		case '\n', eof:
			// Unterminated index, the raw text becomes a plain key
			return l.emit(TokenKey, l.input[start:l.pos], line, col)
		default:
			l.next()
		}
	}
}

// lexValue reads the right-hand side of '=' or of a top-level comma.
func (l *Lexer) lexValue() (Token, error) {
	line, col := l.line, l.col
	switch l.peek() {
	case '"':
		return l.lexQuoted()
	case '(':
		l.next()
		l.depth++
		return l.emit(TokenStructStart, "(", line, col)
	}

	start := l.pos
	for {
		r := l.peek()
		if r == eof || r == '\n' || r == ',' || r == ')' || r == '(' || r == ';' {
			break
		}
		l.next()
	}
	text := strings.TrimSpace(l.input[start:l.pos])
	return l.emit(classifyValue(text), text, line, col)
}

func (l *Lexer) lexQuoted() (Token, error) {
	line, col := l.line, l.col
	l.next() // opening quote
	var b strings.Builder
	for {
		r := l.next()
		switch r {
		case eof, '\n':
			return Token{}, l.errorf(line, col, "unterminated quoted string")
		case '"':
			return l.emit(TokenString, b.String(), line, col)
		case '\\':
			esc := l.next()
			switch esc {
			case eof, '\n':
				return Token{}, l.errorf(line, col, "unterminated quoted string")
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(r)
		}
	}
}

// lexNumber reads -?digits(.digits)? outside of value context.
func (l *Lexer) lexNumber() (Token, error) {
	line, col := l.line, l.col
	start := l.pos
	if l.peek() == '-' {
		l.next()
	}
	digits := l.skipDigits()
	kind := TokenInteger
	if l.peek() == '.' {
		l.next()
		digits += l.skipDigits()
		kind = TokenFloat
	}
	if digits == 0 {
		return l.emit(TokenIllegal, l.input[start:l.pos], line, col)
	}
	return l.emit(kind, l.input[start:l.pos], line, col)
}

func (l *Lexer) skipDigits() int {
	n := 0
	for isDigit(l.peek()) {
		l.next()
		n++
	}
	return n
}

// classifyValue picks the token kind of a trimmed unquoted value:
// boolean, then 32-bit integer, then 32-bit float, else string.
func classifyValue(text string) TokenKind {
	if strings.EqualFold(text, "true") || strings.EqualFold(text, "false") {
		return TokenBoolean
	}
	if _, err := strconv.ParseInt(text, 10, 32); err == nil {
		return TokenInteger
	}
	if isNumericLiteral(text) {
		if _, err := strconv.ParseFloat(text, 32); err == nil {
			return TokenFloat
		}
	}
	return TokenString
}

// isNumericLiteral rejects forms strconv accepts but the format does not:
// inf, nan and hex floats.
func isNumericLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" || strings.ContainsAny(s, "xX_") {
		return false
	}
	return isDigit(rune(s[0])) || s[0] == '.'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isKeyRune(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
