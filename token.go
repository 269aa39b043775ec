// FILE: lixenwraith/gameini/token.go
package gameini

import "fmt"

// TokenKind identifies the lexical class of a Token
type TokenKind int

const (
	TokenEOF           TokenKind = iota // end of input
	TokenNewline                        // '\n', entries are line-delimited
	TokenSectionHeader                  // [Name], text is the trimmed name
	TokenKey                            // bare identifier
	TokenNumericIndex                   // Key[0], text is the full key with index
	TokenNamedIndex                     // Key[Name], text is the full key with index
	TokenEquals                         // '='
	TokenStructStart                    // '('
	TokenStructEnd                      // ')'
	TokenComma                          // ','
	TokenString                         // quoted or unquoted string value
	TokenInteger                        // integer value
	TokenFloat                          // float value
	TokenBoolean                        // true/false in any case
	TokenIllegal                        // character with no meaning outside a value
)

var tokenNames = [...]string{
	TokenEOF:           "EOF",
	TokenNewline:       "NEWLINE",
	TokenSectionHeader: "SECTION_HEADER",
	TokenKey:           "KEY",
	TokenNumericIndex:  "NUMERIC_INDEX",
	TokenNamedIndex:    "NAMED_INDEX",
	TokenEquals:        "EQUALS",
	TokenStructStart:   "STRUCT_START",
	TokenStructEnd:     "STRUCT_END",
	TokenComma:         "COMMA",
	TokenString:        "STRING",
	TokenInteger:       "INTEGER",
	TokenFloat:         "FLOAT",
	TokenBoolean:       "BOOLEAN",
	TokenIllegal:       "ILLEGAL",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// isKey reports whether the kind introduces an entry
func (k TokenKind) isKey() bool {
	return k == TokenKey || k == TokenNumericIndex || k == TokenNamedIndex
}

// isScalar reports whether the kind carries a scalar value
func (k TokenKind) isScalar() bool {
	switch k {
	case TokenString, TokenInteger, TokenFloat, TokenBoolean:
		return true
	}
	return false
}

// Token is a single lexical unit. Line and Column are 1-based.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Kind, t.Text, t.Line, t.Column)
}
