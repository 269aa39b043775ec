// FILE: lixenwraith/gameini/lexer_test.go
package gameini

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

// TestLexerTokens tests token kinds and texts for representative lines
func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []TokenKind
		texts []string
	}{
		{
			"SectionHeader", "[ ServerSettings ]",
			[]TokenKind{TokenSectionHeader, TokenEOF},
			[]string{"ServerSettings", ""},
		},
		{
			"PlainString", "ServerName=ARK Server\n",
			[]TokenKind{TokenKey, TokenEquals, TokenString, TokenNewline, TokenEOF},
			[]string{"ServerName", "=", "ARK Server", "\n", ""},
		},
		{
			"Integer", "MaxPlayers=70",
			[]TokenKind{TokenKey, TokenEquals, TokenInteger, TokenEOF},
			[]string{"MaxPlayers", "=", "70", ""},
		},
		{
			"Float", "Rate=-1.25",
			[]TokenKind{TokenKey, TokenEquals, TokenFloat, TokenEOF},
			[]string{"Rate", "=", "-1.25", ""},
		},
		{
			"BooleanAnyCase", "PvP=tRuE",
			[]TokenKind{TokenKey, TokenEquals, TokenBoolean, TokenEOF},
			[]string{"PvP", "=", "tRuE", ""},
		},
		{
			"NumericIndex", "Stat[3]=1",
			[]TokenKind{TokenNumericIndex, TokenEquals, TokenInteger, TokenEOF},
			[]string{"Stat[3]", "=", "1", ""},
		},
		{
			"NamedIndex", "Stat[Health]=1",
			[]TokenKind{TokenNamedIndex, TokenEquals, TokenInteger, TokenEOF},
			[]string{"Stat[Health]", "=", "1", ""},
		},
		{
			"IndexBeyondInt32IsNamed", "Stat[99999999999]=1",
			[]TokenKind{TokenNamedIndex, TokenEquals, TokenInteger, TokenEOF},
			[]string{"Stat[99999999999]", "=", "1", ""},
		},
		{
			"ParenAfterBareValue", "MOTD=Welcome (beta",
			[]TokenKind{TokenKey, TokenEquals, TokenString, TokenIllegal, TokenKey, TokenEOF},
			[]string{"MOTD", "=", "Welcome", "(", "beta", ""},
		},
		{
			"UnterminatedIndexIsKey", "Stat[3",
			[]TokenKind{TokenKey, TokenEOF},
			[]string{"Stat[3", ""},
		},
		{
			"CommaList", "List=a, 2 ,3.5",
			[]TokenKind{TokenKey, TokenEquals, TokenString, TokenComma, TokenInteger, TokenComma, TokenFloat, TokenEOF},
			[]string{"List", "=", "a", ",", "2", ",", "3.5", ""},
		},
		{
			"SymbolsRightOfEquals", "Path=/Game/Mods/[x]=y",
			[]TokenKind{TokenKey, TokenEquals, TokenString, TokenEOF},
			[]string{"Path", "=", "/Game/Mods/[x]=y", ""},
		},
		{
			"InlineComment", "Key=Value ; note\n",
			[]TokenKind{TokenKey, TokenEquals, TokenString, TokenNewline, TokenEOF},
			[]string{"Key", "=", "Value", "\n", ""},
		},
		{
			"QuotedKeepsSemicolon", `Key="a;b" ; note`,
			[]TokenKind{TokenKey, TokenEquals, TokenString, TokenEOF},
			[]string{"Key", "=", "a;b", ""},
		},
		{
			"QuotedEscapes", `Key="line\nnext\ttab \"q\" \\ \x"`,
			[]TokenKind{TokenKey, TokenEquals, TokenString, TokenEOF},
			[]string{"Key", "=", "line\nnext\ttab \"q\" \\ x", ""},
		},
		{
			"EmptyValue", "Key=\n",
			[]TokenKind{TokenKey, TokenEquals, TokenString, TokenNewline, TokenEOF},
			[]string{"Key", "=", "", "\n", ""},
		},
		{
			"NumberOutsideValue", "-12 3.5",
			[]TokenKind{TokenInteger, TokenFloat, TokenEOF},
			[]string{"-12", "3.5", ""},
		},
		{
			"Illegal", "#x",
			[]TokenKind{TokenIllegal, TokenKey, TokenEOF},
			[]string{"#", "x", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kinds, kinds(tokens))
			texts := make([]string, len(tokens))
			for i, tok := range tokens {
				texts[i] = tok.Text
			}
			assert.Equal(t, tt.texts, texts)
		})
	}
}

// TestLexerStructs tests that struct fields are keys and commas inside them are structural
func TestLexerStructs(t *testing.T) {
	tokens, err := Tokenize("S=(A=1,B=(C=x y))")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{
		TokenKey, TokenEquals, TokenStructStart,
		TokenKey, TokenEquals, TokenInteger, TokenComma,
		TokenKey, TokenEquals, TokenStructStart,
		TokenKey, TokenEquals, TokenString,
		TokenStructEnd, TokenStructEnd, TokenEOF,
	}, kinds(tokens))
	assert.Equal(t, "x y", tokens[12].Text)
}

// TestLexerClassification tests the value classification order
func TestLexerClassification(t *testing.T) {
	tests := []struct {
		text string
		kind TokenKind
	}{
		{"true", TokenBoolean},
		{"FALSE", TokenBoolean},
		{"0", TokenInteger},
		{"-2147483648", TokenInteger},
		{"2147483648", TokenFloat},
		{"1.5", TokenFloat},
		{".5", TokenFloat},
		{"1e3", TokenFloat},
		{"inf", TokenString},
		{"NaN", TokenString},
		{"0x10", TokenString},
		{"1_000", TokenString},
		{"yes", TokenString},
		{"", TokenString},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.kind, classifyValue(tt.text))
		})
	}
}

// TestLexerPositions tests 1-based line and column tracking
func TestLexerPositions(t *testing.T) {
	tokens, err := Tokenize("[A]\n  Key=1")
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Column)
	assert.Equal(t, 2, tokens[2].Line)
	assert.Equal(t, 3, tokens[2].Column)
	assert.Equal(t, 6, tokens[3].Column)
	assert.Equal(t, 7, tokens[4].Column)
}

// TestLexerBOM tests that a byte order mark is skipped
func TestLexerBOM(t *testing.T) {
	tokens, err := Tokenize("\uFEFF[A]")
	require.NoError(t, err)
	assert.Equal(t, "A", tokens[0].Text)
	assert.Equal(t, 1, tokens[0].Column)
}

// TestLexerErrors tests fatal lex errors and their positions
func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
		msg    string
	}{
		{"UnclosedHeader", "[Unclosed", 1, 1, "unterminated section header"},
		{"HeaderBrokenByNewline", "[A]\n[B\n]", 2, 1, "unterminated section header"},
		{"UnclosedQuote", "[A]\nKey=\"abc\n", 2, 5, "unterminated quoted string"},
		{"QuoteEndsInEscape", `K="abc\`, 1, 3, "unterminated quoted string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)

			var lexErr *LexError
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, tt.column, lexErr.Column)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "EQUALS", TokenEquals.String())
	assert.Equal(t, "SECTION_HEADER", TokenSectionHeader.String())
	assert.Equal(t, "TokenKind(99)", TokenKind(99).String())
}
