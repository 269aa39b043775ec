// FILE: lixenwraith/gameini/parser.go
package gameini

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/warnings.v0"
)

// Parser builds a File from the token stream of a Lexer.
// The first lex or parse error aborts; there is no recovery.
// Dropped section lines are collected as warnings, see Warnings.
type Parser struct {
	lex  *Lexer
	tok  Token
	warn *warnings.Collector
}

// NewParser creates a parser reading from l.
func NewParser(l *Lexer) *Parser {
	c := warnings.NewCollector(isFatal)
	c.FatalWithWarnings = true
	return &Parser{lex: l, warn: c}
}

// Warnings returns the lines dropped by Parse as a warnings.List, or nil.
// Call it once, after Parse.
func (p *Parser) Warnings() error {
	return p.warn.Done()
}

// Parse consumes the lexer to EOF. Text before the first section header is
// ignored. A section header seen again folds its entries into the first
// occurrence with the same merge rules used within a section.
func (p *Parser) Parse() (*File, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	var order []string
	lists := make(map[string]*entryList)

	for p.tok.Kind != TokenEOF {
		if p.tok.Kind != TokenSectionHeader {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}

		name := p.tok.Text
		list, ok := lists[name]
		if !ok {
			list = newEntryList()
			lists[name] = list
			order = append(order, name)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.parseSection(name, list); err != nil {
			return nil, err
		}
	}

	f := newFile()
	sections := make([]*Section, len(order))
	for i, name := range order {
		sections[i] = newSectionFromList(name, lists[name])
	}
	f.sections.Store(&sections)
	return f, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// eat consumes a token of the given kind or fails with a ParseError.
func (p *Parser) eat(kind TokenKind) error {
	if p.tok.Kind != kind {
		return &ParseError{
			Expected: kind,
			Found:    p.tok.Kind,
			Text:     p.tok.Text,
			Line:     p.tok.Line,
			Column:   p.tok.Column,
		}
	}
	return p.advance()
}

func (p *Parser) parseSection(name string, list *entryList) error {
	for {
		switch {
		case p.tok.Kind == TokenEOF || p.tok.Kind == TokenSectionHeader:
			return nil
		case p.tok.Kind == TokenNewline:
			if err := p.advance(); err != nil {
				return err
			}
		case p.tok.Kind.isKey():
			e, err := p.parseEntry()
			if err != nil {
				return err
			}
			list.fold(e)
		default:
			p.warn.Collect(&SkippedLineError{
				Section: name,
				Line:    p.tok.Line,
				Column:  p.tok.Column,
				Text:    p.tok.Text,
			})
			if err := p.skipLine(); err != nil {
				return err
			}
		}
	}
}

// parseEntry reads one key=value[,value...] line into a raw, unmerged entry.
func (p *Parser) parseEntry() (Entry, error) {
	keyTok := p.tok
	base, index := splitKey(keyTok)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.eat(TokenEquals); err != nil {
		return nil, err
	}

	var values []Value
	if p.tok.Kind == TokenStructStart {
		sv, err := p.parseStruct()
		if err != nil {
			return nil, err
		}
		values = append(values, sv)
	} else {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		for p.tok.Kind == TokenComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}

	if err := p.skipLine(); err != nil {
		return nil, err
	}

	switch {
	case keyTok.Kind == TokenNamedIndex:
		return NamedMapEntry{Name: base, Values: []NamedValue{{Name: index, Value: values[0]}}}, nil
	case keyTok.Kind == TokenNumericIndex:
		n, err := strconv.ParseInt(strings.TrimSpace(index), 10, 32)
		if err != nil {
			return NamedMapEntry{Name: base, Values: []NamedValue{{Name: index, Value: values[0]}}}, nil
		}
		return IndexedArrayEntry{Name: base, Values: map[int32]Value{int32(n): values[0]}}, nil
	case len(values) > 1:
		return CommaArrayEntry{Name: base, Values: values}, nil
	}
	return PlainEntry{Name: base, Value: values[0]}, nil
}

func (p *Parser) parseValue() (Value, error) {
	switch {
	case p.tok.Kind == TokenStructStart:
		return p.parseStruct()
	case p.tok.Kind.isScalar():
		v := tokenValue(p.tok)
		return v, p.advance()
	case p.tok.Kind.isKey():
		v := String(p.tok.Text)
		return v, p.advance()
	}
	// Nothing usable, e.g. a line ending right after a comma outside value context
	return StringValue{}, nil
}

// parseStruct reads (key=value, ...) with nested structs resolved to values.
// Tokens that cannot start a field are skipped.
func (p *Parser) parseStruct() (StructValue, error) {
	if err := p.eat(TokenStructStart); err != nil {
		return StructValue{}, err
	}
	fields := []Field{}
	for {
		switch {
		case p.tok.Kind == TokenStructEnd:
			return StructValue{Fields: fields}, p.advance()
		case p.tok.Kind == TokenEOF || p.tok.Kind == TokenSectionHeader:
			return StructValue{Fields: fields}, nil
		case p.tok.Kind.isKey():
			name := p.tok.Text
			if err := p.advance(); err != nil {
				return StructValue{}, err
			}
			if err := p.eat(TokenEquals); err != nil {
				return StructValue{}, err
			}
			var v Value
			switch {
			case p.tok.Kind == TokenStructStart:
				sv, err := p.parseStruct()
				if err != nil {
					return StructValue{}, err
				}
				v = sv
			case p.tok.Kind.isScalar():
				v = tokenValue(p.tok)
				if err := p.advance(); err != nil {
					return StructValue{}, err
				}
			}
			fields = setField(fields, name, v)
			if p.tok.Kind == TokenComma {
				if err := p.advance(); err != nil {
					return StructValue{}, err
				}
			}
		default:
			if err := p.advance(); err != nil {
				return StructValue{}, err
			}
		}
	}
}

// skipLine discards tokens through the next newline.
func (p *Parser) skipLine() error {
	for {
		switch p.tok.Kind {
		case TokenEOF, TokenSectionHeader:
			return nil
		case TokenNewline:
			return p.advance()
		}
		if err := p.advance(); err != nil {
			return err
		}
	}
}

// splitKey separates Key[index] into its base key and index text.
func splitKey(tok Token) (base, index string) {
	if tok.Kind != TokenNumericIndex && tok.Kind != TokenNamedIndex {
		return tok.Text, ""
	}
	open := strings.IndexByte(tok.Text, '[')
	return tok.Text[:open], tok.Text[open+1 : len(tok.Text)-1]
}

// tokenValue converts a scalar token into its Value.
func tokenValue(tok Token) Value {
	switch tok.Kind {
	case TokenBoolean:
		first, _ := utf8.DecodeRuneInString(tok.Text)
		return Bool(strings.EqualFold(tok.Text, "true"), unicode.IsUpper(first))
	case TokenInteger:
		if n, err := strconv.ParseInt(tok.Text, 10, 32); err == nil {
			return Int(int32(n))
		}
		if f, err := strconv.ParseFloat(tok.Text, 32); err == nil {
			return Float(float32(f))
		}
	case TokenFloat:
		if f, err := strconv.ParseFloat(tok.Text, 32); err == nil {
			return Float(float32(f))
		}
	}
	return String(tok.Text)
}
