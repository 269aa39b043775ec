// FILE: lixenwraith/gameini/errors.go
package gameini

import (
	"errors"
	"fmt"

	"gopkg.in/warnings.v0"
)

// Store errors, recoverable by the caller. Accessors wrap them in *KeyError.
var (
	ErrNotFound         = errors.New("not found")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrDuplicateSection = errors.New("duplicate section")
	ErrFileTooLarge     = errors.New("file exceeds maximum size")
)

// LexError reports malformed input at a position. Parsing stops at the first one.
type LexError struct {
	Line   int
	Column int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// ParseError reports a token of the wrong kind where a specific one was required.
type ParseError struct {
	Expected TokenKind
	Found    TokenKind
	Text     string
	Line     int
	Column   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: expected %s, found %s %q",
		e.Line, e.Column, e.Expected, e.Found, e.Text)
}

// SkippedLineError is a non-fatal warning for a section line that could not
// start an entry and was dropped.
type SkippedLineError struct {
	Section string
	Line    int
	Column  int
	Text    string
}

func (e *SkippedLineError) Error() string {
	return fmt.Sprintf("skipped line %d, column %d in section %q: unexpected %q", e.Line, e.Column, e.Section, e.Text)
}

// FatalOnly drops the warnings from an error returned by Check
func FatalOnly(err error) error {
	return warnings.FatalOnly(err)
}

// isFatal reports whether a collected parse error aborts the parse
func isFatal(err error) bool {
	var skipped *SkippedLineError
	return !errors.As(err, &skipped)
}

// KeyError attaches the section, key and kinds involved to one of the store errors.
// Expected and Actual are set for ErrTypeMismatch only.
type KeyError struct {
	Section  string
	Key      string
	Expected string
	Actual   string
	Err      error
}

func (e *KeyError) Error() string {
	where := e.Key
	if e.Section != "" {
		where = e.Section + "." + e.Key
	}
	if errors.Is(e.Err, ErrTypeMismatch) {
		return fmt.Sprintf("%s: %v: expected %s, got %s", where, e.Err, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

func notFound(section, key string) error {
	return &KeyError{Section: section, Key: key, Err: ErrNotFound}
}

func duplicateKey(section, key string) error {
	return &KeyError{Section: section, Key: key, Err: ErrDuplicateKey}
}

func mismatch(section, key, expected, actual string) error {
	return &KeyError{
		Section:  section,
		Key:      key,
		Expected: expected,
		Actual:   actual,
		Err:      ErrTypeMismatch,
	}
}

func sectionNotFound(name string) error {
	return fmt.Errorf("section %q: %w", name, ErrNotFound)
}

func duplicateSection(name string) error {
	return fmt.Errorf("section %q: %w", name, ErrDuplicateSection)
}
