// FILE: lixenwraith/gameini/section.go
package gameini

import (
	"context"
	"strings"
	"sync/atomic"
)

// Section is a named, ordered, key-unique collection of entries.
// All methods are safe for concurrent use; see Async for the context-aware
// calling convention.
type Section struct {
	name    string
	entries atomic.Pointer[entryList]
	rw      syncDomain
	async   *asyncDomain
}

// NewSection creates an empty section.
func NewSection(name string) *Section {
	return newSectionFromList(name, newEntryList())
}

func newSectionFromList(name string, list *entryList) *Section {
	s := &Section{name: name, async: newAsyncDomain()}
	s.entries.Store(list)
	return s
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// String renders the section header followed by one line per stored value.
func (s *Section) String() string {
	list := s.entries.Load()
	lines := []string{"[" + s.name + "]"}
	for _, e := range list.entries {
		lines = append(lines, e.Lines()...)
	}
	return strings.Join(lines, "\n")
}

// Async returns the context-aware accessor set of this section, serialized by
// its own lock. Async calls are not ordered against the plain methods.
func (s *Section) Async() *AsyncSection {
	return &AsyncSection{v: sectionView{s: s, d: s.async}}
}

func (s *Section) view() sectionView {
	return sectionView{s: s, d: &s.rw}
}

var bg = context.Background()

// GetEntry returns the raw entry stored under key.
func (s *Section) GetEntry(key string) (Entry, error) { return s.view().entry(bg, key) }

// GetValue returns the value of a plain entry.
func (s *Section) GetValue(key string) (Value, error) { return s.view().plain(bg, key) }

func (s *Section) GetString(key string) (string, error) { return s.view().getString(bg, key) }

func (s *Section) GetInt(key string) (int32, error) { return s.view().getInt(bg, key) }

func (s *Section) GetFloat(key string) (float32, error) { return s.view().getFloat(bg, key) }

func (s *Section) GetBool(key string) (bool, error) { return s.view().getBool(bg, key) }

func (s *Section) GetStruct(key string) (StructValue, error) { return s.view().getStruct(bg, key) }

// GetArray returns the native values of a comma-separated or repeated-line array.
func (s *Section) GetArray(key string) ([]any, error) { return s.view().getArray(bg, key) }

// GetIndexedArray returns the native values of an indexed array by index.
func (s *Section) GetIndexedArray(key string) (map[int32]any, error) {
	return s.view().getIndexed(bg, key)
}

// GetMap returns the native values of a named map by name.
func (s *Section) GetMap(key string) (map[string]any, error) { return s.view().getMap(bg, key) }

// SetValue stores v as a plain entry. An existing entry must be plain.
func (s *Section) SetValue(key string, v Value) error { return s.view().setPlain(bg, key, v) }

func (s *Section) SetString(key, v string) error { return s.view().setPlain(bg, key, String(v)) }

func (s *Section) SetInt(key string, v int32) error { return s.view().setPlain(bg, key, Int(v)) }

func (s *Section) SetFloat(key string, v float32) error {
	return s.view().setPlain(bg, key, Float(v))
}

// SetBool keeps the capitalization of an existing boolean; new values render as True/False.
func (s *Section) SetBool(key string, v bool) error { return s.view().setBool(bg, key, v) }

func (s *Section) SetStruct(key string, v StructValue) error {
	return s.view().setPlain(bg, key, v)
}

// SetArray replaces the values of an array, keeping its comma or repeated-line
// form. A missing key is created as a comma-separated array.
func (s *Section) SetArray(key string, values ...Value) error {
	return s.view().setArray(bg, key, values)
}

func (s *Section) SetIndexedArray(key string, values map[int32]Value) error {
	return s.view().setIndexed(bg, key, values)
}

func (s *Section) SetMap(key string, values ...NamedValue) error {
	return s.view().setMap(bg, key, values)
}

// AddValue inserts a plain entry, failing with ErrDuplicateKey if key exists.
func (s *Section) AddValue(key string, v Value) error {
	return s.view().add(bg, PlainEntry{Name: key, Value: v})
}

func (s *Section) AddString(key, v string) error { return s.AddValue(key, String(v)) }

func (s *Section) AddInt(key string, v int32) error { return s.AddValue(key, Int(v)) }

func (s *Section) AddFloat(key string, v float32) error { return s.AddValue(key, Float(v)) }

func (s *Section) AddBool(key string, v bool) error { return s.AddValue(key, Bool(v, true)) }

func (s *Section) AddStruct(key string, v StructValue) error { return s.AddValue(key, v) }

func (s *Section) AddArray(key string, values ...Value) error {
	return s.view().add(bg, NewCommaArray(key, values...))
}

func (s *Section) AddRepeatedArray(key string, values ...Value) error {
	return s.view().add(bg, NewRepeatedArray(key, values...))
}

func (s *Section) AddIndexedArray(key string, values map[int32]Value) error {
	return s.view().add(bg, NewIndexedArray(key, values))
}

func (s *Section) AddMap(key string, values ...NamedValue) error {
	return s.view().add(bg, NewNamedMap(key, values...))
}

// AddEntry inserts a prebuilt entry under its own key.
func (s *Section) AddEntry(e Entry) error { return s.view().add(bg, e) }

// Delete removes key, failing with ErrNotFound if absent.
func (s *Section) Delete(key string) error { return s.view().remove(bg, key) }

func (s *Section) Has(key string) bool {
	ok, _ := s.view().has(bg, key)
	return ok
}

// KeyKind reports the entry kind stored under key.
func (s *Section) KeyKind(key string) (EntryKind, bool) {
	kind, ok, _ := s.view().keyKind(bg, key)
	return kind, ok
}

// Clear removes every entry.
func (s *Section) Clear() { _ = s.view().clear(bg) }

func (s *Section) IsEmpty() bool { return s.Len() == 0 }

func (s *Section) Len() int {
	n, _ := s.view().length(bg)
	return n
}

// Keys returns the keys in order of first introduction.
func (s *Section) Keys() []string {
	keys, _ := s.view().keys(bg)
	return keys
}

// Entries returns a copy of the entry list.
func (s *Section) Entries() []Entry {
	entries, _ := s.view().all(bg)
	return entries
}
