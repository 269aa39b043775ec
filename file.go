// FILE: lixenwraith/gameini/file.go
package gameini

import (
	"context"
	"strings"
	"sync/atomic"
)

// File is an ordered, name-unique collection of sections.
// All methods are safe for concurrent use; see Async for the context-aware
// calling convention.
type File struct {
	sections atomic.Pointer[[]*Section]
	rw       syncDomain
	async    *asyncDomain
}

func newFile() *File {
	f := &File{async: newAsyncDomain()}
	empty := []*Section{}
	f.sections.Store(&empty)
	return f
}

// NewFile creates a file holding sections in the given order.
// Section names must be unique; a repeated name fails with ErrDuplicateSection.
func NewFile(sections ...*Section) (*File, error) {
	f := newFile()
	list := make([]*Section, 0, len(sections))
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if seen[s.name] {
			return nil, duplicateSection(s.name)
		}
		seen[s.name] = true
		list = append(list, s)
	}
	f.sections.Store(&list)
	return f, nil
}

// String renders all sections separated by a blank line.
func (f *File) String() string {
	list := *f.sections.Load()
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n\n")
}

// Async returns the context-aware accessor set of this file. Value-level calls
// go through the async accessors of the target section.
func (f *File) Async() *AsyncFile {
	return &AsyncFile{v: fileView{f: f, d: f.async, async: true}}
}

func (f *File) view() fileView {
	return fileView{f: f, d: &f.rw}
}

// Section returns the named section, failing with ErrNotFound if absent.
func (f *File) Section(name string) (*Section, error) { return f.view().section(bg, name) }

func (f *File) HasSection(name string) bool {
	_, err := f.view().section(bg, name)
	return err == nil
}

// DeleteSection removes the named section, failing with ErrNotFound if absent.
func (f *File) DeleteSection(name string) error { return f.view().deleteSection(bg, name) }

// AddSection returns the named section, appending a new empty one if absent.
func (f *File) AddSection(name string) *Section { return f.GetOrCreateSection(name) }

// GetOrCreateSection returns the named section, appending a new empty one if absent.
func (f *File) GetOrCreateSection(name string) *Section {
	s, _ := f.view().getOrCreate(bg, name)
	return s
}

// AttachSection appends an existing section, failing with ErrDuplicateSection
// if the name is taken.
func (f *File) AttachSection(s *Section) error { return f.view().attach(bg, s) }

// Sections returns the sections in order.
func (f *File) Sections() []*Section {
	list, _ := f.view().list(bg)
	return list
}

func (f *File) SectionNames() []string {
	list := f.Sections()
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.name
	}
	return names
}

func (f *File) Len() int { return len(f.Sections()) }

func (f *File) GetEntry(section, key string) (Entry, error) {
	return f.view().getEntry(bg, section, key)
}

func (f *File) GetValue(section, key string) (Value, error) {
	return withSection(bg, f.view(), section, sectionView.plain, key)
}

func (f *File) GetString(section, key string) (string, error) {
	return withSection(bg, f.view(), section, sectionView.getString, key)
}

func (f *File) GetInt(section, key string) (int32, error) {
	return withSection(bg, f.view(), section, sectionView.getInt, key)
}

func (f *File) GetFloat(section, key string) (float32, error) {
	return withSection(bg, f.view(), section, sectionView.getFloat, key)
}

func (f *File) GetBool(section, key string) (bool, error) {
	return withSection(bg, f.view(), section, sectionView.getBool, key)
}

func (f *File) GetStruct(section, key string) (StructValue, error) {
	return withSection(bg, f.view(), section, sectionView.getStruct, key)
}

func (f *File) GetArray(section, key string) ([]any, error) {
	return withSection(bg, f.view(), section, sectionView.getArray, key)
}

func (f *File) GetIndexedArray(section, key string) (map[int32]any, error) {
	return withSection(bg, f.view(), section, sectionView.getIndexed, key)
}

func (f *File) GetMap(section, key string) (map[string]any, error) {
	return withSection(bg, f.view(), section, sectionView.getMap, key)
}

// SetValue stores v in the named section, creating the section if needed.
func (f *File) SetValue(section, key string, v Value) error {
	return f.view().mutate(bg, section, func(sv sectionView) error { return sv.setPlain(bg, key, v) })
}

func (f *File) SetString(section, key, v string) error { return f.SetValue(section, key, String(v)) }

func (f *File) SetInt(section, key string, v int32) error { return f.SetValue(section, key, Int(v)) }

func (f *File) SetFloat(section, key string, v float32) error {
	return f.SetValue(section, key, Float(v))
}

func (f *File) SetBool(section, key string, v bool) error {
	return f.view().mutate(bg, section, func(sv sectionView) error { return sv.setBool(bg, key, v) })
}

func (f *File) SetStruct(section, key string, v StructValue) error {
	return f.SetValue(section, key, v)
}

func (f *File) SetArray(section, key string, values ...Value) error {
	return f.view().mutate(bg, section, func(sv sectionView) error { return sv.setArray(bg, key, values) })
}

func (f *File) SetIndexedArray(section, key string, values map[int32]Value) error {
	return f.view().mutate(bg, section, func(sv sectionView) error { return sv.setIndexed(bg, key, values) })
}

func (f *File) SetMap(section, key string, values ...NamedValue) error {
	return f.view().mutate(bg, section, func(sv sectionView) error { return sv.setMap(bg, key, values) })
}

// AddValue inserts v into the named section, creating the section if needed.
func (f *File) AddValue(section, key string, v Value) error {
	return f.AddEntry(section, PlainEntry{Name: key, Value: v})
}

func (f *File) AddString(section, key, v string) error { return f.AddValue(section, key, String(v)) }

func (f *File) AddInt(section, key string, v int32) error { return f.AddValue(section, key, Int(v)) }

func (f *File) AddFloat(section, key string, v float32) error {
	return f.AddValue(section, key, Float(v))
}

func (f *File) AddBool(section, key string, v bool) error {
	return f.AddValue(section, key, Bool(v, true))
}

func (f *File) AddStruct(section, key string, v StructValue) error {
	return f.AddValue(section, key, v)
}

func (f *File) AddArray(section, key string, values ...Value) error {
	return f.AddEntry(section, NewCommaArray(key, values...))
}

func (f *File) AddRepeatedArray(section, key string, values ...Value) error {
	return f.AddEntry(section, NewRepeatedArray(key, values...))
}

func (f *File) AddIndexedArray(section, key string, values map[int32]Value) error {
	return f.AddEntry(section, NewIndexedArray(key, values))
}

func (f *File) AddMap(section, key string, values ...NamedValue) error {
	return f.AddEntry(section, NewNamedMap(key, values...))
}

func (f *File) AddEntry(section string, e Entry) error {
	return f.view().mutate(bg, section, func(sv sectionView) error { return sv.add(bg, e) })
}

// DeleteValue removes key from the named section. Neither is created.
func (f *File) DeleteValue(section, key string) error {
	_, err := withSection(bg, f.view(), section, func(sv sectionView, ctx context.Context, key string) (struct{}, error) {
		return struct{}{}, sv.remove(ctx, key)
	}, key)
	return err
}
