// FILE: lixenwraith/gameini/entry.go
package gameini

import (
	"fmt"
	"sort"
	"strconv"
)

// EntryKind identifies how an Entry stores and renders its values
type EntryKind int

const (
	EntryPlain EntryKind = iota
	EntryCommaArray
	EntryRepeatedArray
	EntryIndexedArray
	EntryNamedMap
)

func (k EntryKind) String() string {
	switch k {
	case EntryPlain:
		return "plain"
	case EntryCommaArray:
		return "comma-separated array"
	case EntryRepeatedArray:
		return "repeated-line array"
	case EntryIndexedArray:
		return "indexed array"
	case EntryNamedMap:
		return "named map"
	}
	return fmt.Sprintf("EntryKind(%d)", int(k))
}

// Entry is everything stored under one key of a section.
// Implementations are closed and treated as immutable once built.
type Entry interface {
	Key() string
	Kind() EntryKind
	// Lines renders the entry, one element per output line
	Lines() []string
	sealed()
}

// PlainEntry is key=value
type PlainEntry struct {
	Name  string
	Value Value
}

// CommaArrayEntry is key=v1,v2,...
type CommaArrayEntry struct {
	Name   string
	Values []Value
}

// RepeatedArrayEntry is the key=v line repeated once per value
type RepeatedArrayEntry struct {
	Name   string
	Values []Value
}

// IndexedArrayEntry is the key[i]=v family. It is sparse and renders by ascending index.
type IndexedArrayEntry struct {
	Name   string
	Values map[int32]Value
}

// NamedValue is one member of a named map
type NamedValue struct {
	Name  string
	Value Value
}

// NamedMapEntry is the key[name]=v family, ordered by first appearance.
type NamedMapEntry struct {
	Name   string
	Values []NamedValue
}

func (e PlainEntry) Key() string         { return e.Name }
func (e CommaArrayEntry) Key() string    { return e.Name }
func (e RepeatedArrayEntry) Key() string { return e.Name }
func (e IndexedArrayEntry) Key() string  { return e.Name }
func (e NamedMapEntry) Key() string      { return e.Name }

func (PlainEntry) Kind() EntryKind         { return EntryPlain }
func (CommaArrayEntry) Kind() EntryKind    { return EntryCommaArray }
func (RepeatedArrayEntry) Kind() EntryKind { return EntryRepeatedArray }
func (IndexedArrayEntry) Kind() EntryKind  { return EntryIndexedArray }
func (NamedMapEntry) Kind() EntryKind      { return EntryNamedMap }

func (PlainEntry) sealed()         {}
func (CommaArrayEntry) sealed()    {}
func (RepeatedArrayEntry) sealed() {}
func (IndexedArrayEntry) sealed()  {}
func (NamedMapEntry) sealed()      {}

func (e PlainEntry) Lines() []string {
	return []string{e.Name + "=" + formatOf(e.Value)}
}

// Lines drops trailing empty values and keeps empty ones between filled values,
// so positions stay aligned.
func (e CommaArrayEntry) Lines() []string {
	parts := make([]string, len(e.Values))
	last := -1
	for i, v := range e.Values {
		parts[i] = formatOf(v)
		if parts[i] != "" {
			last = i
		}
	}
	line := e.Name + "="
	for i := 0; i <= last; i++ {
		if i > 0 {
			line += ","
		}
		line += parts[i]
	}
	return []string{line}
}

func (e RepeatedArrayEntry) Lines() []string {
	lines := make([]string, len(e.Values))
	for i, v := range e.Values {
		lines[i] = e.Name + "=" + formatOf(v)
	}
	return lines
}

func (e IndexedArrayEntry) Lines() []string {
	indexes := e.Indexes()
	lines := make([]string, len(indexes))
	for i, idx := range indexes {
		lines[i] = e.Name + "[" + strconv.FormatInt(int64(idx), 10) + "]=" + formatOf(e.Values[idx])
	}
	return lines
}

// Indexes returns the populated indexes in ascending order.
func (e IndexedArrayEntry) Indexes() []int32 {
	indexes := make([]int32, 0, len(e.Values))
	for idx := range e.Values {
		indexes = append(indexes, idx)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })
	return indexes
}

func (e NamedMapEntry) Lines() []string {
	lines := make([]string, len(e.Values))
	for i, nv := range e.Values {
		lines[i] = e.Name + "[" + nv.Name + "]=" + formatOf(nv.Value)
	}
	return lines
}

// Get returns the value stored under name.
func (e NamedMapEntry) Get(name string) (Value, bool) {
	for _, nv := range e.Values {
		if nv.Name == name {
			return nv.Value, true
		}
	}
	return nil, false
}

// NewCommaArray copies values into a new comma-separated array entry.
func NewCommaArray(key string, values ...Value) CommaArrayEntry {
	return CommaArrayEntry{Name: key, Values: cloneValues(values)}
}

// NewRepeatedArray copies values into a new repeated-line array entry.
func NewRepeatedArray(key string, values ...Value) RepeatedArrayEntry {
	return RepeatedArrayEntry{Name: key, Values: cloneValues(values)}
}

// NewIndexedArray copies values into a new indexed array entry.
func NewIndexedArray(key string, values map[int32]Value) IndexedArrayEntry {
	out := make(map[int32]Value, len(values))
	for idx, v := range values {
		out[idx] = cloneValue(v)
	}
	return IndexedArrayEntry{Name: key, Values: out}
}

// NewNamedMap builds a named map entry. A repeated name keeps its first
// position and takes the later value.
func NewNamedMap(key string, values ...NamedValue) NamedMapEntry {
	cloned := make([]NamedValue, len(values))
	for i, nv := range values {
		cloned[i] = NamedValue{Name: nv.Name, Value: cloneValue(nv.Value)}
	}
	return NamedMapEntry{Name: key, Values: mergeNamed(nil, cloned)}
}

func cloneValues(values []Value) []Value {
	if values == nil {
		return nil
	}
	out := make([]Value, len(values))
	for i, v := range values {
		out[i] = cloneValue(v)
	}
	return out
}

// cloneEntry copies the slices, maps and struct fields held by e, so the
// copy shares no mutable state with it.
func cloneEntry(e Entry) Entry {
	switch e := e.(type) {
	case PlainEntry:
		return PlainEntry{Name: e.Name, Value: cloneValue(e.Value)}
	case CommaArrayEntry:
		return NewCommaArray(e.Name, e.Values...)
	case RepeatedArrayEntry:
		return NewRepeatedArray(e.Name, e.Values...)
	case IndexedArrayEntry:
		return NewIndexedArray(e.Name, e.Values)
	case NamedMapEntry:
		values := make([]NamedValue, len(e.Values))
		for i, nv := range e.Values {
			values[i] = NamedValue{Name: nv.Name, Value: cloneValue(nv.Value)}
		}
		return NamedMapEntry{Name: e.Name, Values: values}
	}
	return e
}

func mergeNamed(dst, src []NamedValue) []NamedValue {
	out := append([]NamedValue(nil), dst...)
outer:
	for _, nv := range src {
		for i := range out {
			if out[i].Name == nv.Name {
				out[i].Value = nv.Value
				continue outer
			}
		}
		out = append(out, nv)
	}
	return out
}

// nativeValues converts array values to their plain Go form.
func nativeValues(values []Value) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = nativeOf(v)
	}
	return out
}
