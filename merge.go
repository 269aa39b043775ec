// FILE: lixenwraith/gameini/merge.go
package gameini

// mergeEntry folds a later entry for the same key into an earlier one.
//   - indexed + indexed: union, later index wins
//   - named + named: union, later name wins
//   - plain + plain: repeated-line array of both
//   - repeated + plain: value appended
//   - repeated + repeated: values concatenated
//   - anything else, comma arrays included: later entry replaces earlier
func mergeEntry(prev, next Entry) Entry {
	switch p := prev.(type) {
	case IndexedArrayEntry:
		if n, ok := next.(IndexedArrayEntry); ok {
			merged := NewIndexedArray(p.Name, p.Values)
			for idx, v := range n.Values {
				merged.Values[idx] = v
			}
			return merged
		}
	case NamedMapEntry:
		if n, ok := next.(NamedMapEntry); ok {
			return NamedMapEntry{Name: p.Name, Values: mergeNamed(p.Values, n.Values)}
		}
	case PlainEntry:
		if n, ok := next.(PlainEntry); ok {
			return NewRepeatedArray(p.Name, p.Value, n.Value)
		}
	case RepeatedArrayEntry:
		switch n := next.(type) {
		case PlainEntry:
			return NewRepeatedArray(p.Name, append(append([]Value(nil), p.Values...), n.Value)...)
		case RepeatedArrayEntry:
			return NewRepeatedArray(p.Name, append(append([]Value(nil), p.Values...), n.Values...)...)
		}
	}
	return next
}

// entryList is an ordered, key-unique list of entries with a key index.
// Published lists are never mutated; writers build a copy.
type entryList struct {
	entries []Entry
	index   map[string]int
}

func newEntryList() *entryList {
	return &entryList{index: make(map[string]int)}
}

func (l *entryList) get(key string) (Entry, bool) {
	i, ok := l.index[key]
	if !ok {
		return nil, false
	}
	return l.entries[i], true
}

func (l *entryList) len() int {
	return len(l.entries)
}

// fold merges e into the list in place, keeping the position of the first
// entry with the same key. Only used while the list is still private.
func (l *entryList) fold(e Entry) {
	if i, ok := l.index[e.Key()]; ok {
		l.entries[i] = mergeEntry(l.entries[i], e)
		return
	}
	l.index[e.Key()] = len(l.entries)
	l.entries = append(l.entries, e)
}

// with returns a copy holding e, replacing any entry with the same key in place.
func (l *entryList) with(e Entry) *entryList {
	out := &entryList{
		entries: append(make([]Entry, 0, len(l.entries)+1), l.entries...),
		index:   make(map[string]int, len(l.index)+1),
	}
	for k, v := range l.index {
		out.index[k] = v
	}
	if i, ok := out.index[e.Key()]; ok {
		out.entries[i] = e
		return out
	}
	out.index[e.Key()] = len(out.entries)
	out.entries = append(out.entries, e)
	return out
}

// without returns a copy lacking key.
func (l *entryList) without(key string) *entryList {
	out := &entryList{
		entries: make([]Entry, 0, len(l.entries)),
		index:   make(map[string]int, len(l.index)),
	}
	for _, e := range l.entries {
		if e.Key() == key {
			continue
		}
		out.index[e.Key()] = len(out.entries)
		out.entries = append(out.entries, e)
	}
	return out
}
