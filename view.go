// FILE: lixenwraith/gameini/view.go
package gameini

import (
	"context"
)

// sectionView runs section operations under one lock domain.
type sectionView struct {
	s *Section
	d domain
}

func (v sectionView) read(ctx context.Context, fn func(*entryList) error) error {
	if err := v.d.rlock(ctx); err != nil {
		return err
	}
	defer v.d.runlock()
	return fn(v.s.entries.Load())
}

// write publishes the list returned by fn; a nil list leaves the section
// unchanged. fn is run again if a writer of the other domain published first.
func (v sectionView) write(ctx context.Context, fn func(*entryList) (*entryList, error)) error {
	if err := v.d.lock(ctx); err != nil {
		return err
	}
	defer v.d.unlock()
	for {
		cur := v.s.entries.Load()
		next, err := fn(cur)
		if err != nil || next == nil {
			return err
		}
		if v.s.entries.CompareAndSwap(cur, next) {
			return nil
		}
	}
}

func (v sectionView) entry(ctx context.Context, key string) (Entry, error) {
	var out Entry
	err := v.read(ctx, func(l *entryList) error {
		e, ok := l.get(key)
		if !ok {
			return notFound(v.s.name, key)
		}
		out = cloneEntry(e)
		return nil
	})
	return out, err
}

func (v sectionView) plain(ctx context.Context, key string) (Value, error) {
	e, err := v.entry(ctx, key)
	if err != nil {
		return nil, err
	}
	pe, ok := e.(PlainEntry)
	if !ok {
		return nil, mismatch(v.s.name, key, EntryPlain.String(), e.Kind().String())
	}
	return pe.Value, nil
}

// scalar fetches a plain value and checks its variant.
func (v sectionView) scalar(ctx context.Context, key string, want ValueKind) (Value, error) {
	val, err := v.plain(ctx, key)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, mismatch(v.s.name, key, want.String(), "null")
	}
	if val.Kind() != want {
		return nil, mismatch(v.s.name, key, want.String(), val.Kind().String())
	}
	return val, nil
}

func (v sectionView) getString(ctx context.Context, key string) (string, error) {
	val, err := v.scalar(ctx, key, KindString)
	if err != nil {
		return "", err
	}
	return val.(StringValue).Text, nil
}

func (v sectionView) getInt(ctx context.Context, key string) (int32, error) {
	val, err := v.scalar(ctx, key, KindInt)
	if err != nil {
		return 0, err
	}
	return val.(IntValue).N, nil
}

func (v sectionView) getFloat(ctx context.Context, key string) (float32, error) {
	val, err := v.scalar(ctx, key, KindFloat)
	if err != nil {
		return 0, err
	}
	return val.(FloatValue).N, nil
}

func (v sectionView) getBool(ctx context.Context, key string) (bool, error) {
	val, err := v.scalar(ctx, key, KindBool)
	if err != nil {
		return false, err
	}
	return val.(BoolValue).B, nil
}

func (v sectionView) getStruct(ctx context.Context, key string) (StructValue, error) {
	val, err := v.scalar(ctx, key, KindStruct)
	if err != nil {
		return StructValue{}, err
	}
	return val.(StructValue), nil
}

func (v sectionView) getArray(ctx context.Context, key string) ([]any, error) {
	e, err := v.entry(ctx, key)
	if err != nil {
		return nil, err
	}
	switch a := e.(type) {
	case CommaArrayEntry:
		return nativeValues(a.Values), nil
	case RepeatedArrayEntry:
		return nativeValues(a.Values), nil
	}
	return nil, mismatch(v.s.name, key, "array", e.Kind().String())
}

func (v sectionView) getIndexed(ctx context.Context, key string) (map[int32]any, error) {
	e, err := v.entry(ctx, key)
	if err != nil {
		return nil, err
	}
	a, ok := e.(IndexedArrayEntry)
	if !ok {
		return nil, mismatch(v.s.name, key, EntryIndexedArray.String(), e.Kind().String())
	}
	out := make(map[int32]any, len(a.Values))
	for idx, val := range a.Values {
		out[idx] = nativeOf(val)
	}
	return out, nil
}

func (v sectionView) getMap(ctx context.Context, key string) (map[string]any, error) {
	e, err := v.entry(ctx, key)
	if err != nil {
		return nil, err
	}
	m, ok := e.(NamedMapEntry)
	if !ok {
		return nil, mismatch(v.s.name, key, EntryNamedMap.String(), e.Kind().String())
	}
	out := make(map[string]any, len(m.Values))
	for _, nv := range m.Values {
		out[nv.Name] = nativeOf(nv.Value)
	}
	return out, nil
}

// setPlainWith stores build(previous) as a plain entry; previous is nil for a new key.
func (v sectionView) setPlainWith(ctx context.Context, key string, build func(prev Value) Value) error {
	return v.write(ctx, func(l *entryList) (*entryList, error) {
		var prev Value
		if cur, ok := l.get(key); ok {
			pe, isPlain := cur.(PlainEntry)
			if !isPlain {
				return nil, mismatch(v.s.name, key, EntryPlain.String(), cur.Kind().String())
			}
			prev = pe.Value
		}
		return l.with(PlainEntry{Name: key, Value: cloneValue(build(prev))}), nil
	})
}

func (v sectionView) setPlain(ctx context.Context, key string, val Value) error {
	return v.setPlainWith(ctx, key, func(Value) Value { return val })
}

func (v sectionView) setBool(ctx context.Context, key string, b bool) error {
	return v.setPlainWith(ctx, key, func(prev Value) Value {
		if pb, ok := prev.(BoolValue); ok {
			return Bool(b, pb.Capitalized)
		}
		return Bool(b, true)
	})
}

func (v sectionView) setArray(ctx context.Context, key string, values []Value) error {
	return v.write(ctx, func(l *entryList) (*entryList, error) {
		cur, ok := l.get(key)
		if !ok {
			return l.with(NewCommaArray(key, values...)), nil
		}
		switch cur.(type) {
		case CommaArrayEntry:
			return l.with(NewCommaArray(key, values...)), nil
		case RepeatedArrayEntry:
			return l.with(NewRepeatedArray(key, values...)), nil
		}
		return nil, mismatch(v.s.name, key, "array", cur.Kind().String())
	})
}

// setKind stores e, requiring any existing entry under its key to be of the same kind.
func (v sectionView) setKind(ctx context.Context, e Entry) error {
	e = cloneEntry(e)
	return v.write(ctx, func(l *entryList) (*entryList, error) {
		if cur, ok := l.get(e.Key()); ok && cur.Kind() != e.Kind() {
			return nil, mismatch(v.s.name, e.Key(), e.Kind().String(), cur.Kind().String())
		}
		return l.with(e), nil
	})
}

func (v sectionView) setIndexed(ctx context.Context, key string, values map[int32]Value) error {
	return v.setKind(ctx, NewIndexedArray(key, values))
}

func (v sectionView) setMap(ctx context.Context, key string, values []NamedValue) error {
	return v.setKind(ctx, NewNamedMap(key, values...))
}

// add stores a copy of e, so the caller keeps no handle on stored state.
func (v sectionView) add(ctx context.Context, e Entry) error {
	e = cloneEntry(e)
	return v.write(ctx, func(l *entryList) (*entryList, error) {
		if _, ok := l.get(e.Key()); ok {
			return nil, duplicateKey(v.s.name, e.Key())
		}
		return l.with(e), nil
	})
}

func (v sectionView) remove(ctx context.Context, key string) error {
	return v.write(ctx, func(l *entryList) (*entryList, error) {
		if _, ok := l.get(key); !ok {
			return nil, notFound(v.s.name, key)
		}
		return l.without(key), nil
	})
}

func (v sectionView) has(ctx context.Context, key string) (bool, error) {
	var ok bool
	err := v.read(ctx, func(l *entryList) error {
		_, ok = l.get(key)
		return nil
	})
	return ok, err
}

func (v sectionView) keyKind(ctx context.Context, key string) (EntryKind, bool, error) {
	var (
		kind EntryKind
		ok   bool
	)
	err := v.read(ctx, func(l *entryList) error {
		var e Entry
		if e, ok = l.get(key); ok {
			kind = e.Kind()
		}
		return nil
	})
	return kind, ok, err
}

func (v sectionView) clear(ctx context.Context) error {
	return v.write(ctx, func(*entryList) (*entryList, error) {
		return newEntryList(), nil
	})
}

func (v sectionView) length(ctx context.Context) (int, error) {
	var n int
	err := v.read(ctx, func(l *entryList) error {
		n = l.len()
		return nil
	})
	return n, err
}

func (v sectionView) keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := v.read(ctx, func(l *entryList) error {
		keys = make([]string, len(l.entries))
		for i, e := range l.entries {
			keys[i] = e.Key()
		}
		return nil
	})
	return keys, err
}

func (v sectionView) all(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := v.read(ctx, func(l *entryList) error {
		entries = make([]Entry, len(l.entries))
		for i, e := range l.entries {
			entries[i] = cloneEntry(e)
		}
		return nil
	})
	return entries, err
}

// AsyncSection is the context-aware accessor set of a Section. Calls are
// serialized among themselves by a single-owner lock and block only while
// acquiring it; a context cancelled before acquisition returns ctx.Err() and
// changes nothing. Async and plain Section calls do not exclude each other.
type AsyncSection struct {
	v sectionView
}

func (a *AsyncSection) Section() *Section { return a.v.s }

func (a *AsyncSection) GetEntry(ctx context.Context, key string) (Entry, error) {
	return a.v.entry(ctx, key)
}

func (a *AsyncSection) GetValue(ctx context.Context, key string) (Value, error) {
	return a.v.plain(ctx, key)
}

func (a *AsyncSection) GetString(ctx context.Context, key string) (string, error) {
	return a.v.getString(ctx, key)
}

func (a *AsyncSection) GetInt(ctx context.Context, key string) (int32, error) {
	return a.v.getInt(ctx, key)
}

func (a *AsyncSection) GetFloat(ctx context.Context, key string) (float32, error) {
	return a.v.getFloat(ctx, key)
}

func (a *AsyncSection) GetBool(ctx context.Context, key string) (bool, error) {
	return a.v.getBool(ctx, key)
}

func (a *AsyncSection) GetStruct(ctx context.Context, key string) (StructValue, error) {
	return a.v.getStruct(ctx, key)
}

func (a *AsyncSection) GetArray(ctx context.Context, key string) ([]any, error) {
	return a.v.getArray(ctx, key)
}

func (a *AsyncSection) GetIndexedArray(ctx context.Context, key string) (map[int32]any, error) {
	return a.v.getIndexed(ctx, key)
}

func (a *AsyncSection) GetMap(ctx context.Context, key string) (map[string]any, error) {
	return a.v.getMap(ctx, key)
}

func (a *AsyncSection) SetValue(ctx context.Context, key string, v Value) error {
	return a.v.setPlain(ctx, key, v)
}

func (a *AsyncSection) SetString(ctx context.Context, key, v string) error {
	return a.v.setPlain(ctx, key, String(v))
}

func (a *AsyncSection) SetInt(ctx context.Context, key string, v int32) error {
	return a.v.setPlain(ctx, key, Int(v))
}

func (a *AsyncSection) SetFloat(ctx context.Context, key string, v float32) error {
	return a.v.setPlain(ctx, key, Float(v))
}

func (a *AsyncSection) SetBool(ctx context.Context, key string, v bool) error {
	return a.v.setBool(ctx, key, v)
}

func (a *AsyncSection) SetStruct(ctx context.Context, key string, v StructValue) error {
	return a.v.setPlain(ctx, key, v)
}

func (a *AsyncSection) SetArray(ctx context.Context, key string, values ...Value) error {
	return a.v.setArray(ctx, key, values)
}

func (a *AsyncSection) SetIndexedArray(ctx context.Context, key string, values map[int32]Value) error {
	return a.v.setIndexed(ctx, key, values)
}

func (a *AsyncSection) SetMap(ctx context.Context, key string, values ...NamedValue) error {
	return a.v.setMap(ctx, key, values)
}

func (a *AsyncSection) AddValue(ctx context.Context, key string, v Value) error {
	return a.v.add(ctx, PlainEntry{Name: key, Value: v})
}

func (a *AsyncSection) AddString(ctx context.Context, key, v string) error {
	return a.AddValue(ctx, key, String(v))
}

func (a *AsyncSection) AddInt(ctx context.Context, key string, v int32) error {
	return a.AddValue(ctx, key, Int(v))
}

func (a *AsyncSection) AddFloat(ctx context.Context, key string, v float32) error {
	return a.AddValue(ctx, key, Float(v))
}

func (a *AsyncSection) AddBool(ctx context.Context, key string, v bool) error {
	return a.AddValue(ctx, key, Bool(v, true))
}

func (a *AsyncSection) AddStruct(ctx context.Context, key string, v StructValue) error {
	return a.AddValue(ctx, key, v)
}

func (a *AsyncSection) AddArray(ctx context.Context, key string, values ...Value) error {
	return a.v.add(ctx, NewCommaArray(key, values...))
}

func (a *AsyncSection) AddRepeatedArray(ctx context.Context, key string, values ...Value) error {
	return a.v.add(ctx, NewRepeatedArray(key, values...))
}

func (a *AsyncSection) AddIndexedArray(ctx context.Context, key string, values map[int32]Value) error {
	return a.v.add(ctx, NewIndexedArray(key, values))
}

func (a *AsyncSection) AddMap(ctx context.Context, key string, values ...NamedValue) error {
	return a.v.add(ctx, NewNamedMap(key, values...))
}

func (a *AsyncSection) AddEntry(ctx context.Context, e Entry) error {
	return a.v.add(ctx, e)
}

func (a *AsyncSection) Delete(ctx context.Context, key string) error {
	return a.v.remove(ctx, key)
}

func (a *AsyncSection) Has(ctx context.Context, key string) (bool, error) {
	return a.v.has(ctx, key)
}

func (a *AsyncSection) KeyKind(ctx context.Context, key string) (EntryKind, bool, error) {
	return a.v.keyKind(ctx, key)
}

func (a *AsyncSection) Clear(ctx context.Context) error {
	return a.v.clear(ctx)
}

func (a *AsyncSection) IsEmpty(ctx context.Context) (bool, error) {
	n, err := a.v.length(ctx)
	return n == 0, err
}

func (a *AsyncSection) Keys(ctx context.Context) ([]string, error) {
	return a.v.keys(ctx)
}

func (a *AsyncSection) Entries(ctx context.Context) ([]Entry, error) {
	return a.v.all(ctx)
}
