// FILE: lixenwraith/gameini/file_view.go
package gameini

import (
	"context"
)

// fileView runs file operations under one lock domain. Section-level work is
// done after the file lock is released, under the matching domain of the section.
type fileView struct {
	f     *File
	d     domain
	async bool
}

func (v fileView) viewOf(s *Section) sectionView {
	if v.async {
		return sectionView{s: s, d: s.async}
	}
	return sectionView{s: s, d: &s.rw}
}

func (v fileView) read(ctx context.Context, fn func([]*Section) error) error {
	if err := v.d.rlock(ctx); err != nil {
		return err
	}
	defer v.d.runlock()
	return fn(*v.f.sections.Load())
}

func (v fileView) write(ctx context.Context, fn func([]*Section) ([]*Section, error)) error {
	if err := v.d.lock(ctx); err != nil {
		return err
	}
	defer v.d.unlock()
	for {
		cur := v.f.sections.Load()
		next, err := fn(*cur)
		if err != nil || next == nil {
			return err
		}
		if v.f.sections.CompareAndSwap(cur, &next) {
			return nil
		}
	}
}

func findSection(list []*Section, name string) (int, bool) {
	for i, s := range list {
		if s.name == name {
			return i, true
		}
	}
	return -1, false
}

func (v fileView) section(ctx context.Context, name string) (*Section, error) {
	var out *Section
	err := v.read(ctx, func(list []*Section) error {
		i, ok := findSection(list, name)
		if !ok {
			return sectionNotFound(name)
		}
		out = list[i]
		return nil
	})
	return out, err
}

func (v fileView) getOrCreate(ctx context.Context, name string) (*Section, error) {
	var out *Section
	err := v.write(ctx, func(list []*Section) ([]*Section, error) {
		if i, ok := findSection(list, name); ok {
			out = list[i]
			return nil, nil
		}
		out = NewSection(name)
		return append(append(make([]*Section, 0, len(list)+1), list...), out), nil
	})
	return out, err
}

func (v fileView) attach(ctx context.Context, s *Section) error {
	return v.write(ctx, func(list []*Section) ([]*Section, error) {
		if _, ok := findSection(list, s.name); ok {
			return nil, duplicateSection(s.name)
		}
		return append(append(make([]*Section, 0, len(list)+1), list...), s), nil
	})
}

func (v fileView) deleteSection(ctx context.Context, name string) error {
	return v.write(ctx, func(list []*Section) ([]*Section, error) {
		i, ok := findSection(list, name)
		if !ok {
			return nil, sectionNotFound(name)
		}
		next := make([]*Section, 0, len(list)-1)
		next = append(next, list[:i]...)
		return append(next, list[i+1:]...), nil
	})
}

func (v fileView) list(ctx context.Context) ([]*Section, error) {
	var out []*Section
	err := v.read(ctx, func(list []*Section) error {
		out = append([]*Section(nil), list...)
		return nil
	})
	return out, err
}

func (v fileView) getEntry(ctx context.Context, section, key string) (Entry, error) {
	return withSection(ctx, v, section, sectionView.entry, key)
}

// mutate runs fn against the named section, creating it first if absent.
func (v fileView) mutate(ctx context.Context, section string, fn func(sectionView) error) error {
	s, err := v.getOrCreate(ctx, section)
	if err != nil {
		return err
	}
	return fn(v.viewOf(s))
}

// withSection runs a section read against an existing section only.
func withSection[T any](ctx context.Context, v fileView, section string,
	op func(sectionView, context.Context, string) (T, error), key string) (T, error) {
	s, err := v.section(ctx, section)
	if err != nil {
		var zero T
		return zero, err
	}
	return op(v.viewOf(s), ctx, key)
}

// AsyncFile is the context-aware accessor set of a File; see AsyncSection for
// the locking contract.
type AsyncFile struct {
	v fileView
}

func (a *AsyncFile) File() *File { return a.v.f }

func (a *AsyncFile) Section(ctx context.Context, name string) (*Section, error) {
	return a.v.section(ctx, name)
}

func (a *AsyncFile) HasSection(ctx context.Context, name string) (bool, error) {
	_, err := a.v.section(ctx, name)
	if err != nil && ctx.Err() != nil {
		return false, err
	}
	return err == nil, nil
}

func (a *AsyncFile) DeleteSection(ctx context.Context, name string) error {
	return a.v.deleteSection(ctx, name)
}

func (a *AsyncFile) AddSection(ctx context.Context, name string) (*Section, error) {
	return a.v.getOrCreate(ctx, name)
}

func (a *AsyncFile) GetOrCreateSection(ctx context.Context, name string) (*Section, error) {
	return a.v.getOrCreate(ctx, name)
}

func (a *AsyncFile) AttachSection(ctx context.Context, s *Section) error {
	return a.v.attach(ctx, s)
}

func (a *AsyncFile) Sections(ctx context.Context) ([]*Section, error) {
	return a.v.list(ctx)
}

func (a *AsyncFile) GetEntry(ctx context.Context, section, key string) (Entry, error) {
	return a.v.getEntry(ctx, section, key)
}

func (a *AsyncFile) GetValue(ctx context.Context, section, key string) (Value, error) {
	return withSection(ctx, a.v, section, sectionView.plain, key)
}

func (a *AsyncFile) GetString(ctx context.Context, section, key string) (string, error) {
	return withSection(ctx, a.v, section, sectionView.getString, key)
}

func (a *AsyncFile) GetInt(ctx context.Context, section, key string) (int32, error) {
	return withSection(ctx, a.v, section, sectionView.getInt, key)
}

func (a *AsyncFile) GetFloat(ctx context.Context, section, key string) (float32, error) {
	return withSection(ctx, a.v, section, sectionView.getFloat, key)
}

func (a *AsyncFile) GetBool(ctx context.Context, section, key string) (bool, error) {
	return withSection(ctx, a.v, section, sectionView.getBool, key)
}

func (a *AsyncFile) GetStruct(ctx context.Context, section, key string) (StructValue, error) {
	return withSection(ctx, a.v, section, sectionView.getStruct, key)
}

func (a *AsyncFile) GetArray(ctx context.Context, section, key string) ([]any, error) {
	return withSection(ctx, a.v, section, sectionView.getArray, key)
}

func (a *AsyncFile) GetIndexedArray(ctx context.Context, section, key string) (map[int32]any, error) {
	return withSection(ctx, a.v, section, sectionView.getIndexed, key)
}

func (a *AsyncFile) GetMap(ctx context.Context, section, key string) (map[string]any, error) {
	return withSection(ctx, a.v, section, sectionView.getMap, key)
}

func (a *AsyncFile) SetValue(ctx context.Context, section, key string, v Value) error {
	return a.v.mutate(ctx, section, func(sv sectionView) error { return sv.setPlain(ctx, key, v) })
}

func (a *AsyncFile) SetString(ctx context.Context, section, key, v string) error {
	return a.SetValue(ctx, section, key, String(v))
}

func (a *AsyncFile) SetInt(ctx context.Context, section, key string, v int32) error {
	return a.SetValue(ctx, section, key, Int(v))
}

func (a *AsyncFile) SetFloat(ctx context.Context, section, key string, v float32) error {
	return a.SetValue(ctx, section, key, Float(v))
}

func (a *AsyncFile) SetBool(ctx context.Context, section, key string, v bool) error {
	return a.v.mutate(ctx, section, func(sv sectionView) error { return sv.setBool(ctx, key, v) })
}

func (a *AsyncFile) SetStruct(ctx context.Context, section, key string, v StructValue) error {
	return a.SetValue(ctx, section, key, v)
}

func (a *AsyncFile) SetArray(ctx context.Context, section, key string, values ...Value) error {
	return a.v.mutate(ctx, section, func(sv sectionView) error { return sv.setArray(ctx, key, values) })
}

func (a *AsyncFile) SetIndexedArray(ctx context.Context, section, key string, values map[int32]Value) error {
	return a.v.mutate(ctx, section, func(sv sectionView) error { return sv.setIndexed(ctx, key, values) })
}

func (a *AsyncFile) SetMap(ctx context.Context, section, key string, values ...NamedValue) error {
	return a.v.mutate(ctx, section, func(sv sectionView) error { return sv.setMap(ctx, key, values) })
}

func (a *AsyncFile) AddEntry(ctx context.Context, section string, e Entry) error {
	return a.v.mutate(ctx, section, func(sv sectionView) error { return sv.add(ctx, e) })
}

func (a *AsyncFile) AddValue(ctx context.Context, section, key string, v Value) error {
	return a.AddEntry(ctx, section, PlainEntry{Name: key, Value: v})
}

func (a *AsyncFile) AddString(ctx context.Context, section, key, v string) error {
	return a.AddValue(ctx, section, key, String(v))
}

func (a *AsyncFile) AddInt(ctx context.Context, section, key string, v int32) error {
	return a.AddValue(ctx, section, key, Int(v))
}

func (a *AsyncFile) AddFloat(ctx context.Context, section, key string, v float32) error {
	return a.AddValue(ctx, section, key, Float(v))
}

func (a *AsyncFile) AddBool(ctx context.Context, section, key string, v bool) error {
	return a.AddValue(ctx, section, key, Bool(v, true))
}

func (a *AsyncFile) AddStruct(ctx context.Context, section, key string, v StructValue) error {
	return a.AddValue(ctx, section, key, v)
}

func (a *AsyncFile) AddArray(ctx context.Context, section, key string, values ...Value) error {
	return a.AddEntry(ctx, section, NewCommaArray(key, values...))
}

func (a *AsyncFile) AddRepeatedArray(ctx context.Context, section, key string, values ...Value) error {
	return a.AddEntry(ctx, section, NewRepeatedArray(key, values...))
}

func (a *AsyncFile) AddIndexedArray(ctx context.Context, section, key string, values map[int32]Value) error {
	return a.AddEntry(ctx, section, NewIndexedArray(key, values))
}

func (a *AsyncFile) AddMap(ctx context.Context, section, key string, values ...NamedValue) error {
	return a.AddEntry(ctx, section, NewNamedMap(key, values...))
}

func (a *AsyncFile) DeleteValue(ctx context.Context, section, key string) error {
	_, err := withSection(ctx, a.v, section, func(sv sectionView, ctx context.Context, key string) (struct{}, error) {
		return struct{}{}, sv.remove(ctx, key)
	}, key)
	return err
}
