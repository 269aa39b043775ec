// FILE: lixenwraith/gameini/export.go
package gameini

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatINI  = "ini"
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ToMap returns the section as plain Go data keyed by entry key. Plain entries
// hold their native value, arrays a []any, indexed arrays and named maps a
// map[string]any (indexes in decimal).
func (s *Section) ToMap() map[string]any {
	list := s.entries.Load()
	out := make(map[string]any, len(list.entries))
	for _, e := range list.entries {
		out[e.Key()] = entryNative(e)
	}
	return out
}

// ToMap returns the file as plain Go data keyed by section name.
func (f *File) ToMap() map[string]any {
	list := *f.sections.Load()
	out := make(map[string]any, len(list))
	for _, s := range list {
		out[s.name] = s.ToMap()
	}
	return out
}

func entryNative(e Entry) any {
	switch e := e.(type) {
	case PlainEntry:
		return nativeOf(e.Value)
	case CommaArrayEntry:
		return nativeValues(e.Values)
	case RepeatedArrayEntry:
		return nativeValues(e.Values)
	case IndexedArrayEntry:
		m := make(map[string]any, len(e.Values))
		for idx, v := range e.Values {
			m[strconv.FormatInt(int64(idx), 10)] = nativeOf(v)
		}
		return m
	case NamedMapEntry:
		m := make(map[string]any, len(e.Values))
		for _, nv := range e.Values {
			m[nv.Name] = nativeOf(nv.Value)
		}
		return m
	}
	return nil
}

// Export writes the file to w in the given format: ini, toml, yaml or json.
func (f *File) Export(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatINI:
		_, err := f.WriteTo(w)
		return err
	case FormatTOML:
		// TOML has no null; nulls export as empty strings
		if err := toml.NewEncoder(w).Encode(withoutNulls(f.ToMap())); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(f.ToMap())
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f.ToMap()); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func withoutNulls(x any) any {
	switch v := x.(type) {
	case nil:
		return ""
	case map[string]any:
		for k, e := range v {
			v[k] = withoutNulls(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = withoutNulls(e)
		}
		return v
	}
	return x
}

// DetectFormat determines the export format from a file extension; unknown
// extensions yield "".
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".cfg":
		return FormatINI
	case ".toml", ".tml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return ""
}
