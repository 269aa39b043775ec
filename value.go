// FILE: lixenwraith/gameini/value.go
package gameini

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ValueKind identifies the variant of a Value
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindStruct
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStruct:
		return "struct"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Value is one scalar or struct datum. The set of implementations is closed;
// a value never changes variant, and null is the variant with Valid unset.
type Value interface {
	Kind() ValueKind
	// Format renders the value as it appears right of '='
	Format() string
	// Native returns the plain Go form: string, int32, float32, bool,
	// map[string]any for structs, or nil when null
	Native() any
	IsNull() bool
	sealed()
}

// StringValue holds text. The zero value is null.
type StringValue struct {
	Text  string
	Valid bool
}

// IntValue holds a 32-bit integer. The zero value is null.
type IntValue struct {
	N     int32
	Valid bool
}

// FloatValue holds a 32-bit float. The zero value is null.
type FloatValue struct {
	N     float32
	Valid bool
}

// BoolValue holds a boolean. Capitalized selects True/False over true/false on output.
type BoolValue struct {
	B           bool
	Valid       bool
	Capitalized bool
}

// Field is one named member of a struct. A nil Value is a null field.
type Field struct {
	Name  string
	Value Value
}

// StructValue is an ordered, name-unique list of fields, possibly nested.
type StructValue struct {
	Fields []Field
}

// cloneValue copies the field slices of a struct value, recursively. Scalars
// are plain values and are returned as is.
func cloneValue(v Value) Value {
	sv, ok := v.(StructValue)
	if !ok || sv.Fields == nil {
		return v
	}
	fields := make([]Field, len(sv.Fields))
	for i, f := range sv.Fields {
		fields[i] = Field{Name: f.Name, Value: cloneValue(f.Value)}
	}
	return StructValue{Fields: fields}
}

func String(s string) StringValue { return StringValue{Text: s, Valid: true} }

func Int(n int32) IntValue { return IntValue{N: n, Valid: true} }

func Float(f float32) FloatValue { return FloatValue{N: f, Valid: true} }

func Bool(b, capitalized bool) BoolValue {
	return BoolValue{B: b, Valid: true, Capitalized: capitalized}
}

// Struct builds a StructValue. A repeated name keeps its first position and takes the later value.
func Struct(fields ...Field) StructValue {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		out = setField(out, f.Name, f.Value)
	}
	return StructValue{Fields: out}
}

func setField(fields []Field, name string, v Value) []Field {
	for i := range fields {
		if fields[i].Name == name {
			fields[i].Value = v
			return fields
		}
	}
	return append(fields, Field{Name: name, Value: v})
}

func (StringValue) Kind() ValueKind { return KindString }
func (IntValue) Kind() ValueKind    { return KindInt }
func (FloatValue) Kind() ValueKind  { return KindFloat }
func (BoolValue) Kind() ValueKind   { return KindBool }
func (StructValue) Kind() ValueKind { return KindStruct }

func (v StringValue) IsNull() bool { return !v.Valid }
func (v IntValue) IsNull() bool    { return !v.Valid }
func (v FloatValue) IsNull() bool  { return !v.Valid }
func (v BoolValue) IsNull() bool   { return !v.Valid }
func (v StructValue) IsNull() bool { return v.Fields == nil }

func (StringValue) sealed() {}
func (IntValue) sealed()    {}
func (FloatValue) sealed()  {}
func (BoolValue) sealed()   {}
func (StructValue) sealed() {}

func (v StringValue) Native() any {
	if !v.Valid {
		return nil
	}
	return v.Text
}

func (v IntValue) Native() any {
	if !v.Valid {
		return nil
	}
	return v.N
}

func (v FloatValue) Native() any {
	if !v.Valid {
		return nil
	}
	return v.N
}

func (v BoolValue) Native() any {
	if !v.Valid {
		return nil
	}
	return v.B
}

func (v StructValue) Native() any {
	m := make(map[string]any, len(v.Fields))
	for _, f := range v.Fields {
		m[f.Name] = nativeOf(f.Value)
	}
	return m
}

// Field returns the value of the named field.
func (v StructValue) Field(name string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (v StructValue) Len() int { return len(v.Fields) }

func nativeOf(v Value) any {
	if v == nil {
		return nil
	}
	return v.Native()
}

func formatOf(v Value) string {
	if v == nil {
		return ""
	}
	return v.Format()
}

// specialChars force quoting of a string value
const specialChars = "_,;=#[]\n\t@$%^&*()\\"

func (v StringValue) Format() string {
	if !v.Valid {
		return ""
	}
	escaped := escapeString(v.Text)
	if needsQuotes(v.Text, escaped) {
		return `"` + strings.ReplaceAll(escaped, `"`, `\"`) + `"`
	}
	return escaped
}

func escapeString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return r.Replace(s)
}

// needsQuotes reports whether the escaped text would not re-lex as the same string.
func needsQuotes(raw, escaped string) bool {
	if strings.ContainsAny(escaped, specialChars) {
		return true
	}
	if raw == "" {
		return false
	}
	if strings.TrimSpace(raw) != raw || strings.HasPrefix(raw, `"`) {
		return true
	}
	return classifyValue(raw) != TokenString
}

func (v IntValue) Format() string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(int64(v.N), 10)
}

// Format renders the shortest representation, always with a decimal point
// so the text re-lexes as a float.
func (v FloatValue) Format() string {
	if !v.Valid {
		return ""
	}
	f := float64(v.N)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 32)
	}
	s := strconv.FormatFloat(f, 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (v BoolValue) Format() string {
	if !v.Valid {
		return ""
	}
	switch {
	case v.Capitalized && v.B:
		return "True"
	case v.Capitalized:
		return "False"
	case v.B:
		return "true"
	}
	return "false"
}

func (v StructValue) Format() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, f := range v.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(formatOf(f.Value))
	}
	b.WriteByte(')')
	return b.String()
}

// FromNative converts a Go value into a Value. Integers outside the int32
// range and float64 become FloatValue; maps become structs with sorted field
// names; nil becomes a null StringValue.
func FromNative(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return StringValue{}, nil
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v, true), nil
	case int32:
		return Int(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return Float(float32(v)), nil
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]Field, 0, len(v))
		for _, name := range names {
			fv, err := FromNative(v[name])
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			fields = append(fields, Field{Name: name, Value: fv})
		}
		return Struct(fields...), nil
	}

	if s, ok := x.(fmt.Stringer); ok {
		return String(s.String()), nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n >= math.MinInt32 && n <= math.MaxInt32 {
			return Int(int32(n)), nil
		}
		return Float(float32(n)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := rv.Uint()
		if n <= math.MaxInt32 {
			return Int(int32(n)), nil
		}
		return Float(float32(n)), nil
	case reflect.Float32, reflect.Float64:
		return Float(float32(rv.Float())), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool(), true), nil
	}
	return nil, fmt.Errorf("cannot convert type %T to a value", x)
}
