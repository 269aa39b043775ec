// FILE: lixenwraith/gameini/decode.go
package gameini

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"sort"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DecodeTagName is the struct tag read by Decode and Encode
const DecodeTagName = "ini"

// Decode copies the section into target, which must be a non-nil pointer to a
// struct or map. Keys match fields by `ini` tag, or by name case-insensitively.
func (s *Section) Decode(target any) error {
	return decodeInto(s.ToMap(), target, "section "+s.name)
}

// Decode copies the whole file into target; each section decodes into the
// field matching its name.
func (f *File) Decode(target any) error {
	return decodeInto(f.ToMap(), target, "file")
}

// decodeInto is the single decoding path for sections and files
func decodeInto(input map[string]any, target any, what string) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          DecodeTagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode failed for %s: %w", what, err)
	}
	return nil
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetIPHookFunc(),
		stringToNetIPNetHookFunc(),
		stringToURLHookFunc(),

		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}

		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToNetIPNetHookFunc handles net.IPNet conversion
func stringToNetIPNetHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(net.IPNet{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 49 { // Max IPv6 CIDR length
			return nil, fmt.Errorf("invalid CIDR length: %d", len(str))
		}
		_, ipnet, err := net.ParseCIDR(str)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR: %w", err)
		}
		if isPtr {
			return ipnet, nil
		}
		return *ipnet, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}

// Encode stores the exported fields of src, a struct or map, into the section.
// Slices become arrays, maps and nested structs become struct values, and
// everything else a plain entry. Keys are written in sorted order. Every field
// is attempted; failures are joined into the returned error.
func (s *Section) Encode(src any) error {
	fields := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &fields,
		TagName: DecodeTagName,
	})
	if err != nil {
		return fmt.Errorf("encoder creation failed: %w", err)
	}
	if err := decoder.Decode(src); err != nil {
		return fmt.Errorf("encode failed for section %s: %w", s.name, err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		if err := s.encodeField(key, fields[key]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Section) encodeField(key string, x any) error {
	if x != nil {
		rv := reflect.ValueOf(x)
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type() != reflect.TypeOf(net.IP{}) {
			values := make([]Value, rv.Len())
			for i := range values {
				v, err := FromNative(rv.Index(i).Interface())
				if err != nil {
					return fmt.Errorf("key %s[%d]: %w", key, i, err)
				}
				values[i] = v
			}
			return s.SetArray(key, values...)
		}
		if rv.Kind() == reflect.Map && rv.Type() != reflect.TypeOf(map[string]any{}) {
			m := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
			}
			x = m
		}
	}

	v, err := FromNative(x)
	if err != nil {
		return fmt.Errorf("key %s: %w", key, err)
	}
	return s.SetValue(key, v)
}
