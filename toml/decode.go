package toml

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var durationType = reflect.TypeFor[time.Duration]()

// Unmarshal parses data and stores the result in the struct pointed to by v
// Keys without a matching field are ignored
func Unmarshal(data []byte, v any) error {
	tree, err := NewParser(data).Parse()
	if err != nil {
		return err
	}
	return Decode(tree, v)
}

// Decode maps a parsed tree onto v using `toml` tags, falling back to field names
func Decode(data any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", v)
	}
	return decodeInto(data, rv.Elem(), "")
}

func decodeInto(data any, dst reflect.Value, path string) error {
	if data == nil {
		return nil
	}

	// Durations are written as strings ("280ms") or bare milliseconds
	if dst.Type() == durationType {
		switch d := data.(type) {
		case string:
			parsed, err := time.ParseDuration(d)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			dst.SetInt(int64(parsed))
			return nil
		default:
			ms, ok := toFloat(data)
			if !ok {
				return fmt.Errorf("%s: cannot use %T as duration", path, data)
			}
			dst.SetInt(int64(ms * float64(time.Millisecond)))
			return nil
		}
	}

	switch dst.Kind() {
	case reflect.Pointer:
		fresh := reflect.New(dst.Type().Elem())
		if err := decodeInto(data, fresh.Elem(), path); err != nil {
			return err
		}
		dst.Set(fresh)

	case reflect.Struct:
		table, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected table, got %T", path, data)
		}
		return decodeStruct(table, dst, path)

	case reflect.Map:
		if dst.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%s: map keys must be strings", path)
		}
		table, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected table, got %T", path, data)
		}
		m := reflect.MakeMapWithSize(dst.Type(), len(table))
		for k, item := range table {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := decodeInto(item, elem, join(path, k)); err != nil {
				return err
			}
			m.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), elem)
		}
		dst.Set(m)

	case reflect.Slice:
		items, err := asList(data, path)
		if err != nil {
			return err
		}
		s := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeInto(item, s.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		dst.Set(s)

	case reflect.Array:
		items, err := asList(data, path)
		if err != nil {
			return err
		}
		if len(items) != dst.Len() {
			return fmt.Errorf("%s: expected %d elements, got %d", path, dst.Len(), len(items))
		}
		for i, item := range items {
			if err := decodeInto(item, dst.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}

	case reflect.Interface:
		dst.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := toFloat(data)
		if !ok || f != float64(int64(f)) {
			return fmt.Errorf("%s: cannot use %v as integer", path, data)
		}
		dst.SetInt(int64(f))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := toFloat(data)
		if !ok || f < 0 || f != float64(uint64(f)) {
			return fmt.Errorf("%s: cannot use %v as unsigned integer", path, data)
		}
		dst.SetUint(uint64(f))

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(data)
		if !ok {
			return fmt.Errorf("%s: cannot use %T as float", path, data)
		}
		dst.SetFloat(f)

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return fmt.Errorf("%s: cannot use %T as string", path, data)
		}
		dst.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return fmt.Errorf("%s: cannot use %T as bool", path, data)
		}
		dst.SetBool(b)

	default:
		return fmt.Errorf("%s: unsupported kind %s", path, dst.Kind())
	}
	return nil
}

func decodeStruct(table map[string]any, dst reflect.Value, path string) error {
	typ := dst.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, skip := fieldKey(field)
		if skip {
			continue
		}
		if item, ok := table[name]; ok {
			if err := decodeInto(item, dst.Field(i), join(path, name)); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldKey resolves the config key of a struct field
func fieldKey(field reflect.StructField) (name string, skip bool) {
	tag := field.Tag.Get("toml")
	if tag == "-" {
		return "", true
	}
	if name, _, _ = strings.Cut(tag, ","); name == "" {
		name = field.Name
	}
	return name, false
}

func asList(data any, path string) ([]any, error) {
	switch v := data.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: expected array, got %T", path, data)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
