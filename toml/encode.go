package toml

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Marshal writes the struct v as config source
// Scalars come first, then sub-tables, then arrays of tables, each in field order
// Durations are written as strings so Unmarshal reads them back
func Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("marshal: nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("marshal: root must be a struct, got %s", rv.Kind())
	}

	var buf bytes.Buffer
	if err := writeTable(&buf, rv, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(buf *bytes.Buffer, rv reflect.Value, prefix string) error {
	typ := rv.Type()
	var tables, arrays []int

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, skip := fieldKey(field)
		if skip {
			continue
		}
		fv := rv.Field(i)
		switch {
		case fv.Kind() == reflect.Struct && fv.Type() != durationType:
			tables = append(tables, i)
			continue
		case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Struct:
			arrays = append(arrays, i)
			continue
		}

		buf.WriteString(name)
		buf.WriteString(" = ")
		if err := writeValue(buf, fv); err != nil {
			return fmt.Errorf("marshal %s: %w", join(prefix, name), err)
		}
		buf.WriteByte('\n')
	}

	for _, i := range tables {
		name, _ := fieldKey(typ.Field(i))
		full := join(prefix, name)
		fmt.Fprintf(buf, "\n[%s]\n", full)
		if err := writeTable(buf, rv.Field(i), full); err != nil {
			return err
		}
	}

	for _, i := range arrays {
		name, _ := fieldKey(typ.Field(i))
		full := join(prefix, name)
		list := rv.Field(i)
		for j := 0; j < list.Len(); j++ {
			fmt.Fprintf(buf, "\n[[%s]]\n", full)
			if err := writeTable(buf, list.Index(j), full); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeValue(buf *bytes.Buffer, v reflect.Value) error {
	if v.Type() == durationType {
		buf.WriteString(strconv.Quote(time.Duration(v.Int()).String()))
		return nil
	}

	switch v.Kind() {
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.String:
		buf.WriteString(strconv.Quote(v.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		s := strconv.FormatFloat(v.Float(), 'f', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		buf.WriteString(s)
	case reflect.Slice, reflect.Array:
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := writeValue(buf, v.Index(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}
