package router

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// BindParams decodes route parameters into a struct with `param` tags.
//
//	type postParams struct {
//		Year int    `param:"year"`
//		Slug string `param:"slug"`
//	}
//
//	var p postParams
//	if err := ctx.Bind(&p); err != nil { ... }
//
// Supported field types: string, integer and float kinds, bool, and
// []string for wildcard captures (the captured remainder is split on "/").
// Fields whose parameter is absent are left untouched. A value that does
// not fit the field's type, including one that overflows a narrow
// integer, is an error.
func BindParams(params map[string]string, target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("router: bind target must be a pointer, got %s", v.Kind())
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("router: bind target must be a pointer to struct, got pointer to %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("param")
		if name == "" {
			continue
		}
		value, ok := params[name]
		if !ok {
			continue
		}
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if err := setParamField(field, value); err != nil {
			return fmt.Errorf("router: binding param %q: %w", name, err)
		}
	}
	return nil
}

func setParamField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("integer %q overflows %s", value, field.Type())
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", value)
		}
		if field.OverflowUint(n) {
			return fmt.Errorf("integer %q overflows %s", value, field.Type())
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float %q", value)
		}
		if field.OverflowFloat(n) {
			return fmt.Errorf("number %q overflows %s", value, field.Type())
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element type %s", field.Type().Elem().Kind())
		}
		// Wildcard captures: "a/b/c" → ["a", "b", "c"].
		var parts []string
		if value != "" {
			parts = strings.Split(value, "/")
		}
		field.Set(reflect.ValueOf(parts))

	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
