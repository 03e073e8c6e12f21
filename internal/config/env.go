package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// applyEnvOverrides copies every set environment variable named by an `env`
// tag into the matching field. Nested sections are walked recursively and all
// conversion failures are reported together.
func applyEnvOverrides(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	var errs []error
	for i := 0; i < v.NumField(); i++ {
		field, meta := v.Field(i), v.Type().Field(i)

		if field.Kind() == reflect.Struct {
			errs = append(errs, applyEnvOverrides(field))
			continue
		}

		name := meta.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := assignEnvValue(field, raw); err != nil {
			errs = append(errs, fmt.Errorf("env %s (%s): %w", name, meta.Name, err))
		}
	}
	return errors.Join(errs...)
}

func assignEnvValue(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("not an integer: %q", raw)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("not a boolean: %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
