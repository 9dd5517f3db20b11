// Package config loads CLI options from TOML files and LEDINTENT_* environment
// variables, and watches the config file for runtime changes.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/ledintent/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every `env` struct tag.
const EnvPrefix = "LEDINTENT_"

var durationType = reflect.TypeOf(time.Duration(0))

// LoadConfig fills opts with precedence: CLI flags > env vars > config file.
// opts must be a pointer to a struct whose fields carry `toml:"section.key"`
// and `env:"KEY"` tags. The file path is read from a field named Config.
// If cmd is provided, flags explicitly set on it are left untouched.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: expected pointer to struct, got %T", opts)
	}
	v = v.Elem()
	t := v.Type()

	changedFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				changedFlags[f.Name] = true
			}
		})
	}

	var fileValues map[string]any
	if f := v.FieldByName("Config"); f.IsValid() && f.Kind() == reflect.String && f.String() != "" {
		data, err := os.ReadFile(f.String())
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &fileValues); err != nil {
				return fmt.Errorf("failed to parse TOML config: %w", err)
			}
		case !os.IsNotExist(err):
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if changedFlags[fieldNameToFlag(fieldType.Name)] {
			continue
		}

		if tomlPath := fieldType.Tag.Get("toml"); tomlPath != "" && fileValues != nil {
			if value := getNestedValue(fileValues, tomlPath); value != nil {
				if err := setFieldValue(field, value); err != nil {
					return fmt.Errorf("config key %s: %w", tomlPath, err)
				}
			}
		}

		if envKey := fieldType.Tag.Get("env"); envKey != "" {
			if envValue := os.Getenv(EnvPrefix + envKey); envValue != "" {
				if err := setFieldValueFromString(field, envValue); err != nil {
					return fmt.Errorf("env %s%s: %w", EnvPrefix, envKey, err)
				}
			}
		}
	}

	return nil
}

// fieldNameToFlag converts a struct field name to a CLI flag name.
// Example: "LoggingLevel" -> "logging-level", "BackendURL" -> "backend-url".
func fieldNameToFlag(fieldName string) string {
	runes := []rune(fieldName)
	var result []rune
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				result = append(result, '-')
			}
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// getNestedValue retrieves a value from nested map using dot notation.
func getNestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current[parts[len(parts)-1]]
}

// setFieldValue assigns a decoded TOML value to field.
func setFieldValue(field reflect.Value, value any) error {
	if !field.CanSet() {
		return nil
	}

	if field.Type() == durationType {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected duration string, got %T", value)
		}
		return setFieldValueFromString(field, s)
	}

	switch field.Kind() {
	case reflect.String:
		if s, ok := value.(string); ok {
			field.SetString(s)
			return nil
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			field.SetBool(b)
			return nil
		}
	case reflect.Int, reflect.Int64:
		if i, ok := value.(int64); ok {
			field.SetInt(i)
			return nil
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		if arr, ok := value.([]any); ok {
			slice := make([]string, 0, len(arr))
			for _, item := range arr {
				s, ok := item.(string)
				if !ok {
					return fmt.Errorf("expected string array element, got %T", item)
				}
				slice = append(slice, s)
			}
			field.Set(reflect.ValueOf(slice))
			return nil
		}
	default:
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// setFieldValueFromString parses an env var string into field.
func setFieldValueFromString(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			slice := make([]string, len(parts))
			for i, part := range parts {
				slice[i] = strings.TrimSpace(part)
			}
			field.Set(reflect.ValueOf(slice))
		}
	}
	return nil
}

// LoadLoggingConfig reads the [logging] table of a TOML file.
// `level` and `format` are global; every other key is a module level.
func LoadLoggingConfig(configPath string) (logging.Config, error) {
	cfg := logging.Config{
		Level:   "info",
		Format:  "text",
		Modules: make(map[string]string),
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	var raw struct {
		Logging map[string]any `toml:"logging"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	for key, value := range raw.Logging {
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "level":
			cfg.Level = s
		case "format":
			cfg.Format = s
		case "file":
			cfg.File = s
		default:
			cfg.Modules[key] = s
		}
	}

	return cfg, nil
}
