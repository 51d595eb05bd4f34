// Package configutil decodes rule option tables into typed rule configs.
package configutil

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Resolve decodes user options over defaults. Fields absent from opts keep
// their default; present fields replace it, slices included, so an explicit
// empty list clears a default list. Scalars are weakly typed, so "3" decodes
// into an int field.
func Resolve[T any](opts map[string]any, defaults T) (T, error) {
	if len(opts) == 0 {
		return defaults, nil
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(opts, "."), nil); err != nil {
		return defaults, err
	}

	result := defaults
	err := k.UnmarshalWithConf("", &result, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			Result:           &result,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			ZeroFields:       true,
			ErrorUnused:      true,
		},
	})
	if err != nil {
		return defaults, fmt.Errorf("invalid options: %w", err)
	}
	return result, nil
}

// Coerce converts a dynamic rule config value to a typed config with defaults.
// Supported inputs:
//   - T
//   - *T
//   - map[string]any (decoded via Resolve)
//
// Any unsupported or undecodable value falls back to defaults; configuration
// loading reports those through ValidateConfig before rules run.
func Coerce[T any](config any, defaults T) T {
	switch v := config.(type) {
	case *T:
		if v != nil {
			return *v
		}
	case map[string]any:
		if resolved, err := Resolve(v, defaults); err == nil {
			return resolved
		}
	case T:
		return v
	}
	return defaults
}

// Validate decodes config like Coerce but reports decoding failures.
func Validate[T any](config any, defaults T) (T, error) {
	switch v := config.(type) {
	case nil:
		return defaults, nil
	case *T:
		if v == nil {
			return defaults, nil
		}
		return *v, nil
	case map[string]any:
		return Resolve(v, defaults)
	case T:
		return v, nil
	default:
		var zero T
		return defaults, fmt.Errorf("expected %T, got %T", zero, config)
	}
}
