package instantiate

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Validator is implemented by typed configuration structs that need to check
// required fields after decoding. A validation failure is reported as
// [ErrConstructorMismatch].
type Validator interface {
	Validate() error
}

// Typed adapts a constructor taking a typed configuration struct C to a
// [Factory].
//
// Keyword arguments are decoded into C by mapstructure using the
// `mapstructure` struct tags. Keys without a matching field, values that
// cannot be converted and a failing [Validator] all yield
// [ErrConstructorMismatch]. String values are weakly converted to the target
// field type (numbers, booleans, durations) because substituted config
// variables always arrive as strings.
func Typed[C any, T any](build func(cfg C) (T, error)) Factory {
	var zero C
	return TypedWithDefaults(zero, build)
}

// TypedWithDefaults is like [Typed] but starts decoding from a copy of
// defaults, so keys absent from the keyword arguments, or set to null, keep
// their default values. Map, slice and pointer fields present in the
// keyword arguments are decoded into fresh values, so defaults is never
// written through.
func TypedWithDefaults[C any, T any](defaults C, build func(cfg C) (T, error)) Factory {
	return func(kwargs Kwargs) (any, error) {
		var checked C
		if err := decodeKwargs(kwargs, &checked); err != nil {
			return nil, err
		}

		cfg := defaults
		if err := decodeKwargs(withoutNulls(kwargs), &cfg); err != nil {
			return nil, err
		}

		if v, ok := any(&cfg).(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrConstructorMismatch, err)
			}
		}

		instance, err := build(cfg)
		if err != nil {
			return nil, err
		}
		return instance, nil
	}
}

func decodeKwargs(kwargs Kwargs, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		ErrorUnused:      true,
		ZeroFields:       true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("error creating kwargs decoder: %w", err)
	}

	if err = decoder.Decode(map[string]any(kwargs)); err != nil {
		return fmt.Errorf("%w: %w", ErrConstructorMismatch, err)
	}

	return nil
}

func withoutNulls(kwargs Kwargs) Kwargs {
	out := make(Kwargs, len(kwargs))
	for key, v := range kwargs {
		if v != nil {
			out[key] = v
		}
	}
	return out
}
