// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package instantiate

import (
	"errors"
	"fmt"
	"reflect"
)

// InstantiateFromConfig builds the component named by the module_name and
// class_name keys.
//
// Each reserved key is taken from config when present, otherwise from
// defaults; it is removed from both records so it never reaches the factory.
// The factory receives defaults, config and runtime merged in that order.
// None of config, runtime and defaults is modified; runtime and defaults may
// be nil.
//
// Errors: [ErrMissingConfigurationKey] when a reserved key is absent from
// both records, [ErrInvalidArgumentType] when it is not a string,
// [ErrModuleNotFound] / [ErrClassNotFound] from the lookup and
// [ErrConstructorMismatch] when the factory rejects the arguments. The
// mismatch message lists the class name and every merged argument.
func (r *Registry) InstantiateFromConfig(config, runtime, defaults Kwargs) (any, error) {
	config = config.Clone()
	defaults = defaults.Clone()

	moduleName, err := resolveReserved(ModuleNameKey, config, defaults)
	if err != nil {
		return nil, err
	}
	className, err := resolveReserved(ClassNameKey, config, defaults)
	if err != nil {
		return nil, err
	}

	factory, err := r.LoadClass(className, moduleName)
	if err != nil {
		return nil, err
	}

	kwargs := merge(defaults, config, runtime.Clone())
	delete(kwargs, ModuleNameKey)
	delete(kwargs, ClassNameKey)

	instance, err := factory(kwargs)
	if err != nil {
		if errors.Is(err, ErrConstructorMismatch) {
			return nil, fmt.Errorf("couldn't instantiate class : %s with config : \n\t%s\n \n%w",
				className, FormatKwargs(kwargs), err)
		}
		return nil, fmt.Errorf("error instantiating class %s.%s: %w", moduleName, className, err)
	}

	r.logger.Debug().
		Str("module_name", moduleName).
		Str("class_name", className).
		Strs("kwargs", kwargs.Keys()).
		Msg("class instantiated")

	return instance, nil
}

// Instantiate is InstantiateFromConfig with a typed result. An instance that
// is not a T is reported as [ErrConstructorMismatch].
func Instantiate[T any](r *Registry, config, runtime, defaults Kwargs) (T, error) {
	var zero T

	instance, err := r.InstantiateFromConfig(config, runtime, defaults)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: instance of type %T is not a %s", ErrConstructorMismatch, instance, reflect.TypeFor[T]())
	}

	return typed, nil
}

// resolveReserved pops key from config, falling back to defaults. The key is
// removed from defaults in either case.
func resolveReserved(key string, config, defaults Kwargs) (string, error) {
	value, ok := config.pop(key)
	fallback, fallbackOK := defaults.pop(key)
	if !ok || value == nil {
		if !fallbackOK || fallback == nil {
			return "", fmt.Errorf("%w: neither config : %v nor config_defaults : %v contains a %s key",
				ErrMissingConfigurationKey, config, defaults, key)
		}
		value = fallback
	}

	name, isString := value.(string)
	if !isString {
		return "", fmt.Errorf("%w: %s must be a string, not %T", ErrInvalidArgumentType, key, value)
	}

	return name, nil
}
