// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identifier parses dotted resource strings such as
// "ValidationResultIdentifier.db.default.orders.warning.20260307" into typed
// data-context resource keys.
//
// The first element names the key type and the remaining elements are the
// positional parts of the key. Key types live in an instantiate registry
// under [Module], so custom types can be added with [RegisterKeyType].
package identifier

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-data-context/internal/instantiate"
)

const (
	// Module is the registry module holding the key types.
	Module = "datactx.identifiers"
	// DefaultSeparator separates the elements of a resource string.
	DefaultSeparator = "."

	partsKey = "parts"
)

// Key is a parsed resource identifier.
type Key interface {
	// String renders the key as TypeName.part.part using DefaultSeparator.
	String() string
	// Parts returns the positional parts of the key without the type name.
	Parts() []string
}

var keyTypes = instantiate.NewRegistry()

type keyArgs struct {
	Parts []string `mapstructure:"parts"`
}

// RegisterKeyType registers a key type taking exactly arity parts.
func RegisterKeyType(typeName string, arity int, build func(parts []string) Key) error {
	return keyTypes.Register(Module, typeName, instantiate.Typed(func(args keyArgs) (Key, error) {
		if len(args.Parts) != arity {
			return nil, fmt.Errorf("%w: %s takes %d parts, got %d",
				instantiate.ErrConstructorMismatch, typeName, arity, len(args.Parts))
		}
		return build(args.Parts), nil
	}))
}

// KeyTypes returns the registered key type names in sorted order.
func KeyTypes() []string {
	return keyTypes.Classes(Module)
}

// Parse splits s on separator and builds the key named by its first element.
// An empty separator means [DefaultSeparator].
//
// Returns an error wrapping [instantiate.ErrClassNotFound] for an unknown
// type name and [instantiate.ErrConstructorMismatch] when the number of parts
// does not match the type.
func Parse(s, separator string) (Key, error) {
	if separator == "" {
		separator = DefaultSeparator
	}

	elements := strings.Split(s, separator)

	key, err := instantiate.Instantiate[Key](keyTypes, instantiate.Kwargs{
		instantiate.ModuleNameKey: Module,
		instantiate.ClassNameKey:  elements[0],
		partsKey:                  elements[1:],
	}, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("error parsing resource identifier %q: %w", s, err)
	}

	return key, nil
}

func render(typeName string, parts []string) string {
	return typeName + DefaultSeparator + strings.Join(parts, DefaultSeparator)
}
