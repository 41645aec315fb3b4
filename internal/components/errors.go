package components

import "errors"

var (
	// ErrKeyNotFound is returned by store backends for a key that holds no
	// value.
	ErrKeyNotFound = errors.New("key not found")
	// ErrInvalidKey is returned by store backends for a key whose parts
	// cannot be stored.
	ErrInvalidKey = errors.New("invalid store key")
)
