// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"os"
)

// ErrInvalidArgumentType is returned when a value of the wrong dynamic type
// is passed where a path or identifier string is required.
var ErrInvalidArgumentType = errors.New("invalid argument type")

// dirPerm is the permission set used for every directory created by MakeDirs.
const dirPerm = 0o755

// MakeDirs creates directory together with any missing parents. An already
// existing directory is not an error.
//
// directory is typed as any because it usually comes straight out of a
// decoded configuration map. Anything other than a non-empty string or a
// [fmt.Stringer] is rejected with [ErrInvalidArgumentType] before touching
// the filesystem.
func MakeDirs(directory any) error {
	path, err := pathString(directory)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(path, dirPerm); err != nil {
		return fmt.Errorf("error creating directory %q: %w", path, err)
	}

	return nil
}

func pathString(v any) (string, error) {
	switch p := v.(type) {
	case string:
		if p == "" {
			return "", fmt.Errorf("%w: directory must be a non-empty string", ErrInvalidArgumentType)
		}
		return p, nil
	case fmt.Stringer:
		return pathString(p.String())
	default:
		return "", fmt.Errorf("%w: directory must be of type string, not %T", ErrInvalidArgumentType, v)
	}
}
