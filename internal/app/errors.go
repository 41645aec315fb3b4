package app

import "errors"

var (
	// ErrInvalidProject is returned when the project file is not a YAML
	// mapping or its components section is malformed.
	ErrInvalidProject = errors.New("invalid project configuration")
	// ErrNoActions is returned by RunActions when the project declares no
	// notification action.
	ErrNoActions = errors.New("project declares no actions")
)
