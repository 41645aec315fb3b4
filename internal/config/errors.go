package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an unknown log level).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidNotifierConfigs indicates invalid webhook settings
	// (for example, a negative request timeout).
	ErrInvalidNotifierConfigs = errors.New("invalid notifier configuration")
	// ErrInvalidProjectConfigs indicates an unusable project location.
	ErrInvalidProjectConfigs = errors.New("invalid project configuration")
	// ErrInvalidVariablesConfigs indicates an unusable config-variables
	// location.
	ErrInvalidVariablesConfigs = errors.New("invalid variables configuration")
)
