package instantiate

import (
	"errors"

	"github.com/MKhiriev/go-data-context/internal/utils"
)

var (
	// ErrMissingConfigurationKey indicates that neither the explicit config
	// nor the defaults contain module_name or class_name.
	ErrMissingConfigurationKey = errors.New("missing configuration key")
	// ErrModuleNotFound indicates that no factory is registered under the
	// requested module name.
	ErrModuleNotFound = errors.New("module not found")
	// ErrClassNotFound indicates that the module is known but has no
	// factory registered under the requested class name.
	ErrClassNotFound = errors.New("class not found")
	// ErrConstructorMismatch indicates that a factory rejected the merged
	// keyword arguments (unexpected, missing or wrongly-typed keys).
	ErrConstructorMismatch = errors.New("constructor mismatch")
	// ErrAlreadyRegistered indicates a second registration of the same
	// module/class pair.
	ErrAlreadyRegistered = errors.New("class already registered")
	// ErrInvalidArgumentType indicates a value of the wrong dynamic type
	// where a string identifier was required. It is the same value as
	// [utils.ErrInvalidArgumentType].
	ErrInvalidArgumentType = utils.ErrInvalidArgumentType
)
