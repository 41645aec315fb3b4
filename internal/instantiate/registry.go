package instantiate

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/MKhiriev/go-data-context/internal/logger"
)

// Factory builds a component from merged keyword arguments. A factory that
// cannot accept the arguments it was given should return an error wrapping
// [ErrConstructorMismatch].
type Factory func(kwargs Kwargs) (any, error)

// Registry maps module/class pairs to factories. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]map[string]Factory
	logger  *logger.Logger
}

// Option configures a [Registry].
type Option func(*Registry)

// WithLogger attaches a logger to the registry. Registrations and
// instantiations are logged at debug level.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		modules: make(map[string]map[string]Factory),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds factory to the moduleName/className pair.
//
// Returns [ErrInvalidArgumentType] if a name is empty or factory is nil, and
// [ErrAlreadyRegistered] if the pair is already bound.
func (r *Registry) Register(moduleName, className string, factory Factory) error {
	if moduleName == "" || className == "" {
		return fmt.Errorf("%w: module and class names must be non-empty strings", ErrInvalidArgumentType)
	}
	if factory == nil {
		return fmt.Errorf("%w: factory for %s.%s is nil", ErrInvalidArgumentType, moduleName, className)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	classes, ok := r.modules[moduleName]
	if !ok {
		classes = make(map[string]Factory)
		r.modules[moduleName] = classes
	}
	if _, exists := classes[className]; exists {
		return fmt.Errorf("%w: %s.%s", ErrAlreadyRegistered, moduleName, className)
	}

	classes[className] = factory
	r.logger.Debug().
		Str("module_name", moduleName).
		Str("class_name", className).
		Msg("class registered")

	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// package init functions.
func (r *Registry) MustRegister(moduleName, className string, factory Factory) {
	if err := r.Register(moduleName, className, factory); err != nil {
		panic(err)
	}
}

// LoadClass returns the factory bound to className inside moduleName.
func (r *Registry) LoadClass(className, moduleName string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes, ok := r.modules[moduleName]
	if !ok {
		return nil, fmt.Errorf("%w: no module named %q", ErrModuleNotFound, moduleName)
	}

	factory, ok := classes[className]
	if !ok {
		return nil, fmt.Errorf("%w: module %q has no class named %q", ErrClassNotFound, moduleName, className)
	}

	return factory, nil
}

// Modules returns the registered module names in sorted order.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.modules))
}

// Classes returns the class names registered in moduleName in sorted order.
// An unknown module yields an empty slice.
func (r *Registry) Classes(moduleName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.modules[moduleName]))
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry populated by package init
// functions.
func Default() *Registry {
	return defaultRegistry
}

// Register binds factory in the default registry.
func Register(moduleName, className string, factory Factory) error {
	return defaultRegistry.Register(moduleName, className, factory)
}

// MustRegister binds factory in the default registry and panics on error.
func MustRegister(moduleName, className string, factory Factory) {
	defaultRegistry.MustRegister(moduleName, className, factory)
}

// InstantiateFromConfig instantiates from the default registry.
func InstantiateFromConfig(config, runtime, defaults Kwargs) (any, error) {
	return defaultRegistry.InstantiateFromConfig(config, runtime, defaults)
}
