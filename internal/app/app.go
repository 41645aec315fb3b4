package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/MKhiriev/go-data-context/internal/components"
	"github.com/MKhiriev/go-data-context/internal/config"
	"github.com/MKhiriev/go-data-context/internal/instantiate"
	"github.com/MKhiriev/go-data-context/internal/logger"
	"github.com/MKhiriev/go-data-context/internal/notify"
	"github.com/MKhiriev/go-data-context/internal/substitute"
	"github.com/MKhiriev/go-data-context/models"
)

// Action is a component that reacts to a validation result.
type Action interface {
	Run(ctx context.Context, result *models.ValidationResult) notify.DeliveryStatus
}

// Component is a named instance built from the project's components
// section.
type Component struct {
	Name     string
	Instance any
}

// App holds the dependencies shared by the datactx commands.
type App struct {
	cfg         *config.StructuredConfig
	registry    *instantiate.Registry
	substitutor *substitute.Substitutor

	logger *logger.Logger
}

// Option configures an [App].
type Option func(*App)

// WithSubstitutor replaces the substitutor, e.g. to inject an environment
// lookup in tests.
func WithSubstitutor(s *substitute.Substitutor) Option {
	return func(a *App) {
		if s != nil {
			a.substitutor = s
		}
	}
}

// NewApp creates an App for cfg. Components are resolved through registry;
// a nil registry means instantiate.Default.
func NewApp(cfg *config.StructuredConfig, registry *instantiate.Registry, log *logger.Logger, opts ...Option) *App {
	if registry == nil {
		registry = instantiate.Default()
	}
	if log == nil {
		log = logger.Nop()
	}

	a := &App{
		cfg:         cfg,
		registry:    registry,
		substitutor: substitute.New(),
		logger:      log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Components builds every entry of the project's components section in name
// order. Each entry is a configuration record naming its module_name and
// class_name. Notifier and project settings from the application config are
// supplied as defaults to the built-in classes that accept them.
func (a *App) Components() ([]Component, error) {
	project, err := a.LoadProject()
	if err != nil {
		return nil, err
	}

	records, err := componentRecords(project)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	slices.Sort(names)

	built := make([]Component, 0, len(names))
	for _, name := range names {
		record := records[name]
		instance, err := a.registry.InstantiateFromConfig(record, nil, a.componentDefaults(record))
		if err != nil {
			return nil, fmt.Errorf("error building component %q: %w", name, err)
		}

		a.logger.Info().
			Str("component", name).
			Str("type", fmt.Sprintf("%T", instance)).
			Msg("component built")
		built = append(built, Component{Name: name, Instance: instance})
	}

	return built, nil
}

// componentDefaults returns the application-level defaults for the class
// named by record. Records that take their names from elsewhere get none.
func (a *App) componentDefaults(record instantiate.Kwargs) instantiate.Kwargs {
	module, _ := record[instantiate.ModuleNameKey].(string)
	class, _ := record[instantiate.ClassNameKey].(string)

	switch {
	case module == components.ActionsModule && class == components.SlackNotificationActionClass:
		defaults := instantiate.Kwargs{}
		if a.cfg.Notifier.WebhookURL != "" {
			defaults["webhook"] = a.cfg.Notifier.WebhookURL
		}
		if a.cfg.Notifier.RequestTimeout > 0 {
			defaults["request_timeout"] = a.cfg.Notifier.RequestTimeout
		}
		return defaults
	case module == components.StoresModule && class == components.FilesystemStoreBackendClass:
		return instantiate.Kwargs{"root_directory": a.cfg.Project.RootDir}
	default:
		return nil
	}
}

// Notify sends result to the configured webhook. A nil result sends the
// "no validation occurred" message.
func (a *App) Notify(ctx context.Context, result *models.ValidationResult) (notify.DeliveryStatus, error) {
	notifier, err := notify.NewSlackNotifier(a.cfg.Notifier, a.logger)
	if err != nil {
		return notify.DeliveryStatus{}, fmt.Errorf("error creating notifier: %w", err)
	}

	return notifier.Send(ctx, result), nil
}

// RunActions builds the project components and runs every [Action] among
// them against result, in component name order.
func (a *App) RunActions(ctx context.Context, result *models.ValidationResult) (map[string]notify.DeliveryStatus, error) {
	built, err := a.Components()
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]notify.DeliveryStatus)
	for _, c := range built {
		action, ok := c.Instance.(Action)
		if !ok {
			continue
		}

		actionLog := a.logger.With().Str("action", c.Name).Logger()
		status := action.Run(actionLog.WithContext(ctx), result)
		statuses[c.Name] = status
		a.logger.Info().
			Str("action", c.Name).
			Bool("delivered", status.Delivered).
			Bool("skipped", status.Skipped).
			Msg("action finished")
	}

	if len(statuses) == 0 {
		return nil, ErrNoActions
	}

	return statuses, nil
}

// LoadValidationResult decodes the JSON validation result at path.
func LoadValidationResult(path string) (*models.ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading validation result: %w", err)
	}

	var result models.ValidationResult
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("error decoding validation result %q: %w", path, err)
	}

	return &result, nil
}
