package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/go-data-context/internal/instantiate"
	"github.com/MKhiriev/go-data-context/internal/substitute"
)

const componentsKey = "components"

// LoadProject reads the project YAML and resolves its ${NAME} references.
// The config-variables table is read from the configured variables file; a
// missing variables file resolves references from the environment only.
func (a *App) LoadProject() (map[string]any, error) {
	raw, err := readProject(a.cfg.ProjectConfigPath())
	if err != nil {
		return nil, err
	}

	vars, err := substitute.LoadVariables(a.cfg.VariablesFilePath())
	if err != nil {
		return nil, err
	}

	a.logger.Debug().
		Str("project", a.cfg.ProjectConfigPath()).
		Int("variables", len(vars)).
		Msg("substituting config variables")

	resolved, ok := a.substitutor.All(raw, vars).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: substituted project is not a mapping", ErrInvalidProject)
	}

	return resolved, nil
}

// MarshalProject renders a project mapping as YAML.
func MarshalProject(project map[string]any) ([]byte, error) {
	out, err := yaml.Marshal(project)
	if err != nil {
		return nil, fmt.Errorf("error encoding project: %w", err)
	}
	return out, nil
}

func readProject(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: project file %q does not exist", ErrInvalidProject, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading project file: %w", err)
	}

	var project map[string]any
	if err = yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}
	if project == nil {
		project = map[string]any{}
	}

	return project, nil
}

// componentRecords extracts the name to configuration record mapping of the
// components section. A project without one has no components.
func componentRecords(project map[string]any) (map[string]instantiate.Kwargs, error) {
	section, ok := project[componentsKey]
	if !ok || section == nil {
		return map[string]instantiate.Kwargs{}, nil
	}

	entries, ok := section.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a mapping, not %T", ErrInvalidProject, componentsKey, section)
	}

	records := make(map[string]instantiate.Kwargs, len(entries))
	for name, entry := range entries {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: component %q must be a mapping, not %T", ErrInvalidProject, name, entry)
		}
		records[name] = instantiate.Kwargs(record)
	}

	return records, nil
}
