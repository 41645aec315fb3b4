package substitute

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultVariablesFilePath is where the config-variables table is kept
// relative to the project root. The file normally stays out of version
// control because it holds credentials.
const DefaultVariablesFilePath = "uncommitted/config_variables.yml"

// LoadVariables reads a YAML mapping of config variables from path.
//
// A missing file yields an empty table; an empty file yields an empty table;
// a document that is not a mapping or cannot be parsed is an error.
func LoadVariables(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("error reading config variables file: %w", err)
	}

	vars := make(map[string]any)
	if err = yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("error parsing config variables file %s: %w", path, err)
	}

	return vars, nil
}
