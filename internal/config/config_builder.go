package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-data-context/internal/substitute"
)

const (
	defaultLogLevel       = "info"
	defaultProjectConfig  = "datactx.yml"
	defaultProjectRootDir = "."
	defaultRequestTimeout = 10 * time.Second
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected configs in order. mergo only fills fields that
// are still zero, so the first source holding a value wins.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(flags *pflag.FlagSet) *configBuilder {
	flagCfg, err := parseFlags(flags)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagCfg)
	return b
}

// withJSON loads the JSON file named by the first source that sets one.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			LogLevel: defaultLogLevel,
		},
		Variables: Variables{
			FilePath: substitute.DefaultVariablesFilePath,
		},
		Notifier: Notifier{
			RequestTimeout: defaultRequestTimeout,
		},
		Project: Project{
			ConfigPath: defaultProjectConfig,
			RootDir:    defaultProjectRootDir,
		},
	})
	return b
}
