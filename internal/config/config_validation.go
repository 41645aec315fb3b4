// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] is usable before
// the command starts working with it.
//
// The webhook URL is not required here: only the commands that send
// notifications need it, and the notifier reports its absence itself.
func (cfg *StructuredConfig) validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(cfg.App.LogLevel)); err != nil {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel)
	}

	if cfg.Notifier.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidNotifierConfigs)
	}

	if strings.TrimSpace(cfg.Project.ConfigPath) == "" {
		return fmt.Errorf("%w: empty config path", ErrInvalidProjectConfigs)
	}

	if strings.TrimSpace(cfg.Variables.FilePath) == "" {
		return fmt.Errorf("%w: empty variables file path", ErrInvalidVariablesConfigs)
	}

	return nil
}

// ProjectConfigPath returns Project.ConfigPath resolved against
// Project.RootDir.
func (cfg *StructuredConfig) ProjectConfigPath() string {
	return cfg.resolve(cfg.Project.ConfigPath)
}

// VariablesFilePath returns Variables.FilePath resolved against
// Project.RootDir.
func (cfg *StructuredConfig) VariablesFilePath() string {
	return cfg.resolve(cfg.Variables.FilePath)
}

func (cfg *StructuredConfig) resolve(path string) string {
	if filepath.IsAbs(path) || cfg.Project.RootDir == "" {
		return path
	}
	return filepath.Join(cfg.Project.RootDir, path)
}

// redactedValue replaces secrets in loggable copies of the configuration.
const redactedValue = "[REDACTED]"

// Redacted returns a copy of cfg that is safe to log. The webhook URL
// carries the Slack token, so a non-empty one is replaced.
func (cfg StructuredConfig) Redacted() StructuredConfig {
	if cfg.Notifier.WebhookURL != "" {
		cfg.Notifier.WebhookURL = redactedValue
	}
	return cfg
}
