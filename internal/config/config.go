// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container for the datactx
// command. It aggregates all sub-configurations and is populated by merging
// values from command-line flags, environment variables, an optional JSON
// file and the built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the version and log level.
	App App `envPrefix:"APP_"`

	// Variables locates the config-variables table used to resolve
	// ${NAME} references in the project configuration.
	Variables Variables `envPrefix:"VARIABLES_"`

	// Notifier holds the Slack webhook settings used by the notify command
	// and by notification actions that do not set their own webhook.
	Notifier Notifier `envPrefix:"NOTIFIER_"`

	// Project locates the project configuration and its root directory.
	Project Project `envPrefix:"PROJECT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from flags and environment variables.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Printed by the version command.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is the minimum zerolog level that is written
	// ("debug", "info", "warn", "error").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Variables locates the config-variables table.
type Variables struct {
	// FilePath is the YAML file holding the config-variables table. It is
	// resolved against Project.RootDir when relative.
	// Env: VARIABLES_FILE_PATH
	FilePath string `env:"FILE_PATH"`
}

// Notifier holds outbound Slack webhook settings.
type Notifier struct {
	// WebhookURL is the Slack incoming-webhook URL.
	// Env: NOTIFIER_WEBHOOK_URL
	WebhookURL string `env:"WEBHOOK_URL"`

	// RequestTimeout bounds a single webhook request (e.g. "10s").
	// Env: NOTIFIER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Project locates the project configuration.
type Project struct {
	// ConfigPath is the YAML project configuration file. It is resolved
	// against RootDir when relative.
	// Env: PROJECT_CONFIG_PATH
	ConfigPath string `env:"CONFIG_PATH"`

	// RootDir is the project root directory.
	// Env: PROJECT_ROOT_DIR
	RootDir string `env:"ROOT_DIR"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Command-line flags registered on flags by [RegisterFlags]
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// flags may be nil, in which case only the remaining sources are used.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(flags *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(flags).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
