package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// Flag names registered by [RegisterFlags].
const (
	FlagConfig         = "config"
	FlagLogLevel       = "log-level"
	FlagVariablesFile  = "variables-file"
	FlagWebhook        = "webhook"
	FlagRequestTimeout = "request-timeout"
	FlagProjectConfig  = "project-config"
	FlagRootDir        = "root-dir"
)

// LogLevel holds a validated zerolog level name.
// It implements the pflag.Value interface.
type LogLevel struct {
	Level string
}

// RegisterFlags adds the configuration flags to flags. Every flag defaults
// to its zero value so that unset flags never shadow lower-priority sources.
//
// Flags:
//
//	-c/--config           json file path with configs
//	--log-level           minimum log level (debug, info, warn, error)
//	--variables-file      config variables YAML file
//	--webhook             Slack incoming-webhook URL
//	--request-timeout     webhook request timeout (e.g., "10s")
//	-p/--project-config   project YAML file
//	--root-dir            project root directory
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP(FlagConfig, "c", "", "JSON config file path")
	flags.Var(&LogLevel{}, FlagLogLevel, "Log level (debug, info, warn, error)")
	flags.String(FlagVariablesFile, "", "Config variables YAML file")
	flags.String(FlagWebhook, "", "Slack incoming-webhook URL")
	flags.Duration(FlagRequestTimeout, 0, "Webhook request timeout (e.g., 10s, 1m)")
	flags.StringP(FlagProjectConfig, "p", "", "Project configuration YAML file")
	flags.String(FlagRootDir, "", "Project root directory")
}

// parseFlags reads the flags registered by [RegisterFlags] from an already
// parsed flag set. Flags that are not registered or were not set on the
// command line are left zero.
func parseFlags(flags *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	if flags == nil {
		return cfg, nil
	}

	cfg.JSONFilePath = changedString(flags, FlagConfig)
	cfg.App.LogLevel = changedString(flags, FlagLogLevel)
	cfg.Variables.FilePath = changedString(flags, FlagVariablesFile)
	cfg.Notifier.WebhookURL = changedString(flags, FlagWebhook)
	cfg.Project.ConfigPath = changedString(flags, FlagProjectConfig)
	cfg.Project.RootDir = changedString(flags, FlagRootDir)

	if f := flags.Lookup(FlagRequestTimeout); f != nil && f.Changed {
		timeout, err := time.ParseDuration(f.Value.String())
		if err != nil {
			return nil, fmt.Errorf("error parsing --%s flag: %w", FlagRequestTimeout, err)
		}
		cfg.Notifier.RequestTimeout = timeout
	}

	return cfg, nil
}

func changedString(flags *pflag.FlagSet, name string) string {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return ""
	}
	return f.Value.String()
}

// String returns the level name, or an empty string when unset.
func (l *LogLevel) String() string {
	return l.Level
}

// Set validates s as a zerolog level name and stores it lowercased.
func (l *LogLevel) Set(s string) error {
	level := strings.ToLower(strings.TrimSpace(s))
	if _, err := zerolog.ParseLevel(level); err != nil || level == "" {
		return fmt.Errorf("unknown log level %q", s)
	}

	l.Level = level
	return nil
}

// Type implements pflag.Value.
func (l *LogLevel) Type() string {
	return "level"
}
