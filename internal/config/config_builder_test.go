package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// newParsedFlags registers the configuration flags on a fresh flag set and
// parses args into it.
func newParsedFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a builder without defaults fails
// validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.ErrorIs(t, err, ErrInvalidProjectConfigs)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_OnlyDefaults verifies the built-in defaults.
func TestBuild_OnlyDefaults(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "uncommitted/config_variables.yml", cfg.Variables.FilePath)
	assert.Equal(t, 10*time.Second, cfg.Notifier.RequestTimeout)
	assert.Equal(t, "datactx.yml", cfg.Project.ConfigPath)
	assert.Equal(t, ".", cfg.Project.RootDir)
	assert.Empty(t, cfg.Notifier.WebhookURL)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0"}},
		&StructuredConfig{Notifier: Notifier{WebhookURL: "https://hooks.example.com/x"}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "https://hooks.example.com/x", cfg.Notifier.WebhookURL)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

// TestBuild_FirstSourceWins verifies that an earlier non-zero field is not
// overwritten by a later source.
func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{LogLevel: "warn"}},
		&StructuredConfig{App: App{LogLevel: "debug", Version: "2.0.0"}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "2.0.0", cfg.App.Version)
}

// TestBuild_InvalidLogLevel verifies validation of the merged log level.
func TestBuild_InvalidLogLevel(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{LogLevel: "loud"}})
	b.withDefaults()

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// TestBuild_NegativeTimeout verifies validation of the request timeout.
func TestBuild_NegativeTimeout(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Notifier: Notifier{RequestTimeout: -time.Second}})
	b.withDefaults()

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidNotifierConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("NOTIFIER_WEBHOOK_URL", "https://hooks.example.com/env")

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "https://hooks.example.com/env", b.configs[0].Notifier.WebhookURL)
}

// TestWithEnv_SetsErrorOnBadDuration verifies that a conversion failure is
// collected instead of appended.
func TestWithEnv_SetsErrorOnBadDuration(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("NOTIFIER_REQUEST_TIMEOUT", "soon")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
}

// TestWithFlags_NilFlagSet verifies that a nil flag set contributes an
// empty config.
func TestWithFlags_NilFlagSet(t *testing.T) {
	b := newConfigBuilder().withFlags(nil)

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, &StructuredConfig{}, b.configs[0])
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Project.RootDir = "/srv/project"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "/srv/project", b.configs[1].Project.RootDir)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_SetsError_WhenMalformedJSON verifies that invalid JSON content
// sets b.err.
func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesFirstPath verifies that when multiple configs have a
// JSONFilePath, the highest-priority one is loaded.
func TestWithJSON_UsesFirstPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first-wins"
	second := StructuredJSONConfig{}
	second.App.Version = "ignored"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: ""},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, second)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 4)
	assert.Equal(t, "first-wins", b.configs[3].App.Version)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_Precedence verifies flags > env > JSON > defaults.
func TestGetStructuredConfig_Precedence(t *testing.T) {
	clearEnvVars(t)

	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.App.LogLevel = "error"
	payload.Notifier.WebhookURL = "https://hooks.example.com/json"
	payload.Notifier.RequestTimeout = Duration(3 * time.Second)
	payload.Project.ConfigPath = "json.yml"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("CONFIG", path)
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("NOTIFIER_WEBHOOK_URL", "https://hooks.example.com/env")

	flags := newParsedFlags(t, "--webhook", "https://hooks.example.com/flag")

	cfg, err := GetStructuredConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "https://hooks.example.com/flag", cfg.Notifier.WebhookURL)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "json-version", cfg.App.Version)
	assert.Equal(t, 3*time.Second, cfg.Notifier.RequestTimeout)
	assert.Equal(t, "json.yml", cfg.Project.ConfigPath)
	assert.Equal(t, "uncommitted/config_variables.yml", cfg.Variables.FilePath)
	assert.Equal(t, path, cfg.JSONFilePath)
}

// TestGetStructuredConfig_FlagConfigPath verifies that -c selects the JSON
// file.
func TestGetStructuredConfig_FlagConfigPath(t *testing.T) {
	clearEnvVars(t)

	payload := StructuredJSONConfig{}
	payload.Project.RootDir = "/srv/from-json"
	path := writeTempJSONConfig(t, payload)

	cfg, err := GetStructuredConfig(newParsedFlags(t, "-c", path))
	require.NoError(t, err)
	assert.Equal(t, "/srv/from-json", cfg.Project.RootDir)
}

// TestGetStructuredConfig_MissingJSON verifies that an unreadable JSON file
// fails the whole build.
func TestGetStructuredConfig_MissingJSON(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("CONFIG", "/nonexistent/config.json")

	cfg, err := GetStructuredConfig(nil)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "error reading a json file")
}

// ── path helpers ──────────────────────────────────────────────────────────────

func TestResolvedPaths(t *testing.T) {
	cfg := &StructuredConfig{
		Variables: Variables{FilePath: "uncommitted/config_variables.yml"},
		Project:   Project{ConfigPath: "/etc/datactx.yml", RootDir: "/srv/project"},
	}

	assert.Equal(t, "/etc/datactx.yml", cfg.ProjectConfigPath())
	assert.Equal(t, "/srv/project/uncommitted/config_variables.yml", cfg.VariablesFilePath())

	cfg.Project.RootDir = ""
	assert.Equal(t, "uncommitted/config_variables.yml", cfg.VariablesFilePath())
}

func TestRedacted_HidesWebhook(t *testing.T) {
	cfg := &StructuredConfig{
		App:      App{LogLevel: "debug"},
		Notifier: Notifier{WebhookURL: "https://hooks.slack.com/services/T/B/secret", RequestTimeout: time.Second},
	}

	redacted := cfg.Redacted()

	assert.Equal(t, "[REDACTED]", redacted.Notifier.WebhookURL)
	assert.Equal(t, time.Second, redacted.Notifier.RequestTimeout)
	assert.Equal(t, "debug", redacted.App.LogLevel)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/secret", cfg.Notifier.WebhookURL)
}

func TestRedacted_EmptyWebhookUnchanged(t *testing.T) {
	cfg := StructuredConfig{}
	assert.Empty(t, cfg.Redacted().Notifier.WebhookURL)
}
