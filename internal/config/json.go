package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		Version  string `json:"version"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Variables struct {
		FilePath string `json:"file_path"`
	} `json:"variables,omitempty"`

	Notifier struct {
		WebhookURL     string   `json:"webhook_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"notifier,omitempty"`

	Project struct {
		ConfigPath string `json:"config_path"`
		RootDir    string `json:"root_dir"`
	} `json:"project,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:  jsonCfg.App.Version,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Variables: Variables{
			FilePath: jsonCfg.Variables.FilePath,
		},
		Notifier: Notifier{
			WebhookURL:     jsonCfg.Notifier.WebhookURL,
			RequestTimeout: time.Duration(jsonCfg.Notifier.RequestTimeout),
		},
		Project: Project{
			ConfigPath: jsonCfg.Project.ConfigPath,
			RootDir:    jsonCfg.Project.RootDir,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
