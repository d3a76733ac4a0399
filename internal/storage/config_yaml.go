package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cubetimer/internal/core/model"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.json"

// ErrMissingField indicates a required credential is absent.
var ErrMissingField = errors.New("missing config field")

// ErrConfigNotFound indicates no config file exists at any searched path.
var ErrConfigNotFound = errors.New("config file not found")

// yamlConfig mirrors config.json. JSON is valid YAML, so one decoder reads
// both formats.
type yamlConfig struct {
	URL            string `yaml:"INFLUX_URL"`
	Token          string `yaml:"INFLUX_TOKEN"`
	Org            string `yaml:"INFLUX_ORG"`
	Bucket         string `yaml:"INFLUX_BUCKET"`
	TimeoutSeconds int    `yaml:"INFLUX_TIMEOUT"`
}

// Overrides replace file values when non-empty.
type Overrides struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// LoadConfig reads and validates the InfluxDB credentials at path.
func LoadConfig(path string, overrides Overrides) (model.InfluxConfig, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.InfluxConfig{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return model.InfluxConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return model.InfluxConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyOverrides(&fileData, overrides)
	if err := validate(fileData); err != nil {
		return model.InfluxConfig{}, fmt.Errorf("config %s: %w", path, err)
	}

	config := model.InfluxConfig{
		URL:    strings.TrimSpace(fileData.URL),
		Token:  fileData.Token,
		Org:    strings.TrimSpace(fileData.Org),
		Bucket: strings.TrimSpace(fileData.Bucket),
	}
	if fileData.TimeoutSeconds > 0 {
		config.Timeout = time.Duration(fileData.TimeoutSeconds) * time.Second
	}
	return config, nil
}

// ResolveConfigPath picks the config file to load. An explicit path wins.
// Otherwise config.json in the working directory is preferred over the one
// in the user config directory.
func ResolveConfigPath(appName, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	candidate := filepath.Join(configDir, appName, configFileName)
	if _, err := os.Stat(candidate); err != nil {
		return "", fmt.Errorf("%w: tried %s and %s", ErrConfigNotFound, configFileName, candidate)
	}
	return candidate, nil
}

func applyOverrides(fileData *yamlConfig, overrides Overrides) {
	if overrides.URL != "" {
		fileData.URL = overrides.URL
	}
	if overrides.Token != "" {
		fileData.Token = overrides.Token
	}
	if overrides.Org != "" {
		fileData.Org = overrides.Org
	}
	if overrides.Bucket != "" {
		fileData.Bucket = overrides.Bucket
	}
}

func validate(fileData yamlConfig) error {
	var missing []string
	if strings.TrimSpace(fileData.URL) == "" {
		missing = append(missing, "INFLUX_URL")
	}
	if strings.TrimSpace(fileData.Token) == "" {
		missing = append(missing, "INFLUX_TOKEN")
	}
	if strings.TrimSpace(fileData.Org) == "" {
		missing = append(missing, "INFLUX_ORG")
	}
	if strings.TrimSpace(fileData.Bucket) == "" {
		missing = append(missing, "INFLUX_BUCKET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}
