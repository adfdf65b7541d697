package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Issue is one finding of Validate.
type Issue struct {
	Key      string `json:"key"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// Validate checks cfg for settings that would make commands fail.
func Validate(cfg *Config) []Issue {
	var issues []Issue

	switch cfg.Insert.Target {
	case "stdout", "clipboard":
	case "docx":
		if cfg.Insert.Document == "" {
			issues = append(issues, Issue{
				Key:      "insert.document",
				Severity: "error",
				Message:  "insert target is docx but no document is set",
				Fix:      "phrasekit config set insert.document ~/reply.docx",
			})
		} else if _, err := os.Stat(cfg.Insert.Document); err != nil {
			issues = append(issues, Issue{
				Key:      "insert.document",
				Severity: "warning",
				Message:  fmt.Sprintf("document %s does not exist yet", cfg.Insert.Document),
				Fix:      fmt.Sprintf("phrasekit doc new %s", cfg.Insert.Document),
			})
		}
		if cfg.Insert.Marker == "" {
			issues = append(issues, Issue{
				Key:      "insert.marker",
				Severity: "error",
				Message:  "cursor marker is empty",
				Fix:      "phrasekit config set insert.marker '{{cursor}}'",
			})
		}
	default:
		issues = append(issues, Issue{
			Key:      "insert.target",
			Severity: "error",
			Message:  fmt.Sprintf("unknown insert target %q", cfg.Insert.Target),
			Fix:      "use one of: stdout, clipboard, docx",
		})
	}

	if cfg.Data.Path == "" {
		issues = append(issues, Issue{
			Key:      "data.path",
			Severity: "info",
			Message:  "no default spreadsheet — pass a file to each command",
		})
	} else if !strings.HasSuffix(strings.ToLower(cfg.Data.Path), ".xlsx") {
		issues = append(issues, Issue{
			Key:      "data.path",
			Severity: "warning",
			Message:  fmt.Sprintf("%s does not look like an .xlsx file", cfg.Data.Path),
		})
	}

	if cfg.Watch.DebounceMs < 0 {
		issues = append(issues, Issue{
			Key:      "watch.debounce_ms",
			Severity: "error",
			Message:  "debounce must not be negative",
		})
	}

	return issues
}

// Set stores a value and saves the config file.
func Set(key, value string) error {
	viper.Set(key, value)
	return Save()
}

// Save writes the current settings to the default config file.
func Save() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return os.Chmod(path, 0600)
}

// Show renders cfg as YAML.
func Show(cfg *Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("could not render config: %w", err)
	}
	return string(data), nil
}
