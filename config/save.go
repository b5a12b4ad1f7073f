package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveGlobal writes a key-value pair to the global config file, creating
// the file and its directory when missing.
func SaveGlobal(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	configPath, err := globalConfigPath()
	if err != nil {
		return err
	}

	existing := loadYAMLMap(configPath)
	existing[key] = parseValue(value)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}

// SaveLocal writes a key-value pair to the local config file under dir,
// usually a git root.
func SaveLocal(dir, key, value string) error {
	if dir == "" {
		return fmt.Errorf("local config directory not set")
	}
	if err := validateKey(key); err != nil {
		return err
	}

	configPath := filepath.Join(dir, localConfigName)

	existing := loadYAMLMap(configPath)
	existing[key] = parseValue(value)

	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}

	// Local config is shared and should be readable
	return os.WriteFile(configPath, data, 0o644) //nolint:gosec
}

// DeleteGlobalKey removes a key from the global config file. Deleting a
// key that is not present is not an error.
func DeleteGlobalKey(key string) error {
	configPath, err := globalConfigPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil // Nothing to delete
	}

	var existing map[string]interface{}
	if err := yaml.Unmarshal(data, &existing); err != nil {
		return nil
	}

	delete(existing, key)

	data, err = yaml.Marshal(existing)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}

func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", globalConfigDir, globalConfigName), nil
}

func validateKey(key string) error {
	if !contains(Keys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(Keys, ", "))
	}
	return nil
}

// loadYAMLMap reads a YAML mapping, returning an empty map when the
// file is missing or malformed. Save operations replace malformed files.
func loadYAMLMap(path string) map[string]interface{} {
	var existing map[string]interface{}
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &existing)
	}
	if existing == nil {
		existing = make(map[string]interface{})
	}
	return existing
}

// parseValue converts string values to appropriate types for YAML.
func parseValue(value string) interface{} {
	lower := strings.ToLower(value)
	if lower == "true" {
		return true
	}
	if lower == "false" {
		return false
	}
	return value
}
