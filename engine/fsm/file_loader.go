package fsm

import (
	"fmt"
	"os"
)

// LoadConfigAuto loads FSM config with priority: customPath > DefaultConfigPath > embedded
// Returns the source that was loaded for logging
func LoadConfigAuto[T any](m *Machine[T], customPath string, embeddedFallback []byte) (string, error) {
	// Priority 1: Custom path from CLI
	if customPath != "" {
		return customPath, LoadConfigFromPath(m, customPath)
	}

	// Priority 2: Default external config
	if fileExists(DefaultConfigPath) {
		return DefaultConfigPath, LoadConfigFromPath(m, DefaultConfigPath)
	}

	// Priority 3: Embedded fallback
	return "embedded", m.LoadConfig(embeddedFallback)
}

// LoadConfigFromPath loads FSM config from an arbitrary file path
func LoadConfigFromPath[T any](m *Machine[T], configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read FSM config %s: %w", configPath, err)
	}
	if err := m.LoadConfig(data); err != nil {
		return fmt.Errorf("failed to load FSM config from %s: %w", configPath, err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
