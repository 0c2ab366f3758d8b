package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDrill loads the drill configuration.
// Search order: customPath -> ~/.arcade/configs/drill.yaml -> ./configs/drill.yaml -> embedded default.
// Files are layered over the defaults, so a partial file only overrides
// the keys it names.
func LoadDrill(customPath string) (DrillConfig, error) {
	cfg := DefaultDrillConfig()
	if err := load(customPath, "drill.yaml", defaultDrillYAML, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// load fills dst from the first readable config in search order. A file
// that exists but does not parse is an error and leaves dst untouched.
func load[T any](customPath, filename string, embedded []byte, dst *T) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return decode(customPath, data, dst)
	}

	paths := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		paths = append([]string{userCfgPath}, paths...)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return decode(path, data, dst)
	}

	// Embedded default; the hard-coded defaults already in dst stay if it
	// fails to parse
	_ = decode("embedded", embedded, dst)
	return nil
}

// decode layers data over a copy of dst and stores it only on success.
func decode[T any](path string, data []byte, dst *T) error {
	next := *dst
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	*dst = next
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
