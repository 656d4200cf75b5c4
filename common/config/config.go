// Package config loads scened's startup configuration from a YAML
// file, giving the daemon's flat configuration (SCENE_LOG_LEVEL, the
// -model flag for an initial model path) a structured,
// testable counterpart for anything more than a couple of knobs.
package config

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v2"
)

// Config is scened's process-wide configuration.
type Config struct {
	// ListenAddress is the loopback TCP endpoint the updater task
	// accepts connections on, e.g. "127.0.0.1:1234".
	ListenAddress string `yaml:"listen_address"`
	// InitialModelPath, if set, names a binary-encoded model file
	// loaded into the root scene at startup; a zero value
	// means "use the built-in default".
	InitialModelPath string `yaml:"initial_model_path"`
	// LogLevel is one of CRITICAL/ERROR/WARNING/NOTICE/INFO/DEBUG.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenAddress: "127.0.0.1:1234",
		LogLevel:      "INFO",
	}
}

// Load reads and validates a YAML config file, filling in defaults for
// any field the file leaves unset.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.ListenAddress == "" {
		return Config{}, fmt.Errorf("config: listen_address must not be empty")
	}
	return cfg, nil
}
