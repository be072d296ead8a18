package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfigPath names the variable that points Load at a YAML file.
const EnvConfigPath = "CONFIG_PATH"

// searchPaths are tried in order when no path is given.
var searchPaths = []string{"config.yaml", "/etc/research-ledger/config.yaml"}

// Load reads configuration from $CONFIG_PATH (or the first search path that
// exists) and the environment, then validates it.
// Priority: ENV > YAML > env-default tags.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(EnvConfigPath))
}

// LoadFile is Load with an explicit YAML path. An explicit path must exist;
// an empty path falls back to the search paths and then to ENV only.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = firstExisting(searchPaths)
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		} else if !errors.Is(err, fs.ErrNotExist) {
			// Unreadable but present: let cleanenv report it.
			return p
		}
	}
	return ""
}
