package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Map     MapConfig     `toml:"map"`
	Display DisplayConfig `toml:"display"`
}

type StorageConfig struct {
	Driver           string `toml:"driver"`            // "sqlite" or "libsql".
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
	SlotKey          string `toml:"slot_key"`
}

type MapConfig struct {
	ZoomLevel int `toml:"zoom_level"`
}

type DisplayConfig struct {
	Timezone string `toml:"timezone"` // IANA name, empty for the local zone.
}

// Returns the directory holding config.toml and the default database.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mapty"), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Default() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Storage: StorageConfig{
			Driver:           "sqlite",
			ConnectionString: "file:" + filepath.Join(dir, "mapty.db"),
			SlotKey:          "workouts",
		},
		Map: MapConfig{ZoomLevel: 13},
	}, nil
}

// Reads the configuration from path, or from the default location when path
// is empty. A missing file means defaults. Env vars override the file:
//
//	MAPTY_DATABASE_URL, MAPTY_STORAGE_DRIVER, MAPTY_SLOT_KEY, MAPTY_ZOOM, DEV_MODE
func LoadConfig(path string) (*Config, error) {
	// A .env file is optional here.
	_ = godotenv.Load()

	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MAPTY_DATABASE_URL"); v != "" {
		cfg.Storage.ConnectionString = v
		cfg.Storage.Driver = "libsql"
	}
	if v := os.Getenv("MAPTY_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("MAPTY_SLOT_KEY"); v != "" {
		cfg.Storage.SlotKey = v
	}
	if v := os.Getenv("MAPTY_ZOOM"); v != "" {
		if zoom, err := strconv.Atoi(v); err == nil {
			cfg.Map.ZoomLevel = zoom
		}
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.ConnectionString = "file:./local.db"
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "sqlite", "libsql":
	default:
		return fmt.Errorf("storage.driver must be sqlite or libsql, got %q", c.Storage.Driver)
	}
	if c.Storage.ConnectionString == "" {
		return fmt.Errorf("storage.connection_string is required")
	}
	if c.Storage.SlotKey == "" {
		return fmt.Errorf("storage.slot_key is required")
	}
	if c.Map.ZoomLevel < 1 || c.Map.ZoomLevel > 19 {
		return fmt.Errorf("map.zoom_level must be between 1 and 19")
	}
	return nil
}
