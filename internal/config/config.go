// Package config loads habitus defaults from a TOML file and .env files.
// Command-line flags and environment variables override anything set here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/julianstephens/habitus/internal/constants"
)

// EnvConfigFile overrides the location of the config file.
const EnvConfigFile = "HABITUS_CONFIG_FILE"

// Config represents the config.toml file.
type Config struct {
	Database Database `toml:"database"`
	Server   Server   `toml:"server"`
	Log      Log      `toml:"log"`

	// Family is the family ID used when a command does not name one.
	Family string `toml:"family"`
	// Timezone is the IANA zone that decides what "today" is.
	Timezone string `toml:"timezone"`
}

// Database selects the storage backend.
type Database struct {
	// Path is a SQLite file path or a PostgreSQL connection string without
	// a password.
	Path string `toml:"path"`
	// Keyring reads the PostgreSQL connection string from the OS keyring.
	Keyring bool `toml:"keyring"`
}

type Server struct {
	Listen string `toml:"listen"`
}

type Log struct {
	Debug bool `toml:"debug"`
	JSON  bool `toml:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database: Database{Path: constants.DefaultConfigPath},
		Server:   Server{Listen: constants.DefaultListenAddr},
		Timezone: constants.DefaultTimezone,
	}
}

// Path returns the config file location, honoring HABITUS_CONFIG_FILE.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p
	}
	return filepath.Join(constants.DefaultConfigDir, constants.ConfigFileName)
}

// Load reads the config file at path on top of the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", expanded, err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", expanded, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse config file %s: unknown key %q", expanded, undecoded[0].String())
	}

	cfg.Database.Path = strings.TrimSpace(cfg.Database.Path)
	cfg.Server.Listen = strings.TrimSpace(cfg.Server.Listen)
	cfg.Family = strings.TrimSpace(cfg.Family)
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)

	return cfg, nil
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
