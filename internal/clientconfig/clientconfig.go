// Package clientconfig reads and writes the terminal client's TOML files
// under the XDG config directory.
package clientconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appDir = "ichu"

// Config is the persisted client configuration.
type Config struct {
	ServerURL string   `toml:"server_url"`
	Timeout   Duration `toml:"timeout"`
	View      View     `toml:"view"`
}

// View holds the initial view state for list commands.
type View struct {
	SortKey   string `toml:"sort"`
	Direction string `toml:"direction"`
	Density   string `toml:"density"`
	Category  string `toml:"category"`
}

// Duration is a time.Duration that round-trips through TOML as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		ServerURL: "http://localhost:8080",
		Timeout:   Duration{30 * time.Second},
		View: View{
			SortKey:   "total",
			Direction: "desc",
			Density:   "table",
			Category:  "all",
		},
	}
}

// ConfigHome returns XDG_CONFIG_HOME or ~/.config.
func ConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// Dir returns the directory holding the client's files.
func Dir() string {
	return filepath.Join(ConfigHome(), appDir)
}

// FilePath returns the path to config.toml.
func FilePath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path, creating it with defaults if it does not
// exist. Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	return writeTOML(path, cfg, 0o644)
}

func writeTOML(path string, v any, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //#nosec G304 -- path under the user's config dir
	if err != nil {
		return fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}
