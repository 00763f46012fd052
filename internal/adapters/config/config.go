package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds CLI configuration from config.toml.
type Config struct {
	Catalog  Catalog  `toml:"catalog"`
	Storage  Storage  `toml:"storage"`
	Playback Playback `toml:"playback"`
}

// Catalog configures the sound catalog API.
type Catalog struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Storage configures where settings, favorites, and session state live.
type Storage struct {
	Dir string `toml:"dir"`
}

// Playback selects and configures the playback backend.
type Playback struct {
	Backend     string `toml:"backend"`
	VLCURL      string `toml:"vlc_url"`
	VLCUser     string `toml:"vlc_user"`
	VLCPassword string `toml:"vlc_password"`
	GstPipeline string `toml:"gst_pipeline"`
}

// Timeout returns the catalog request timeout.
func (c Catalog) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load loads config.toml if present. Missing file returns defaults.
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path)
}

// LoadFile loads a specific config file. Missing file returns defaults.
func LoadFile(path string) (Config, error) {
	cfg := defaults()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if info.IsDir() {
		return Config{}, errors.New("config path is a directory")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Playback.Backend == "" {
		cfg.Playback.Backend = "vlc"
	}
	return cfg, nil
}

// StorageDir resolves the directory for persisted state, falling back to the
// XDG data directory.
func (c Config) StorageDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "sb"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "sb"), nil
}

func defaults() Config {
	return Config{
		Catalog: Catalog{BaseURL: "https://freesound.org/apiv2"},
		Playback: Playback{
			Backend: "vlc",
			VLCURL:  "http://127.0.0.1:8080",
		},
	}
}

func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sb", "config.toml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sb", "config.toml"), nil
}
