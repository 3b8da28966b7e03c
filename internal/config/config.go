package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Viewer Viewer `toml:"viewer"`
	Cache  Cache  `toml:"cache"`
	Theme  Theme  `toml:"theme"`
	Remote Remote `toml:"remote"`
}

// Viewer holds the line geometry of the hex view
type Viewer struct {
	BytesPerLine     int   `toml:"bytes_per_line"`
	LineHeightPx     int   `toml:"line_height_px"`
	VisibleLineCount int   `toml:"visible_line_count"`
	InMemoryMaxBytes int64 `toml:"in_memory_max_bytes"`
}

// Cache holds the paging cache bounds
type Cache struct {
	ChunkSize       int64 `toml:"chunk_size"`
	MaxCachedChunks int   `toml:"max_cached_chunks"`
	PreloadRadius   int64 `toml:"preload_radius"`
}

// Theme defines the view's color scheme
type Theme struct {
	Name       string `toml:"name"`
	Offset     string `toml:"offset"`
	HexEven    string `toml:"hex_even"`
	HexOdd     string `toml:"hex_odd"`
	ASCII      string `toml:"ascii"`
	Selection  string `toml:"selection"`
	StatusBar  string `toml:"status_bar"`
	StatusText string `toml:"status_text"`
	Background string `toml:"background"`
}

// Remote holds S3/MinIO connection settings; credentials come from the
// environment, not from the config file
type Remote struct {
	Endpoint string `toml:"endpoint"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Viewer: Viewer{
			BytesPerLine:     16,
			LineHeightPx:     24,
			VisibleLineCount: 50,
			InMemoryMaxBytes: 4 * 1024 * 1024, // larger files go through the paging cache
		},
		Cache: Cache{
			ChunkSize:       1024 * 1024,
			MaxCachedChunks: 20,
			PreloadRadius:   2 * 1024 * 1024,
		},
		Theme: Theme{
			Name:       "subtle",
			Offset:     "240", // dark gray
			HexEven:    "252", // light gray
			HexOdd:     "248", // slightly darker, to pair bytes visually
			ASCII:      "108", // soft green
			Selection:  "214", // orange
			StatusBar:  "236",
			StatusText: "252",
			Background: "#1a1a1a",
		},
		Remote: Remote{
			Region: "us-east-1",
		},
	}
}

// Load loads config from file, falling back to defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves config to file
func Save(cfg *Config) error {
	configPath := getConfigPath()
	if configPath == "" {
		return nil
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bap", "config.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "bap", "config.toml")
}

// GetConfigPath exports the config path for user reference
func GetConfigPath() string {
	return getConfigPath()
}
