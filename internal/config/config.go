package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the netstringctl runtime configuration.
type Config struct {
	MaxPayloadBytes int
	MaxLengthDigits int
	ReadBufferBytes int
	ListenAddr      string
	DialAddr        string
	MetricsAddr     string
	// LogLevel is empty unless the file sets log_level.
	LogLevel        string
}

type fileConfig struct {
	MaxPayloadBytes int    `toml:"max_payload_bytes"`
	MaxLengthDigits int    `toml:"max_length_digits"`
	ReadBufferBytes int    `toml:"read_buffer_bytes"`
	ListenAddr      string `toml:"listen_addr"`
	DialAddr        string `toml:"dial_addr"`
	MetricsAddr     string `toml:"metrics_addr"`
	LogLevel        string `toml:"log_level"`
}

func Default() Config {
	return Config{
		MaxPayloadBytes: 8 * 1024 * 1024,
		MaxLengthDigits: 20,
		ReadBufferBytes: 4096,
		ListenAddr:      "127.0.0.1:7979",
		DialAddr:        "127.0.0.1:7979",
	}
}

// Load reads path over Default. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("max_payload_bytes") {
		cfg.MaxPayloadBytes = raw.MaxPayloadBytes
	}
	if meta.IsDefined("max_length_digits") {
		cfg.MaxLengthDigits = raw.MaxLengthDigits
	}
	if meta.IsDefined("read_buffer_bytes") {
		cfg.ReadBufferBytes = raw.ReadBufferBytes
	}
	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("dial_addr") {
		cfg.DialAddr = strings.TrimSpace(raw.DialAddr)
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}

func Validate(cfg Config) error {
	if cfg.MaxPayloadBytes < 0 {
		return fmt.Errorf("max_payload_bytes must be >= 0")
	}
	if cfg.MaxLengthDigits < 0 {
		return fmt.Errorf("max_length_digits must be >= 0")
	}
	if cfg.ReadBufferBytes <= 0 {
		return fmt.Errorf("read_buffer_bytes must be > 0")
	}
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if strings.TrimSpace(cfg.DialAddr) == "" {
		return fmt.Errorf("dial_addr is required")
	}
	return nil
}
