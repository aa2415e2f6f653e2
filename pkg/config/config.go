// Package config loads docbolt's TOML configuration file.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/docbolt/docbolt/pkg/engine"
	"github.com/docbolt/docbolt/pkg/persist"
)

// Duration wraps time.Duration so TOML values like "5m" decode directly.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

type StorageConfig struct {
	DataDir         string   `toml:"data_dir"`
	Database        string   `toml:"database"`
	InMemory        bool     `toml:"in_memory"`
	Compression     bool     `toml:"compression"`
	CompactInterval Duration `toml:"compact_interval"`
	OnRecordError   string   `toml:"on_record_error"` // continue | abort
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{ListenAddr: ":8080"},
		Storage: StorageConfig{
			DataDir:       ".",
			Database:      "docbolt",
			OnRecordError: "continue",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a TOML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.OnRecordError {
	case "", "continue", "abort":
		return nil
	default:
		return fmt.Errorf("invalid on_record_error %q (want continue or abort)", c.Storage.OnRecordError)
	}
}

// EngineOptions translates the storage section into engine options.
func (c Config) EngineOptions() []engine.EngineOption {
	opts := []engine.EngineOption{
		engine.WithDataDir(c.Storage.DataDir),
		engine.WithDatabase(c.Storage.Database),
		engine.WithCompression(c.Storage.Compression),
	}
	if c.Storage.InMemory {
		opts = append(opts, engine.WithInMemoryOnly())
	}
	if c.Storage.CompactInterval > 0 {
		opts = append(opts, engine.WithBackgroundCompaction(time.Duration(c.Storage.CompactInterval)))
	}
	if c.Storage.OnRecordError == "abort" {
		opts = append(opts, engine.WithRecordErrorPolicy(persist.RecordErrorAbort))
	}
	return opts
}
