package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Store reads and writes the configuration document. The codec is chosen by
// file extension: .yaml/.yml use YAML, anything else TOML.
//
// Writes are plain load-modify-save with no locking; concurrent gim
// invocations sharing one file are last-writer-wins.
type Store struct {
	path string
}

// NewStore returns a Store for the config file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file path.
func (s *Store) Path() string { return s.path }

// Dir returns the directory holding the config file. Prompt overrides live here too.
func (s *Store) Dir() string { return filepath.Dir(s.path) }

// Load reads the config file, creating it with defaults when it does not exist.
func (s *Store) Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := s.Save(&cfg); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		return &cfg, nil
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := s.unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Save writes cfg to the config file, creating parent directories as needed.
func (s *Store) Save(cfg *Config) error {
	data, err := s.marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	// The file holds an API key.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Update loads the config, applies fn and saves the result.
func (s *Store) Update(fn func(*Config) error) (*Config, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode renders cfg in the store's format.
func (s *Store) Encode(cfg *Config) ([]byte, error) {
	return s.marshal(cfg)
}

func (s *Store) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(s.path))
	return ext == ".yaml" || ext == ".yml"
}

func (s *Store) unmarshal(data []byte, cfg *Config) error {
	if s.isYAML() {
		return yaml.Unmarshal(data, cfg)
	}
	return toml.Unmarshal(data, cfg)
}

func (s *Store) marshal(cfg *Config) ([]byte, error) {
	if s.isYAML() {
		return yaml.Marshal(cfg)
	}
	return toml.Marshal(cfg)
}
