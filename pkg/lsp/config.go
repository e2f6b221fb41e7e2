package lsp

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a client can observe.
type Config struct {
	// ServerName is reported in the initialize response.
	ServerName string `yaml:"server_name"`
	// Banner is the informational diagnostic published when a document opens.
	Banner string `yaml:"banner"`
	// Source labels published diagnostics. Empty omits the field.
	Source string `yaml:"source"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		ServerName: "dod-lsp",
		Banner:     "dod language server is running",
	}
}

// LoadConfig reads a YAML config file, layering it over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	return ParseConfig(f)
}

// ParseConfig decodes YAML settings from r over DefaultConfig.
// Unknown keys are rejected; an empty document yields the defaults.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.ServerName == "" {
		return Config{}, errors.New("decoding config: server_name must not be empty")
	}
	return cfg, nil
}
