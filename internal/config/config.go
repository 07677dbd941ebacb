// Package config provides configuration loading and structs for the
// briefpipe server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	OCR      OCRConfig      `yaml:"ocr"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Intake   IntakeConfig   `yaml:"intake"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the database and the precedent index.
type StorageConfig struct {
	DatabasePath       string `yaml:"database_path"`
	PrecedentIndexPath string `yaml:"precedent_index_path"`
}

// OCRConfig holds OCR engine settings.
type OCRConfig struct {
	ModelPath      string `yaml:"model_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MinTextLength  int    `yaml:"min_text_length"`
}

// AnalysisConfig holds analysis and precedent matching settings.
type AnalysisConfig struct {
	ChunkSize      int `yaml:"chunk_size"`
	PrecedentLimit int `yaml:"precedent_limit"`
}

// IntakeConfig holds drop-directory watch settings.
type IntakeConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.PrecedentIndexPath = expandPath(cfg.Storage.PrecedentIndexPath, configDir)
	cfg.OCR.ModelPath = expandPath(cfg.OCR.ModelPath, configDir)
	for i := range cfg.Intake.Directories {
		cfg.Intake.Directories[i] = expandPath(cfg.Intake.Directories[i], configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
