// Copyright 2025 Campustudio
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "vestd.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const (
	DefaultBlobPlugin      = "badger"
	DefaultMetadataPlugin  = "sqlite"
	DefaultShutdownTimeout = "30s"
)

// RunMode represents the operational mode of the vesting engine
type RunMode string

const (
	RunModeServe RunMode = "serve" // Normal operation (default)
	RunModeDev   RunMode = "dev"   // Development mode (in-memory custody)
)

// Valid returns true if the RunMode is a known valid mode
func (m RunMode) Valid() bool {
	switch m {
	case RunModeServe, RunModeDev, "":
		return true
	default:
		return false
	}
}

// IsDevMode returns true if the mode enables development behaviors
func (m RunMode) IsDevMode() bool {
	return m == RunModeDev
}

type Config struct {
	DatabasePath    string   `yaml:"databasePath"                                          split_words:"true"`
	BlobPlugin      string   `yaml:"blobPlugin"      envconfig:"VESTD_DATABASE_BLOB_PLUGIN"`
	MetadataPlugin  string   `yaml:"metadataPlugin"  envconfig:"VESTD_DATABASE_METADATA_PLUGIN"`
	Operator        string   `yaml:"operator"`
	ExtraOperators  []string `yaml:"extraOperators"                                        split_words:"true"`
	BindAddr        string   `yaml:"bindAddr"                                              split_words:"true"`
	MetricsPort     uint     `yaml:"metricsPort"                                           split_words:"true"`
	ShutdownTimeout string   `yaml:"shutdownTimeout"                                       split_words:"true"`
	Tracing         bool     `yaml:"tracing"`
	TracingStdout   bool     `yaml:"tracingStdout"                                         split_words:"true"`
	RunMode         RunMode  `yaml:"runMode"         envconfig:"VESTD_RUN_MODE"`
}

func defaultConfig() *Config {
	return &Config{
		BlobPlugin:      DefaultBlobPlugin,
		MetadataPlugin:  DefaultMetadataPlugin,
		BindAddr:        "0.0.0.0",
		MetricsPort:     12798,
		ShutdownTimeout: DefaultShutdownTimeout,
		RunMode:         RunModeServe,
	}
}

// LoadConfig builds the configuration from an optional YAML file overlaid
// with VESTD_* environment variables
func LoadConfig(configFile string) (*Config, error) {
	cfg := defaultConfig()
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.vestd/vestd.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".vestd", "vestd.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}
		// Try to check for /etc/vestd/vestd.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/vestd/vestd.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Environment variables override file values
	if err := envconfig.Process("vestd", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if !cfg.RunMode.Valid() {
		return nil, fmt.Errorf("invalid run mode: %s", cfg.RunMode)
	}
	if cfg.Operator == "" && !cfg.RunMode.IsDevMode() {
		return nil, fmt.Errorf("no operator identity configured")
	}
	return cfg, nil
}
