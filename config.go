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

package vesting

import (
	"errors"
	"log/slog"
	"time"

	"github.com/campustudio/blockchain-vesting-app/custody"
	"github.com/prometheus/client_golang/prometheus"
)

// runMode constants for operational mode configuration
const (
	runModeServe = "serve"
	runModeDev   = "dev"
)

type Config struct {
	promRegistry    prometheus.Registerer
	logger          *slog.Logger
	custodyFacility custody.Facility
	dataDir         string
	blobPlugin      string
	metadataPlugin  string
	operator        string
	extraOperators  []string
	runMode         string
	tracing         bool
	tracingStdout   bool
	shutdownTimeout time.Duration
}

// ConfigOptionFunc is a type that represents functions that modify the engine config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new engine config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		runMode:         runModeServe,
		shutdownTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger specifies the logger to use. This defaults to discarding log output
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithDatabasePath specifies the persistent data directory to use. This defaults
// to in-memory storage
func WithDatabasePath(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithBlobPlugin specifies the blob store plugin to use
func WithBlobPlugin(plugin string) ConfigOptionFunc {
	return func(c *Config) {
		c.blobPlugin = plugin
	}
}

// WithMetadataPlugin specifies the metadata store plugin to use
func WithMetadataPlugin(plugin string) ConfigOptionFunc {
	return func(c *Config) {
		c.metadataPlugin = plugin
	}
}

// WithPrometheusRegistry specifies a prometheus.Registerer instance to register metrics with
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithCustodyFacility specifies the custody facility used to move value in
// and out of the ledger's control
func WithCustodyFacility(facility custody.Facility) ConfigOptionFunc {
	return func(c *Config) {
		c.custodyFacility = facility
	}
}

// WithOperator specifies the operator identity. The operator performs
// administrative operations and receives revocation refunds and sweeps
func WithOperator(operator string) ConfigOptionFunc {
	return func(c *Config) {
		c.operator = operator
	}
}

// WithExtraOperators specifies additional identities authorized for
// administrative operations
func WithExtraOperators(operators ...string) ConfigOptionFunc {
	return func(c *Config) {
		c.extraOperators = operators
	}
}

// WithRunMode specifies the operational mode: serve (default) or dev.
// Dev mode provides an in-memory custody facility when none is configured
func WithRunMode(mode string) ConfigOptionFunc {
	return func(c *Config) {
		c.runMode = mode
	}
}

// WithTracing enables tracing. Trace data is sent via OTLP-over-HTTP, configured
// using the OTEL_EXPORTER_OTLP_* env vars documented in the README for [go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp]
func WithTracing(tracing bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracing = tracing
	}
}

// WithTracingStdout enables tracing output to stdout. This also requires tracing to be enabled
func WithTracingStdout(stdout bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracingStdout = stdout
	}
}

// WithShutdownTimeout specifies the timeout for graceful shutdown
func WithShutdownTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.shutdownTimeout = timeout
	}
}

// isDevMode returns true if running in development mode
func (c *Config) isDevMode() bool {
	return c.runMode == runModeDev
}

func (e *Engine) configValidate() error {
	if e.config.operator == "" {
		return errors.New("no operator identity defined")
	}
	switch e.config.runMode {
	case runModeServe, runModeDev, "":
	default:
		return errors.New("unknown run mode: " + e.config.runMode)
	}
	if e.config.custodyFacility == nil && !e.config.isDevMode() {
		return errors.New("no custody facility defined")
	}
	return nil
}
