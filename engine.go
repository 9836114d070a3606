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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/campustudio/blockchain-vesting-app/custody"
	"github.com/campustudio/blockchain-vesting-app/event"
	"github.com/campustudio/blockchain-vesting-app/ledger"
)

// Engine ties the ledger, event bus, and custody facility together behind a
// single lifecycle
type Engine struct {
	config        Config
	eventBus      *event.EventBus
	ledger        *ledger.Ledger
	custody       custody.Facility
	shutdownFuncs []func(context.Context) error
	done          chan struct{}
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Engine, error) {
	if cfg.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	e := &Engine{
		config: cfg,
		done:   make(chan struct{}),
	}
	if err := e.configValidate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return e, nil
}

// Run starts the engine and blocks until the context is cancelled or Stop
// is called
func (e *Engine) Run(ctx context.Context) error {
	// Configure tracing
	if e.config.tracing {
		if err := e.setupTracing(); err != nil {
			return err
		}
	}
	// Configure event bus
	e.eventBus = event.NewEventBus(e.config.promRegistry, e.config.logger)
	// Configure custody facility
	e.custody = e.config.custodyFacility
	if e.custody == nil && e.config.isDevMode() {
		e.config.logger.Warn(
			"using in-memory custody facility, value is not durable",
			"component", "engine",
		)
		e.custody = custody.NewMemoryFacility()
	}
	// Load ledger
	operators := append(
		[]string{e.config.operator},
		e.config.extraOperators...,
	)
	l, err := ledger.NewLedger(
		ledger.LedgerConfig{
			Logger:         e.config.logger,
			DataDir:        e.config.dataDir,
			BlobPlugin:     e.config.blobPlugin,
			MetadataPlugin: e.config.metadataPlugin,
			EventBus:       e.eventBus,
			Custody:        e.custody,
			Authorizer:     ledger.NewStaticAuthorizer(operators...),
			Operator:       e.config.operator,
			PromRegistry:   e.config.promRegistry,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	e.ledger = l
	e.config.logger.Info(
		"vesting ledger ready",
		"operator", e.config.operator,
		"data_dir", e.config.dataDir,
		"component", "engine",
	)
	// Wait for shutdown
	select {
	case <-ctx.Done():
		return e.Stop()
	case <-e.done:
		return nil
	}
}

// Ledger returns the ledger instance
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// EventBus returns the event bus instance
func (e *Engine) EventBus() *event.EventBus {
	return e.eventBus
}

// Custody returns the active custody facility
func (e *Engine) Custody() custody.Facility {
	return e.custody
}

func (e *Engine) Stop() error {
	var err error
	e.shutdownOnce.Do(func() {
		err = e.shutdown()
		close(e.done)
	})
	return err
}

func (e *Engine) shutdown() error {
	shutdownTimeout := 30 * time.Second
	if e.config.shutdownTimeout > 0 {
		shutdownTimeout = e.config.shutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error

	e.config.logger.Debug(
		"starting graceful shutdown",
		"component", "engine",
	)

	// Phase 1: stop delivering events so no new work arrives
	if e.eventBus != nil {
		e.eventBus.Stop()
	}

	// Phase 2: close the ledger and flush storage
	if e.ledger != nil {
		if closeErr := e.ledger.Close(); closeErr != nil {
			err = errors.Join(
				err,
				fmt.Errorf("ledger shutdown: %w", closeErr),
			)
		}
	}

	// Phase 3: flush tracing
	for _, fn := range e.shutdownFuncs {
		if fnErr := fn(ctx); fnErr != nil {
			err = errors.Join(err, fnErr)
		}
	}
	e.shutdownFuncs = nil

	return err
}
