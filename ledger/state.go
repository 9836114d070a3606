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

package ledger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/campustudio/blockchain-vesting-app/custody"
	"github.com/campustudio/blockchain-vesting-app/database"
	"github.com/campustudio/blockchain-vesting-app/event"
	"github.com/prometheus/client_golang/prometheus"
)

type LedgerConfig struct {
	Logger         *slog.Logger
	DataDir        string
	BlobPlugin     string
	MetadataPlugin string
	EventBus       *event.EventBus
	Custody        custody.Facility
	Authorizer     Authorizer
	Operator       string
	PromRegistry   prometheus.Registerer
	Now            func() time.Time
}

// Ledger is the vesting state machine. All mutating operations are
// serialized behind the embedded lock, and each one either commits fully
// or leaves no trace.
type Ledger struct {
	sync.RWMutex
	config        LedgerConfig
	db            *database.Database
	metrics       ledgerMetrics
	schedules     map[string]*Schedule
	byBeneficiary map[string]map[string]struct{}
	lockedTotals  map[string]uint64
	paused        bool
}

func NewLedger(cfg LedgerConfig) (*Ledger, error) {
	if cfg.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Custody == nil {
		return nil, errors.New("no custody facility provided")
	}
	if cfg.Authorizer == nil {
		return nil, errors.New("no authorizer provided")
	}
	if cfg.Operator == "" {
		return nil, errors.New("no operator identity provided")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	l := &Ledger{
		config:        cfg,
		schedules:     make(map[string]*Schedule),
		byBeneficiary: make(map[string]map[string]struct{}),
		lockedTotals:  make(map[string]uint64),
	}
	// Init metrics
	l.metrics.init(cfg.PromRegistry)
	// Load database
	db, err := database.New(
		&database.Config{
			Logger:         cfg.Logger,
			PromRegistry:   cfg.PromRegistry,
			DataDir:        cfg.DataDir,
			BlobPlugin:     cfg.BlobPlugin,
			MetadataPlugin: cfg.MetadataPlugin,
		},
	)
	if db == nil {
		if err == nil {
			err = errors.New("empty database returned")
		}
		l.config.Logger.Error(
			"failed to create database",
			"error",
			err,
			"component",
			"ledger",
		)
		return nil, err
	}
	l.db = db
	if err != nil {
		var dbErr database.CommitTimestampError
		if !errors.As(err, &dbErr) {
			return nil, err
		}
		// The journal commits before the metadata store, so a mismatch
		// means at most one journal entry without matching metadata. The
		// metadata snapshot stays authoritative.
		l.config.Logger.Warn(
			"commit timestamp mismatch, using metadata snapshot",
			"error",
			err,
			"component",
			"ledger",
		)
	}
	// Load schedules and locked totals from DB
	if err := l.load(); err != nil {
		l.db.Close()
		return nil, err
	}
	return l, nil
}

// load rebuilds the in-memory schedule map, beneficiary index, and locked
// totals from the metadata store in a single consistent snapshot
func (l *Ledger) load() error {
	txn := l.db.Transaction(false)
	defer txn.Release()
	scheduleModels, err := l.db.GetSchedules(txn)
	if err != nil {
		return fmt.Errorf("failed to load schedules: %w", err)
	}
	for i := range scheduleModels {
		s := scheduleFromModel(&scheduleModels[i])
		l.schedules[s.Id] = s
		l.indexAdd(s.Beneficiary, s.Id)
	}
	lockedModels, err := l.db.GetLockedTotals(txn)
	if err != nil {
		return fmt.Errorf("failed to load locked totals: %w", err)
	}
	for _, lt := range lockedModels {
		l.lockedTotals[lt.Asset] = uint64(lt.Amount)
		l.metrics.lockedTotal.WithLabelValues(lt.Asset).
			Set(float64(uint64(lt.Amount)))
	}
	l.metrics.schedules.Set(float64(len(l.schedules)))
	l.config.Logger.Info(
		fmt.Sprintf(
			"loaded %d schedule(s) across %d asset(s)",
			len(l.schedules),
			len(l.lockedTotals),
		),
		"component", "ledger",
	)
	return nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Database returns the underlying database instance
func (l *Ledger) Database() *database.Database {
	return l.db
}

func (l *Ledger) now() int64 {
	return l.config.Now().Unix()
}

func (l *Ledger) requireOperator(caller string) error {
	if !l.config.Authorizer.IsOperator(caller) {
		return fmt.Errorf("%w: %s is not an operator", ErrUnauthorized, caller)
	}
	return nil
}

func (l *Ledger) indexAdd(beneficiary, scheduleId string) {
	ids, ok := l.byBeneficiary[beneficiary]
	if !ok {
		ids = make(map[string]struct{})
		l.byBeneficiary[beneficiary] = ids
	}
	ids[scheduleId] = struct{}{}
}

func (l *Ledger) indexRemove(beneficiary, scheduleId string) {
	ids, ok := l.byBeneficiary[beneficiary]
	if !ok {
		return
	}
	delete(ids, scheduleId)
	if len(ids) == 0 {
		delete(l.byBeneficiary, beneficiary)
	}
}

// setLockedTotal updates the in-memory locked total and its gauge. The
// durable copy is written separately inside the operation's transaction.
func (l *Ledger) setLockedTotal(asset string, amount uint64) {
	l.lockedTotals[asset] = amount
	l.metrics.lockedTotal.WithLabelValues(asset).Set(float64(amount))
}

func (l *Ledger) publish(eventType event.EventType, data any) {
	if l.config.EventBus == nil {
		return
	}
	l.config.EventBus.PublishAsync(
		eventType,
		event.NewEvent(eventType, data),
	)
}

// mapCustodyError translates custody facility failures into the ledger's
// error kinds
func mapCustodyError(err error) error {
	if errors.Is(err, custody.ErrInsufficientBalance) {
		return fmt.Errorf("%w: %v", ErrInsufficientFunds, err)
	}
	return err
}
