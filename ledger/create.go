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
	"context"
	"fmt"
	"math"

	"github.com/campustudio/blockchain-vesting-app/database"
	"github.com/campustudio/blockchain-vesting-app/event"
)

// CreateSchedule creates a single vesting schedule, moving the granted
// amount from the caller into custody. It returns the new schedule id.
func (l *Ledger) CreateSchedule(
	ctx context.Context,
	caller string,
	params ScheduleParams,
) (string, error) {
	l.Lock()
	defer l.Unlock()
	id, err := l.createSchedule(ctx, caller, params)
	l.metrics.observeOp("create", err)
	return id, err
}

func (l *Ledger) createSchedule(
	ctx context.Context,
	caller string,
	params ScheduleParams,
) (string, error) {
	if l.paused {
		return "", ErrPaused
	}
	if err := l.requireOperator(caller); err != nil {
		return "", err
	}
	now := l.now()
	if err := params.validate(now); err != nil {
		return "", err
	}
	id, err := newScheduleId()
	if err != nil {
		return "", err
	}
	if _, ok := l.schedules[id]; ok {
		return "", fmt.Errorf("%w: %s", ErrCollision, id)
	}
	locked := l.lockedTotals[params.Asset]
	if params.Amount > math.MaxUint64-locked {
		return "", fmt.Errorf(
			"%w: locked total overflow for asset %s",
			ErrInvalidInput,
			params.Asset,
		)
	}
	sched := &Schedule{
		Id:            id,
		Beneficiary:   params.Beneficiary,
		Asset:         params.Asset,
		TotalAmount:   params.Amount,
		StartTime:     params.StartTime,
		CliffDuration: params.CliffDuration,
		TotalDuration: params.TotalDuration,
		Revocable:     params.Revocable,
	}
	txn := l.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		if err := l.db.SetSchedule(sched.toModel(), txn); err != nil {
			return err
		}
		if err := l.db.SetLockedTotal(params.Asset, locked+params.Amount, txn); err != nil {
			return err
		}
		if err := l.db.AppendJournalEntry(
			&database.JournalEntry{
				Op:          "create",
				ScheduleIds: []string{id},
				Beneficiary: params.Beneficiary,
				Asset:       params.Asset,
				Amount:      params.Amount,
				Timestamp:   now,
			},
			txn,
		); err != nil {
			return err
		}
		// Custody transfer happens last so a failure rolls back all of
		// the above without compensation
		if err := l.config.Custody.TransferIn(
			ctx,
			params.Asset,
			caller,
			params.Amount,
		); err != nil {
			return mapCustodyError(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	l.schedules[id] = sched
	l.indexAdd(sched.Beneficiary, id)
	l.setLockedTotal(params.Asset, locked+params.Amount)
	l.metrics.schedules.Set(float64(len(l.schedules)))
	l.publish(
		event.ScheduleCreatedEventType,
		event.ScheduleCreatedEvent{
			ScheduleId:  id,
			Beneficiary: sched.Beneficiary,
			Asset:       sched.Asset,
			Amount:      sched.TotalAmount,
			StartTime:   sched.StartTime,
			Cliff:       sched.CliffDuration,
			Duration:    sched.TotalDuration,
			Revocable:   sched.Revocable,
		},
	)
	l.config.Logger.Info(
		"created schedule",
		"schedule_id", id,
		"beneficiary", sched.Beneficiary,
		"asset", sched.Asset,
		"amount", sched.TotalAmount,
		"component", "ledger",
	)
	return id, nil
}

// BatchCreateSchedules creates one schedule per beneficiary/amount pair,
// sharing the asset and timing parameters, with a single custody transfer
// for the aggregate amount. The batch is all-or-nothing. Returned ids
// correspond positionally to the input beneficiaries.
func (l *Ledger) BatchCreateSchedules(
	ctx context.Context,
	caller string,
	beneficiaries []string,
	asset string,
	amounts []uint64,
	startTime int64,
	cliffDuration int64,
	totalDuration int64,
	revocable bool,
) ([]string, error) {
	l.Lock()
	defer l.Unlock()
	ids, err := l.batchCreateSchedules(
		ctx,
		caller,
		beneficiaries,
		asset,
		amounts,
		startTime,
		cliffDuration,
		totalDuration,
		revocable,
	)
	l.metrics.observeOp("batch_create", err)
	return ids, err
}

func (l *Ledger) batchCreateSchedules(
	ctx context.Context,
	caller string,
	beneficiaries []string,
	asset string,
	amounts []uint64,
	startTime int64,
	cliffDuration int64,
	totalDuration int64,
	revocable bool,
) ([]string, error) {
	if l.paused {
		return nil, ErrPaused
	}
	if err := l.requireOperator(caller); err != nil {
		return nil, err
	}
	if len(beneficiaries) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}
	if len(beneficiaries) != len(amounts) {
		return nil, fmt.Errorf(
			"%w: %d beneficiaries but %d amounts",
			ErrInvalidInput,
			len(beneficiaries),
			len(amounts),
		)
	}
	now := l.now()
	// Validate every entry before any transfer or write
	var total uint64
	scheds := make([]*Schedule, 0, len(beneficiaries))
	ids := make([]string, 0, len(beneficiaries))
	batchIds := make(map[string]struct{}, len(beneficiaries))
	for i, beneficiary := range beneficiaries {
		params := ScheduleParams{
			Beneficiary:   beneficiary,
			Asset:         asset,
			Amount:        amounts[i],
			StartTime:     startTime,
			CliffDuration: cliffDuration,
			TotalDuration: totalDuration,
			Revocable:     revocable,
		}
		if err := params.validate(now); err != nil {
			return nil, fmt.Errorf("batch entry %d: %w", i, err)
		}
		if amounts[i] > math.MaxUint64-total {
			return nil, fmt.Errorf(
				"%w: batch total overflow at entry %d",
				ErrInvalidInput,
				i,
			)
		}
		total += amounts[i]
		id, err := newScheduleId()
		if err != nil {
			return nil, err
		}
		if _, ok := l.schedules[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrCollision, id)
		}
		// Also guard against a collision within the batch itself
		if _, ok := batchIds[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrCollision, id)
		}
		batchIds[id] = struct{}{}
		ids = append(ids, id)
		scheds = append(scheds, &Schedule{
			Id:            id,
			Beneficiary:   beneficiary,
			Asset:         asset,
			TotalAmount:   amounts[i],
			StartTime:     startTime,
			CliffDuration: cliffDuration,
			TotalDuration: totalDuration,
			Revocable:     revocable,
		})
	}
	locked := l.lockedTotals[asset]
	if total > math.MaxUint64-locked {
		return nil, fmt.Errorf(
			"%w: locked total overflow for asset %s",
			ErrInvalidInput,
			asset,
		)
	}
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		for _, sched := range scheds {
			if err := l.db.SetSchedule(sched.toModel(), txn); err != nil {
				return err
			}
		}
		if err := l.db.SetLockedTotal(asset, locked+total, txn); err != nil {
			return err
		}
		if err := l.db.AppendJournalEntry(
			&database.JournalEntry{
				Op:          "batch_create",
				ScheduleIds: ids,
				Asset:       asset,
				Amount:      total,
				Timestamp:   now,
			},
			txn,
		); err != nil {
			return err
		}
		// One aggregate transfer covers the entire batch
		if err := l.config.Custody.TransferIn(
			ctx,
			asset,
			caller,
			total,
		); err != nil {
			return mapCustodyError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, sched := range scheds {
		l.schedules[sched.Id] = sched
		l.indexAdd(sched.Beneficiary, sched.Id)
		l.publish(
			event.ScheduleCreatedEventType,
			event.ScheduleCreatedEvent{
				ScheduleId:  sched.Id,
				Beneficiary: sched.Beneficiary,
				Asset:       sched.Asset,
				Amount:      sched.TotalAmount,
				StartTime:   sched.StartTime,
				Cliff:       sched.CliffDuration,
				Duration:    sched.TotalDuration,
				Revocable:   sched.Revocable,
			},
		)
	}
	l.setLockedTotal(asset, locked+total)
	l.metrics.schedules.Set(float64(len(l.schedules)))
	l.config.Logger.Info(
		fmt.Sprintf("created %d schedule(s) in batch", len(scheds)),
		"asset", asset,
		"amount", total,
		"component", "ledger",
	)
	return ids, nil
}
