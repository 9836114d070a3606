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

	"github.com/campustudio/blockchain-vesting-app/database"
	"github.com/campustudio/blockchain-vesting-app/event"
)

// Release pays the caller everything currently releasable on the schedule.
// Only the schedule's beneficiary may release. Returns the amount paid.
func (l *Ledger) Release(
	ctx context.Context,
	caller string,
	scheduleId string,
) (uint64, error) {
	l.Lock()
	defer l.Unlock()
	amount, err := l.release(ctx, caller, scheduleId)
	l.metrics.observeOp("release", err)
	return amount, err
}

func (l *Ledger) release(
	ctx context.Context,
	caller string,
	scheduleId string,
) (uint64, error) {
	if l.paused {
		return 0, ErrPaused
	}
	sched, ok := l.schedules[scheduleId]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, scheduleId)
	}
	if caller != sched.Beneficiary {
		return 0, fmt.Errorf(
			"%w: only the beneficiary may release",
			ErrUnauthorized,
		)
	}
	if sched.Revoked {
		return 0, fmt.Errorf("%w: schedule is revoked", ErrInvalidState)
	}
	now := l.now()
	releasable := ReleasableAmount(sched, now)
	if releasable == 0 {
		return 0, ErrNothingDue
	}
	locked := l.lockedTotals[sched.Asset]
	updated := *sched
	updated.Released += releasable
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if err := l.db.SetSchedule(updated.toModel(), txn); err != nil {
			return err
		}
		if err := l.db.SetLockedTotal(sched.Asset, locked-releasable, txn); err != nil {
			return err
		}
		if err := l.db.AppendJournalEntry(
			&database.JournalEntry{
				Op:          "release",
				ScheduleIds: []string{scheduleId},
				Beneficiary: sched.Beneficiary,
				Asset:       sched.Asset,
				Amount:      releasable,
				Timestamp:   now,
			},
			txn,
		); err != nil {
			return err
		}
		if err := l.config.Custody.TransferOut(
			ctx,
			sched.Asset,
			sched.Beneficiary,
			releasable,
		); err != nil {
			return mapCustodyError(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	sched.Released = updated.Released
	l.setLockedTotal(sched.Asset, locked-releasable)
	l.publish(
		event.TokensReleasedEventType,
		event.TokensReleasedEvent{
			ScheduleId:  scheduleId,
			Beneficiary: sched.Beneficiary,
			Asset:       sched.Asset,
			Amount:      releasable,
		},
	)
	l.config.Logger.Info(
		"released vested tokens",
		"schedule_id", scheduleId,
		"beneficiary", sched.Beneficiary,
		"asset", sched.Asset,
		"amount", releasable,
		"component", "ledger",
	)
	return releasable, nil
}
