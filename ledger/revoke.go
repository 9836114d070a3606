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
	"errors"
	"fmt"

	"github.com/campustudio/blockchain-vesting-app/database"
	"github.com/campustudio/blockchain-vesting-app/event"
)

// Revoke terminates a revocable schedule early. Everything vested up to the
// revocation instant is paid to the beneficiary, the unvested remainder is
// refunded to the operator, and the schedule becomes permanently revoked.
// Revocation stays available while the ledger is paused.
func (l *Ledger) Revoke(
	ctx context.Context,
	caller string,
	scheduleId string,
) error {
	l.Lock()
	defer l.Unlock()
	err := l.revoke(ctx, caller, scheduleId)
	l.metrics.observeOp("revoke", err)
	return err
}

func (l *Ledger) revoke(
	ctx context.Context,
	caller string,
	scheduleId string,
) error {
	if err := l.requireOperator(caller); err != nil {
		return err
	}
	sched, ok := l.schedules[scheduleId]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, scheduleId)
	}
	if sched.Revoked {
		return fmt.Errorf("%w: schedule already revoked", ErrInvalidState)
	}
	if !sched.Revocable {
		return fmt.Errorf("%w: schedule is not revocable", ErrInvalidState)
	}
	now := l.now()
	// Completed schedules have nothing left to take back
	if sched.State(now) == ScheduleCompleted {
		return fmt.Errorf("%w: schedule already completed", ErrInvalidState)
	}
	vestedPaid := ReleasableAmount(sched, now)
	refund := sched.TotalAmount - sched.Released - vestedPaid
	outstanding := vestedPaid + refund
	locked := l.lockedTotals[sched.Asset]
	updated := *sched
	updated.Released += vestedPaid
	updated.Revoked = true
	// The revoked state must be durable before any value leaves custody.
	// If a payout fails after the commit it is owed against an
	// already-revoked schedule; the reverse ordering would roll back the
	// revoked flag after the beneficiary had been paid, letting a later
	// Release pay the vested portion a second time.
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if err := l.db.SetSchedule(updated.toModel(), txn); err != nil {
			return err
		}
		if err := l.db.SetLockedTotal(sched.Asset, locked-outstanding, txn); err != nil {
			return err
		}
		return l.db.AppendJournalEntry(
			&database.JournalEntry{
				Op:          "revoke",
				ScheduleIds: []string{scheduleId},
				Beneficiary: sched.Beneficiary,
				Asset:       sched.Asset,
				Amount:      outstanding,
				Timestamp:   now,
			},
			txn,
		)
	})
	if err != nil {
		return err
	}
	sched.Released = updated.Released
	sched.Revoked = true
	l.setLockedTotal(sched.Asset, locked-outstanding)
	l.publish(
		event.ScheduleRevokedEventType,
		event.ScheduleRevokedEvent{
			ScheduleId:  scheduleId,
			Beneficiary: sched.Beneficiary,
			Asset:       sched.Asset,
			VestedPaid:  vestedPaid,
			Refunded:    refund,
		},
	)
	var payoutErr error
	if vestedPaid > 0 {
		if err := l.config.Custody.TransferOut(
			ctx,
			sched.Asset,
			sched.Beneficiary,
			vestedPaid,
		); err != nil {
			payoutErr = errors.Join(payoutErr, mapCustodyError(err))
		}
	}
	if refund > 0 {
		if err := l.config.Custody.TransferOut(
			ctx,
			sched.Asset,
			l.config.Operator,
			refund,
		); err != nil {
			payoutErr = errors.Join(payoutErr, mapCustodyError(err))
		}
	}
	if payoutErr != nil {
		l.config.Logger.Error(
			"revocation committed but payout failed, settle via custody",
			"schedule_id", scheduleId,
			"beneficiary", sched.Beneficiary,
			"asset", sched.Asset,
			"vested_paid", vestedPaid,
			"refunded", refund,
			"error", payoutErr,
			"component", "ledger",
		)
		return payoutErr
	}
	l.config.Logger.Info(
		"revoked schedule",
		"schedule_id", scheduleId,
		"beneficiary", sched.Beneficiary,
		"asset", sched.Asset,
		"vested_paid", vestedPaid,
		"refunded", refund,
		"component", "ledger",
	)
	return nil
}
