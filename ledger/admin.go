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

// ChangeBeneficiary reassigns a schedule's entitlement to a new beneficiary.
// Amounts are unaffected. Available while the ledger is paused.
func (l *Ledger) ChangeBeneficiary(
	ctx context.Context,
	caller string,
	scheduleId string,
	newBeneficiary string,
) error {
	l.Lock()
	defer l.Unlock()
	err := l.changeBeneficiary(ctx, caller, scheduleId, newBeneficiary)
	l.metrics.observeOp("change_beneficiary", err)
	return err
}

func (l *Ledger) changeBeneficiary(
	_ context.Context,
	caller string,
	scheduleId string,
	newBeneficiary string,
) error {
	if err := l.requireOperator(caller); err != nil {
		return err
	}
	sched, ok := l.schedules[scheduleId]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, scheduleId)
	}
	if sched.Revoked {
		return fmt.Errorf("%w: schedule is revoked", ErrInvalidState)
	}
	if newBeneficiary == "" {
		return fmt.Errorf("%w: empty beneficiary", ErrInvalidInput)
	}
	if newBeneficiary == sched.Beneficiary {
		return fmt.Errorf(
			"%w: %s is already the beneficiary",
			ErrInvalidInput,
			newBeneficiary,
		)
	}
	now := l.now()
	oldBeneficiary := sched.Beneficiary
	updated := *sched
	updated.Beneficiary = newBeneficiary
	txn := l.db.Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if err := l.db.SetSchedule(updated.toModel(), txn); err != nil {
			return err
		}
		return l.db.AppendJournalEntry(
			&database.JournalEntry{
				Op:          "change_beneficiary",
				ScheduleIds: []string{scheduleId},
				Beneficiary: newBeneficiary,
				Asset:       sched.Asset,
				Timestamp:   now,
			},
			txn,
		)
	})
	if err != nil {
		return err
	}
	sched.Beneficiary = newBeneficiary
	l.indexRemove(oldBeneficiary, scheduleId)
	l.indexAdd(newBeneficiary, scheduleId)
	l.publish(
		event.BeneficiaryChangedEventType,
		event.BeneficiaryChangedEvent{
			ScheduleId:     scheduleId,
			OldBeneficiary: oldBeneficiary,
			NewBeneficiary: newBeneficiary,
			Asset:          sched.Asset,
		},
	)
	l.config.Logger.Info(
		"changed schedule beneficiary",
		"schedule_id", scheduleId,
		"old_beneficiary", oldBeneficiary,
		"new_beneficiary", newBeneficiary,
		"component", "ledger",
	)
	return nil
}

// EmergencySweep transfers value held in custody but not accounted for by
// any schedule to the operator, such as accidental transfers-in. The custody
// balance is read live so the sweep can never dip into the locked total.
func (l *Ledger) EmergencySweep(
	ctx context.Context,
	caller string,
	asset string,
	amount uint64,
) error {
	l.Lock()
	defer l.Unlock()
	err := l.emergencySweep(ctx, caller, asset, amount)
	l.metrics.observeOp("sweep", err)
	return err
}

func (l *Ledger) emergencySweep(
	ctx context.Context,
	caller string,
	asset string,
	amount uint64,
) error {
	if err := l.requireOperator(caller); err != nil {
		return err
	}
	if asset == "" {
		return fmt.Errorf("%w: empty asset", ErrInvalidInput)
	}
	if amount == 0 {
		return fmt.Errorf("%w: zero amount", ErrInvalidInput)
	}
	balance, err := l.config.Custody.BalanceOf(ctx, asset)
	if err != nil {
		return mapCustodyError(err)
	}
	locked := l.lockedTotals[asset]
	if balance < locked || amount > balance-locked {
		return fmt.Errorf(
			"%w: sweep of %d would dip into locked total %d (balance %d)",
			ErrInsufficientFunds,
			amount,
			locked,
			balance,
		)
	}
	now := l.now()
	txn := l.db.Transaction(true)
	err = txn.Do(func(txn *database.Txn) error {
		if err := l.db.AppendJournalEntry(
			&database.JournalEntry{
				Op:        "sweep",
				Asset:     asset,
				Amount:    amount,
				Timestamp: now,
			},
			txn,
		); err != nil {
			return err
		}
		if err := l.config.Custody.TransferOut(
			ctx,
			asset,
			l.config.Operator,
			amount,
		); err != nil {
			return mapCustodyError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	l.publish(
		event.EmergencySweptEventType,
		event.EmergencySweptEvent{
			Asset:    asset,
			Amount:   amount,
			Operator: l.config.Operator,
		},
	)
	l.config.Logger.Warn(
		"swept unaccounted funds",
		"asset", asset,
		"amount", amount,
		"component", "ledger",
	)
	return nil
}

// Pause blocks schedule creation and release until Unpause. Revocation,
// beneficiary changes, sweeps, and queries stay available so an incident
// can be contained without freezing remediation.
func (l *Ledger) Pause(caller string) error {
	l.Lock()
	defer l.Unlock()
	err := l.setPaused(caller, true)
	l.metrics.observeOp("pause", err)
	return err
}

// Unpause lifts a pause
func (l *Ledger) Unpause(caller string) error {
	l.Lock()
	defer l.Unlock()
	err := l.setPaused(caller, false)
	l.metrics.observeOp("unpause", err)
	return err
}

func (l *Ledger) setPaused(caller string, paused bool) error {
	if err := l.requireOperator(caller); err != nil {
		return err
	}
	if l.paused == paused {
		return fmt.Errorf(
			"%w: ledger pause state is already %t",
			ErrInvalidState,
			paused,
		)
	}
	l.paused = paused
	if paused {
		l.metrics.paused.Set(1)
	} else {
		l.metrics.paused.Set(0)
	}
	l.publish(
		event.PauseChangedEventType,
		event.PauseChangedEvent{Paused: paused},
	)
	l.config.Logger.Warn(
		"ledger pause state changed",
		"paused", paused,
		"component", "ledger",
	)
	return nil
}

// Paused reports whether the ledger is currently paused
func (l *Ledger) Paused() bool {
	l.RLock()
	defer l.RUnlock()
	return l.paused
}
