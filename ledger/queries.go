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
	"fmt"
	"slices"

	"github.com/campustudio/blockchain-vesting-app/database"
)

// VestingInfo is a schedule together with its time-dependent computed
// fields, so callers get everything in a single round trip
type VestingInfo struct {
	Schedule   Schedule
	Vested     uint64
	Releasable uint64
	State      ScheduleState
	AsOf       int64
}

// GetSchedule returns a copy of the schedule record
func (l *Ledger) GetSchedule(scheduleId string) (*Schedule, error) {
	l.RLock()
	defer l.RUnlock()
	sched, ok := l.schedules[scheduleId]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, scheduleId)
	}
	ret := *sched
	return &ret, nil
}

// GetVestingInfo returns the schedule plus its vested and releasable
// amounts and lifecycle state at the current instant
func (l *Ledger) GetVestingInfo(scheduleId string) (*VestingInfo, error) {
	l.RLock()
	defer l.RUnlock()
	sched, ok := l.schedules[scheduleId]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, scheduleId)
	}
	now := l.now()
	return &VestingInfo{
		Schedule:   *sched,
		Vested:     VestedAmount(sched, now),
		Releasable: ReleasableAmount(sched, now),
		State:      sched.State(now),
		AsOf:       now,
	}, nil
}

// ListSchedules returns the ids of all schedules assigned to a beneficiary,
// sorted for stable output. An unknown beneficiary yields an empty list.
func (l *Ledger) ListSchedules(beneficiary string) []string {
	l.RLock()
	defer l.RUnlock()
	ids := make([]string, 0, len(l.byBeneficiary[beneficiary]))
	for id := range l.byBeneficiary[beneficiary] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// LockedTotal returns the tracked locked total for an asset
func (l *Ledger) LockedTotal(asset string) uint64 {
	l.RLock()
	defer l.RUnlock()
	return l.lockedTotals[asset]
}

// JournalEntries returns the durable audit records for an asset in
// sequence order
func (l *Ledger) JournalEntries(asset string) ([]database.JournalEntry, error) {
	return l.db.GetJournalEntries(asset)
}
