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

package models

import (
	"github.com/campustudio/blockchain-vesting-app/database/types"
)

// LockedTotal is the per-asset running sum of custodied value still
// committed to non-revoked schedules. It is maintained incrementally by
// ledger operations, never recomputed by summation.
type LockedTotal struct {
	Asset  string `gorm:"primaryKey;size:128"`
	Amount types.Uint64
}

func (LockedTotal) TableName() string {
	return "locked_total"
}

// JournalState tracks the next sequence number for the audit journal so
// that journal keys stay monotonic across restarts.
type JournalState struct {
	ID      uint `gorm:"primaryKey"`
	NextSeq uint64
}

func (JournalState) TableName() string {
	return "journal_state"
}
