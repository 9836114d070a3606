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

package event

// ScheduleCreatedEventType is the event type for newly created schedules
const ScheduleCreatedEventType = EventType("schedule.created")

// ScheduleCreatedEvent is emitted once per schedule created, including each
// entry of a batch creation
type ScheduleCreatedEvent struct {
	ScheduleId  string
	Beneficiary string
	Asset       string
	Amount      uint64
	StartTime   int64
	Cliff       int64
	Duration    int64
	Revocable   bool
}

// TokensReleasedEventType is the event type for vested token payouts
const TokensReleasedEventType = EventType("schedule.released")

// TokensReleasedEvent is emitted when a beneficiary claims releasable tokens
type TokensReleasedEvent struct {
	ScheduleId  string
	Beneficiary string
	Asset       string
	Amount      uint64
}

// ScheduleRevokedEventType is the event type for revoked schedules
const ScheduleRevokedEventType = EventType("schedule.revoked")

// ScheduleRevokedEvent is emitted when the operator revokes a revocable
// schedule. VestedPaid went to the beneficiary, Refunded to the operator.
type ScheduleRevokedEvent struct {
	ScheduleId  string
	Beneficiary string
	Asset       string
	VestedPaid  uint64
	Refunded    uint64
}

// BeneficiaryChangedEventType is the event type for beneficiary reassignment
const BeneficiaryChangedEventType = EventType("schedule.beneficiary_changed")

// BeneficiaryChangedEvent is emitted when a schedule's entitlement moves to
// a new beneficiary
type BeneficiaryChangedEvent struct {
	ScheduleId     string
	OldBeneficiary string
	NewBeneficiary string
	Asset          string
}

// EmergencySweptEventType is the event type for emergency sweeps
const EmergencySweptEventType = EventType("ledger.swept")

// EmergencySweptEvent is emitted when the operator sweeps unaccounted value
// out of custody
type EmergencySweptEvent struct {
	Asset    string
	Amount   uint64
	Operator string
}

// PauseChangedEventType is the event type for pause state transitions
const PauseChangedEventType = EventType("ledger.pause_changed")

// PauseChangedEvent is emitted when the ledger is paused or unpaused
type PauseChangedEvent struct {
	Paused bool
}
