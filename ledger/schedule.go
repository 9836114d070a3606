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
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/campustudio/blockchain-vesting-app/database/models"
	"github.com/campustudio/blockchain-vesting-app/database/types"
)

// Schedule is a single vesting grant. It is created once, mutated in place
// by release, revocation, and beneficiary reassignment, and never deleted.
type Schedule struct {
	Id            string
	Beneficiary   string
	Asset         string
	TotalAmount   uint64
	Released      uint64
	StartTime     int64
	CliffDuration int64
	TotalDuration int64
	Revocable     bool
	Revoked       bool
}

// ScheduleState describes where a schedule sits in its lifecycle at a given
// instant
type ScheduleState string

const (
	SchedulePending   ScheduleState = "pending"
	ScheduleActive    ScheduleState = "active"
	ScheduleCompleted ScheduleState = "completed"
	ScheduleRevoked   ScheduleState = "revoked"
)

// State returns the schedule's lifecycle state at the given instant.
// Revocation is terminal and takes precedence over the time regimes.
func (s *Schedule) State(now int64) ScheduleState {
	if s.Revoked {
		return ScheduleRevoked
	}
	if now < s.StartTime+s.CliffDuration {
		return SchedulePending
	}
	if now >= s.StartTime+s.TotalDuration {
		return ScheduleCompleted
	}
	return ScheduleActive
}

func (s *Schedule) toModel() *models.Schedule {
	return &models.Schedule{
		ScheduleID:    s.Id,
		Beneficiary:   s.Beneficiary,
		Asset:         s.Asset,
		TotalAmount:   types.Uint64(s.TotalAmount),
		Released:      types.Uint64(s.Released),
		StartTime:     s.StartTime,
		CliffDuration: s.CliffDuration,
		TotalDuration: s.TotalDuration,
		Revocable:     s.Revocable,
		Revoked:       s.Revoked,
	}
}

func scheduleFromModel(m *models.Schedule) *Schedule {
	return &Schedule{
		Id:            m.ScheduleID,
		Beneficiary:   m.Beneficiary,
		Asset:         m.Asset,
		TotalAmount:   uint64(m.TotalAmount),
		Released:      uint64(m.Released),
		StartTime:     m.StartTime,
		CliffDuration: m.CliffDuration,
		TotalDuration: m.TotalDuration,
		Revocable:     m.Revocable,
		Revoked:       m.Revoked,
	}
}

// ScheduleParams carries the caller-supplied fields for creating a schedule
type ScheduleParams struct {
	Beneficiary   string
	Asset         string
	Amount        uint64
	StartTime     int64
	CliffDuration int64
	TotalDuration int64
	Revocable     bool
}

func (p *ScheduleParams) validate(now int64) error {
	if p.Beneficiary == "" {
		return fmt.Errorf("%w: empty beneficiary", ErrInvalidInput)
	}
	if p.Asset == "" {
		return fmt.Errorf("%w: empty asset", ErrInvalidInput)
	}
	if p.Amount == 0 {
		return fmt.Errorf("%w: zero amount", ErrInvalidInput)
	}
	if p.TotalDuration <= 0 {
		return fmt.Errorf("%w: zero duration", ErrInvalidInput)
	}
	if p.CliffDuration < 0 {
		return fmt.Errorf("%w: negative cliff", ErrInvalidInput)
	}
	if p.CliffDuration > p.TotalDuration {
		return fmt.Errorf(
			"%w: cliff %d exceeds duration %d",
			ErrInvalidInput,
			p.CliffDuration,
			p.TotalDuration,
		)
	}
	// Schedules may not be created already partially vested
	if p.StartTime < now {
		return fmt.Errorf(
			"%w: start time %d is in the past",
			ErrInvalidInput,
			p.StartTime,
		)
	}
	return nil
}

// newScheduleId generates a random 128-bit hex identifier. Declared as a
// var so tests can substitute a deterministic generator.
var newScheduleId = func() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate schedule id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
