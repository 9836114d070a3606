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

// Schedule is the durable record of a single vesting grant. Records are
// never deleted; revoked and fully-released schedules remain queryable.
type Schedule struct {
	ScheduleID    string `gorm:"primaryKey;size:64"`
	Beneficiary   string `gorm:"index;size:128"`
	Asset         string `gorm:"index;size:128"`
	TotalAmount   types.Uint64
	Released      types.Uint64
	StartTime     int64
	CliffDuration int64
	TotalDuration int64
	Revocable     bool
	Revoked       bool
}

func (Schedule) TableName() string {
	return "schedule"
}
