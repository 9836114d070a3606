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

package sqlite

import (
	"errors"
	"fmt"

	"github.com/campustudio/blockchain-vesting-app/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetSchedule gets a schedule by id. Returns nil without error when no
// matching record exists.
func (d *MetadataStoreSqlite) GetSchedule(
	scheduleId string,
	txn *gorm.DB,
) (*models.Schedule, error) {
	ret := &models.Schedule{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("schedule_id = ?", scheduleId).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetSchedules returns all schedule records. Used to rebuild the in-memory
// state mirror at startup.
func (d *MetadataStoreSqlite) GetSchedules(
	txn *gorm.DB,
) ([]models.Schedule, error) {
	var ret []models.Schedule
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Order("schedule_id").Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// GetSchedulesByBeneficiary returns all schedules assigned to a beneficiary
func (d *MetadataStoreSqlite) GetSchedulesByBeneficiary(
	beneficiary string,
	txn *gorm.DB,
) ([]models.Schedule, error) {
	var ret []models.Schedule
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("beneficiary = ?", beneficiary).
		Order("schedule_id").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// SetSchedule saves a schedule, overwriting mutable fields on conflict
func (d *MetadataStoreSqlite) SetSchedule(
	schedule *models.Schedule,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "schedule_id"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"beneficiary", "released", "revoked"},
		),
	}).Create(schedule)
	if result.Error != nil {
		return fmt.Errorf("failed to save schedule: %w", result.Error)
	}
	return nil
}
