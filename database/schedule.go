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

package database

import (
	"github.com/campustudio/blockchain-vesting-app/database/models"
)

// GetSchedule looks up a schedule by id. Returns nil without error when no
// matching record exists.
func (d *Database) GetSchedule(
	scheduleId string,
	txn *Txn,
) (*models.Schedule, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetSchedule(scheduleId, txn.Metadata())
}

// GetSchedules returns all schedule records
func (d *Database) GetSchedules(txn *Txn) ([]models.Schedule, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetSchedules(txn.Metadata())
}

// GetSchedulesByBeneficiary returns all schedules assigned to a beneficiary
func (d *Database) GetSchedulesByBeneficiary(
	beneficiary string,
	txn *Txn,
) ([]models.Schedule, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetSchedulesByBeneficiary(beneficiary, txn.Metadata())
}

// SetSchedule saves a schedule
func (d *Database) SetSchedule(
	schedule *models.Schedule,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		if err := d.metadata.SetSchedule(schedule, txn.Metadata()); err != nil {
			txn.Release()
			return err
		}
		return txn.Commit()
	}
	return d.metadata.SetSchedule(schedule, txn.Metadata())
}
