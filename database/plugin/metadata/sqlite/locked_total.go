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
	"github.com/campustudio/blockchain-vesting-app/database/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetLockedTotal gets the locked total for an asset. Assets with no record
// have a locked total of zero.
func (d *MetadataStoreSqlite) GetLockedTotal(
	asset string,
	txn *gorm.DB,
) (uint64, error) {
	ret := &models.LockedTotal{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("asset = ?", asset).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, result.Error
	}
	return uint64(ret.Amount), nil
}

// GetLockedTotals returns all per-asset locked totals
func (d *MetadataStoreSqlite) GetLockedTotals(
	txn *gorm.DB,
) ([]models.LockedTotal, error) {
	var ret []models.LockedTotal
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Order("asset").Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// SetLockedTotal saves the locked total for an asset
func (d *MetadataStoreSqlite) SetLockedTotal(
	asset string,
	amount uint64,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	tmpLockedTotal := models.LockedTotal{
		Asset:  asset,
		Amount: types.Uint64(amount),
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(&tmpLockedTotal)
	if result.Error != nil {
		return fmt.Errorf("failed to save locked total: %w", result.Error)
	}
	return nil
}

// GetJournalSeq returns the next journal sequence number
func (d *MetadataStoreSqlite) GetJournalSeq(
	txn *gorm.DB,
) (uint64, error) {
	ret := &models.JournalState{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, result.Error
	}
	return ret.NextSeq, nil
}

// SetJournalSeq saves the next journal sequence number
func (d *MetadataStoreSqlite) SetJournalSeq(
	seq uint64,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	tmpState := models.JournalState{
		ID:      1,
		NextSeq: seq,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"next_seq"}),
	}).Create(&tmpState)
	if result.Error != nil {
		return fmt.Errorf("failed to save journal state: %w", result.Error)
	}
	return nil
}
