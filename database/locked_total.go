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

// GetLockedTotal returns the locked total for an asset (zero if untracked)
func (d *Database) GetLockedTotal(
	asset string,
	txn *Txn,
) (uint64, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetLockedTotal(asset, txn.Metadata())
}

// GetLockedTotals returns all per-asset locked totals
func (d *Database) GetLockedTotals(
	txn *Txn,
) ([]models.LockedTotal, error) {
	if txn == nil {
		txn = d.Transaction(false)
		defer txn.Release()
	}
	return d.metadata.GetLockedTotals(txn.Metadata())
}

// SetLockedTotal saves the locked total for an asset
func (d *Database) SetLockedTotal(
	asset string,
	amount uint64,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		if err := d.metadata.SetLockedTotal(asset, amount, txn.Metadata()); err != nil {
			txn.Release()
			return err
		}
		return txn.Commit()
	}
	return d.metadata.SetLockedTotal(asset, amount, txn.Metadata())
}
