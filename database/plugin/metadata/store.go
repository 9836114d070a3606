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

package metadata

import (
	"fmt"
	"log/slog"

	"github.com/campustudio/blockchain-vesting-app/database/models"
	"github.com/campustudio/blockchain-vesting-app/database/plugin/metadata/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, *gorm.DB) error
	Transaction() *gorm.DB

	// Schedules
	GetSchedule(
		string, // scheduleId
		*gorm.DB,
	) (*models.Schedule, error)
	GetSchedules(*gorm.DB) ([]models.Schedule, error)
	GetSchedulesByBeneficiary(
		string, // beneficiary
		*gorm.DB,
	) ([]models.Schedule, error)
	SetSchedule(*models.Schedule, *gorm.DB) error

	// Locked totals
	GetLockedTotal(
		string, // asset
		*gorm.DB,
	) (uint64, error)
	GetLockedTotals(*gorm.DB) ([]models.LockedTotal, error)
	SetLockedTotal(
		string, // asset
		uint64, // amount
		*gorm.DB,
	) error

	// Journal sequence
	GetJournalSeq(*gorm.DB) (uint64, error)
	SetJournalSeq(uint64, *gorm.DB) error
}

// New creates a metadata store instance for the named plugin
func New(
	pluginName, dataDir string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	switch pluginName {
	case "", "sqlite":
		return sqlite.New(dataDir, logger, promRegistry)
	default:
		return nil, fmt.Errorf("unknown metadata plugin: %s", pluginName)
	}
}
