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
	"encoding/json"
	"fmt"

	"github.com/campustudio/blockchain-vesting-app/database/types"
)

// JournalEntry is a durable audit record for a successful mutating ledger
// operation. Entries are stored in the blob store under asset-prefixed keys
// so downstream consumers can filter by asset without scanning the full
// journal.
type JournalEntry struct {
	Seq         uint64   `json:"seq"`
	Op          string   `json:"op"`
	ScheduleIds []string `json:"scheduleIds,omitempty"`
	Beneficiary string   `json:"beneficiary,omitempty"`
	Asset       string   `json:"asset"`
	Amount      uint64   `json:"amount"`
	Timestamp   int64    `json:"timestamp"`
}

func journalKey(asset string, seq uint64) []byte {
	// Zero-padded sequence keeps lexicographic and numeric order aligned
	return fmt.Appendf(nil, "journal/%s/%020d", asset, seq)
}

func journalAssetPrefix(asset string) []byte {
	return fmt.Appendf(nil, "journal/%s/", asset)
}

// AppendJournalEntry assigns the next sequence number to the entry and
// writes it within the given transaction. The sequence counter lives in the
// metadata store so it commits atomically with the caller's state changes.
func (d *Database) AppendJournalEntry(
	entry *JournalEntry,
	txn *Txn,
) error {
	if txn == nil || txn.Blob() == nil || txn.Metadata() == nil {
		return types.ErrNoStoreAvailable
	}
	seq, err := d.metadata.GetJournalSeq(txn.Metadata())
	if err != nil {
		return fmt.Errorf("failed to get journal sequence: %w", err)
	}
	entry.Seq = seq
	val, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode journal entry: %w", err)
	}
	if err := d.blob.Set(txn.Blob(), journalKey(entry.Asset, seq), val); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}
	if err := d.metadata.SetJournalSeq(seq+1, txn.Metadata()); err != nil {
		return fmt.Errorf("failed to advance journal sequence: %w", err)
	}
	return nil
}

// GetJournalEntries returns all journal entries for an asset in sequence
// order
func (d *Database) GetJournalEntries(
	asset string,
) ([]JournalEntry, error) {
	txn := d.Transaction(false)
	defer txn.Release()

	prefix := journalAssetPrefix(asset)
	iter := d.blob.NewIterator(txn.Blob(), types.BlobIteratorOptions{
		Prefix: prefix,
	})
	defer iter.Close()

	var ret []JournalEntry
	for iter.Rewind(); iter.ValidForPrefix(prefix); iter.Next() {
		val, err := iter.Item().ValueCopy(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read journal entry: %w", err)
		}
		var entry JournalEntry
		if err := json.Unmarshal(val, &entry); err != nil {
			return nil, fmt.Errorf("failed to decode journal entry: %w", err)
		}
		ret = append(ret, entry)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}
