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

package custody

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// custodyHolder is the reserved holder name for the ledger's own custody
// account
const custodyHolder = "__custody__"

// MemoryFacility is an in-memory custody facility used by tests and dev
// mode. Balances are tracked per (asset, holder) pair.
type MemoryFacility struct {
	balances map[string]map[string]uint64
	mu       sync.Mutex
}

func NewMemoryFacility() *MemoryFacility {
	return &MemoryFacility{
		balances: make(map[string]map[string]uint64),
	}
}

// Fund credits a holder with amount of asset. This is the faucet used to
// seed balances in tests and dev mode.
func (m *MemoryFacility) Fund(asset, holder string, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credit(asset, holder, amount)
}

// Deposit credits the custody account directly, bypassing any schedule
// accounting. Used to simulate accidental transfers-in.
func (m *MemoryFacility) Deposit(asset string, amount uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credit(asset, custodyHolder, amount)
}

// HolderBalance returns a holder's balance of asset
func (m *MemoryFacility) HolderBalance(asset, holder string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[asset][holder]
}

func (m *MemoryFacility) credit(asset, holder string, amount uint64) {
	if _, ok := m.balances[asset]; !ok {
		m.balances[asset] = make(map[string]uint64)
	}
	if m.balances[asset][holder] > math.MaxUint64-amount {
		// Saturate rather than wrap. Test balances never get near this.
		m.balances[asset][holder] = math.MaxUint64
		return
	}
	m.balances[asset][holder] += amount
}

func (m *MemoryFacility) transfer(
	asset, from, to string,
	amount uint64,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balances[asset][from] < amount {
		return fmt.Errorf(
			"%w: %s holds %d of %s, need %d",
			ErrInsufficientBalance,
			from,
			m.balances[asset][from],
			asset,
			amount,
		)
	}
	m.balances[asset][from] -= amount
	m.credit(asset, to, amount)
	return nil
}

func (m *MemoryFacility) TransferIn(
	_ context.Context,
	asset, from string,
	amount uint64,
) error {
	return m.transfer(asset, from, custodyHolder, amount)
}

func (m *MemoryFacility) TransferOut(
	_ context.Context,
	asset, to string,
	amount uint64,
) error {
	return m.transfer(asset, custodyHolder, to, amount)
}

func (m *MemoryFacility) BalanceOf(
	_ context.Context,
	asset string,
) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[asset][custodyHolder], nil
}
