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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFacilityTransfers(t *testing.T) {
	ctx := context.Background()
	facility := NewMemoryFacility()
	facility.Fund("tokenA", "alice", 1000)
	// Transfer in moves value from the holder into custody
	require.NoError(t, facility.TransferIn(ctx, "tokenA", "alice", 600))
	balance, err := facility.BalanceOf(ctx, "tokenA")
	require.NoError(t, err)
	assert.Equal(t, uint64(600), balance)
	assert.Equal(t, uint64(400), facility.HolderBalance("tokenA", "alice"))
	// Transfer out pays a holder from custody
	require.NoError(t, facility.TransferOut(ctx, "tokenA", "bob", 250))
	balance, err = facility.BalanceOf(ctx, "tokenA")
	require.NoError(t, err)
	assert.Equal(t, uint64(350), balance)
	assert.Equal(t, uint64(250), facility.HolderBalance("tokenA", "bob"))
}

func TestMemoryFacilityInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	facility := NewMemoryFacility()
	facility.Fund("tokenA", "alice", 100)
	err := facility.TransferIn(ctx, "tokenA", "alice", 101)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	// Nothing moved
	assert.Equal(t, uint64(100), facility.HolderBalance("tokenA", "alice"))
	err = facility.TransferOut(ctx, "tokenA", "bob", 1)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	// Assets are tracked independently
	err = facility.TransferIn(ctx, "tokenB", "alice", 1)
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestMemoryFacilityDeposit(t *testing.T) {
	ctx := context.Background()
	facility := NewMemoryFacility()
	// Deposit simulates value arriving in custody without a transfer-in
	facility.Deposit("tokenA", 500)
	balance, err := facility.BalanceOf(ctx, "tokenA")
	require.NoError(t, err)
	assert.Equal(t, uint64(500), balance)
}
