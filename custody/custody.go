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

// Package custody defines the external value-transfer collaborator consumed
// by the vesting ledger. The ledger decides amounts; a Facility executes the
// transfers and can fail independently. Every call site must check the
// result and abort the enclosing operation on failure.
package custody

import (
	"context"
	"errors"
)

// ErrInsufficientBalance is returned when the source of a transfer does not
// hold enough of the asset
var ErrInsufficientBalance = errors.New("insufficient balance")

// Facility moves fungible value in and out of the ledger's custody account
type Facility interface {
	// TransferIn moves amount of asset from the named holder into custody
	TransferIn(ctx context.Context, asset, from string, amount uint64) error
	// TransferOut moves amount of asset from custody to the named holder
	TransferOut(ctx context.Context, asset, to string, amount uint64) error
	// BalanceOf returns the amount of asset currently held in custody
	BalanceOf(ctx context.Context, asset string) (uint64, error)
}
