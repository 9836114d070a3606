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

package ledger

import "errors"

// Error kinds returned by ledger operations. Callers match with errors.Is
// to distinguish retryable conditions (ErrPaused, ErrInsufficientFunds)
// from malformed requests.
var (
	// ErrInvalidInput indicates a malformed request such as an empty
	// identity, a zero amount, a zero duration, or a cliff exceeding the
	// total duration
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the referenced schedule id does not exist
	ErrNotFound = errors.New("schedule not found")

	// ErrUnauthorized indicates the caller is not the required principal
	// for the operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState indicates the schedule cannot legally undergo the
	// requested transition, such as revoking a non-revocable or already
	// revoked schedule
	ErrInvalidState = errors.New("invalid schedule state")

	// ErrNothingDue indicates a release request found no releasable amount
	ErrNothingDue = errors.New("nothing due")

	// ErrInsufficientFunds indicates the custody facility could not cover
	// the requested transfer
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPaused indicates the ledger is paused and the operation is one of
	// those blocked while paused
	ErrPaused = errors.New("ledger is paused")

	// ErrCollision indicates a freshly generated schedule id matched an
	// existing one
	ErrCollision = errors.New("schedule id collision")
)
