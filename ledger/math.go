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

import "math/big"

// VestedAmount returns the cumulative quantity unlocked by elapsed time for
// the given schedule, irrespective of how much has been paid out. Before the
// cliff it is zero, after the total duration it is the full total amount,
// and in between it accrues linearly with floor division.
func VestedAmount(s *Schedule, now int64) uint64 {
	if s == nil {
		return 0
	}
	if now < s.StartTime+s.CliffDuration {
		return 0
	}
	if now >= s.StartTime+s.TotalDuration {
		return s.TotalAmount
	}
	// The product of the total amount and the elapsed seconds can exceed
	// 64 bits, so the intermediate is computed with arbitrary precision
	vested := new(big.Int).SetUint64(s.TotalAmount)
	vested.Mul(vested, big.NewInt(now-s.StartTime))
	vested.Quo(vested, big.NewInt(s.TotalDuration))
	return vested.Uint64()
}

// ReleasableAmount returns the quantity available to claim now, which is the
// vested amount minus what has already been released. A revoked schedule is
// never releasable. The subtraction floors at zero rather than wrapping.
func ReleasableAmount(s *Schedule, now int64) uint64 {
	if s == nil || s.Revoked {
		return 0
	}
	vested := VestedAmount(s, now)
	if vested <= s.Released {
		return 0
	}
	return vested - s.Released
}
