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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVestedAmount(t *testing.T) {
	const start = int64(1_700_000_000)
	testDefs := []struct {
		name     string
		schedule Schedule
		now      int64
		expected uint64
	}{
		{
			name: "before start",
			schedule: Schedule{
				TotalAmount:   1000,
				StartTime:     start,
				TotalDuration: 1000,
			},
			now:      start - 1,
			expected: 0,
		},
		{
			name: "before cliff",
			schedule: Schedule{
				TotalAmount:   100,
				StartTime:     start,
				CliffDuration: 2_592_000,
				TotalDuration: 31_536_000,
			},
			now:      start + 2_591_999,
			expected: 0,
		},
		{
			name: "at cliff",
			schedule: Schedule{
				TotalAmount:   100,
				StartTime:     start,
				CliffDuration: 2_592_000,
				TotalDuration: 31_536_000,
			},
			now:      start + 2_592_000,
			expected: 8,
		},
		{
			name: "linear midpoint",
			schedule: Schedule{
				TotalAmount:   1_000_000,
				StartTime:     start,
				TotalDuration: 31_536_000,
			},
			now:      start + 15_768_000,
			expected: 500_000,
		},
		{
			name: "exact completion",
			schedule: Schedule{
				TotalAmount:   1_000_000,
				StartTime:     start,
				TotalDuration: 31_536_000,
			},
			now:      start + 31_536_000,
			expected: 1_000_000,
		},
		{
			name: "past completion",
			schedule: Schedule{
				TotalAmount:   1000,
				StartTime:     start,
				TotalDuration: 1000,
			},
			now:      start + 99_999,
			expected: 1000,
		},
		{
			name: "floor division truncates",
			schedule: Schedule{
				TotalAmount:   10,
				StartTime:     start,
				TotalDuration: 3,
			},
			now:      start + 1,
			expected: 3,
		},
		{
			name: "large amount does not overflow",
			schedule: Schedule{
				TotalAmount:   math.MaxUint64,
				StartTime:     start,
				TotalDuration: 31_536_000,
			},
			now:      start + 15_768_000,
			expected: math.MaxUint64 / 2,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			assert.Equal(
				t,
				testDef.expected,
				VestedAmount(&testDef.schedule, testDef.now),
			)
		})
	}
}

func TestVestedAmountMonotonic(t *testing.T) {
	const start = int64(1_700_000_000)
	sched := &Schedule{
		TotalAmount:   123_456_789,
		StartTime:     start,
		CliffDuration: 3600,
		TotalDuration: 86_400,
	}
	var prev uint64
	for now := start - 100; now <= start+sched.TotalDuration+100; now += 7 {
		vested := VestedAmount(sched, now)
		if vested < prev {
			t.Fatalf(
				"vested amount decreased from %d to %d at %d",
				prev,
				vested,
				now,
			)
		}
		prev = vested
	}
	assert.Equal(t, sched.TotalAmount, prev)
}

func TestReleasableAmount(t *testing.T) {
	const start = int64(1_700_000_000)
	sched := &Schedule{
		TotalAmount:   1000,
		Released:      300,
		StartTime:     start,
		TotalDuration: 1000,
	}
	assert.Equal(t, uint64(100), ReleasableAmount(sched, start+400))
	// Floors at zero when released is ahead of vesting
	assert.Equal(t, uint64(0), ReleasableAmount(sched, start+200))
	// Revoked schedules are never releasable
	revoked := *sched
	revoked.Revoked = true
	assert.Equal(t, uint64(0), ReleasableAmount(&revoked, start+999_999))
}
