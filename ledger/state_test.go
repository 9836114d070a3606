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
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/campustudio/blockchain-vesting-app/custody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOperator = "operator"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLedger(t *testing.T) (*Ledger, *custody.MemoryFacility, *testClock) {
	t.Helper()
	clock := newTestClock()
	facility := custody.NewMemoryFacility()
	l, err := NewLedger(LedgerConfig{
		DataDir:    t.TempDir(),
		Custody:    facility,
		Authorizer: NewStaticAuthorizer(testOperator),
		Operator:   testOperator,
		Now:        clock.Now,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		l.Close()
	})
	return l, facility, clock
}

// createTestSchedule funds the operator and creates a schedule starting now
func createTestSchedule(
	t *testing.T,
	l *Ledger,
	facility *custody.MemoryFacility,
	beneficiary string,
	asset string,
	amount uint64,
	cliff int64,
	duration int64,
	revocable bool,
) string {
	t.Helper()
	facility.Fund(asset, testOperator, amount)
	id, err := l.CreateSchedule(
		context.Background(),
		testOperator,
		ScheduleParams{
			Beneficiary:   beneficiary,
			Asset:         asset,
			Amount:        amount,
			StartTime:     l.now(),
			CliffDuration: cliff,
			TotalDuration: duration,
			Revocable:     revocable,
		},
	)
	require.NoError(t, err)
	return id
}

func TestNewLedgerPluginSelection(t *testing.T) {
	cfg := LedgerConfig{
		DataDir:        t.TempDir(),
		Custody:        custody.NewMemoryFacility(),
		Authorizer:     NewStaticAuthorizer(testOperator),
		Operator:       testOperator,
		BlobPlugin:     "badger",
		MetadataPlugin: "sqlite",
	}
	l, err := NewLedger(cfg)
	require.NoError(t, err)
	require.NoError(t, l.Close())
	// Unknown plugin names fail instead of silently using the defaults
	cfg.DataDir = t.TempDir()
	cfg.MetadataPlugin = "bogus"
	_, err = NewLedger(cfg)
	require.ErrorContains(t, err, "unknown metadata plugin")
	cfg.DataDir = t.TempDir()
	cfg.MetadataPlugin = "sqlite"
	cfg.BlobPlugin = "bogus"
	_, err = NewLedger(cfg)
	require.ErrorContains(t, err, "unknown blob plugin")
}

func TestCreateSchedule(t *testing.T) {
	l, facility, _ := newTestLedger(t)
	id := createTestSchedule(
		t, l, facility, "alice", "tokenA", 1000, 100, 1000, true,
	)
	require.NotEmpty(t, id)
	sched, err := l.GetSchedule(id)
	require.NoError(t, err)
	assert.Equal(t, "alice", sched.Beneficiary)
	assert.Equal(t, "tokenA", sched.Asset)
	assert.Equal(t, uint64(1000), sched.TotalAmount)
	assert.Equal(t, uint64(0), sched.Released)
	assert.False(t, sched.Revoked)
	assert.Equal(t, []string{id}, l.ListSchedules("alice"))
	assert.Equal(t, uint64(1000), l.LockedTotal("tokenA"))
	// The full amount moved from the operator into custody
	balance, err := facility.BalanceOf(context.Background(), "tokenA")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), balance)
	assert.Equal(t, uint64(0), facility.HolderBalance("tokenA", testOperator))
}

func TestCreateScheduleValidation(t *testing.T) {
	l, facility, _ := newTestLedger(t)
	facility.Fund("tokenA", testOperator, 10_000)
	now := l.now()
	valid := ScheduleParams{
		Beneficiary:   "alice",
		Asset:         "tokenA",
		Amount:        100,
		StartTime:     now,
		CliffDuration: 10,
		TotalDuration: 100,
	}
	testDefs := []struct {
		name     string
		caller   string
		mutate   func(*ScheduleParams)
		expected error
	}{
		{
			name:     "not an operator",
			caller:   "mallory",
			mutate:   func(p *ScheduleParams) {},
			expected: ErrUnauthorized,
		},
		{
			name:   "empty beneficiary",
			caller: testOperator,
			mutate: func(p *ScheduleParams) {
				p.Beneficiary = ""
			},
			expected: ErrInvalidInput,
		},
		{
			name:   "empty asset",
			caller: testOperator,
			mutate: func(p *ScheduleParams) {
				p.Asset = ""
			},
			expected: ErrInvalidInput,
		},
		{
			name:   "zero amount",
			caller: testOperator,
			mutate: func(p *ScheduleParams) {
				p.Amount = 0
			},
			expected: ErrInvalidInput,
		},
		{
			name:   "zero duration",
			caller: testOperator,
			mutate: func(p *ScheduleParams) {
				p.TotalDuration = 0
			},
			expected: ErrInvalidInput,
		},
		{
			name:   "cliff exceeds duration",
			caller: testOperator,
			mutate: func(p *ScheduleParams) {
				p.CliffDuration = 101
			},
			expected: ErrInvalidInput,
		},
		{
			name:   "start time in the past",
			caller: testOperator,
			mutate: func(p *ScheduleParams) {
				p.StartTime = now - 1
			},
			expected: ErrInvalidInput,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			params := valid
			testDef.mutate(&params)
			_, err := l.CreateSchedule(
				context.Background(),
				testDef.caller,
				params,
			)
			require.ErrorIs(t, err, testDef.expected)
		})
	}
	// Nothing was created or transferred
	assert.Empty(t, l.ListSchedules("alice"))
	assert.Equal(t, uint64(0), l.LockedTotal("tokenA"))
	assert.Equal(
		t,
		uint64(10_000),
		facility.HolderBalance("tokenA", testOperator),
	)
}

func TestCreateScheduleInsufficientFunds(t *testing.T) {
	l, facility, _ := newTestLedger(t)
	_, err := l.CreateSchedule(
		context.Background(),
		testOperator,
		ScheduleParams{
			Beneficiary:   "alice",
			Asset:         "tokenA",
			Amount:        1000,
			StartTime:     l.now(),
			TotalDuration: 1000,
		},
	)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	// The failed create left no trace
	assert.Empty(t, l.ListSchedules("alice"))
	assert.Equal(t, uint64(0), l.LockedTotal("tokenA"))
	balance, err := facility.BalanceOf(context.Background(), "tokenA")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)
}

func TestBatchCreateSchedules(t *testing.T) {
	l, facility, _ := newTestLedger(t)
	facility.Fund("tokenA", testOperator, 600)
	ids, err := l.BatchCreateSchedules(
		context.Background(),
		testOperator,
		[]string{"alice", "bob", "carol"},
		"tokenA",
		[]uint64{100, 200, 300},
		l.now(),
		0,
		1000,
		false,
	)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	// Ids correspond positionally to the input beneficiaries
	expected := []struct {
		beneficiary string
		amount      uint64
	}{
		{"alice", 100},
		{"bob", 200},
		{"carol", 300},
	}
	for i, id := range ids {
		sched, err := l.GetSchedule(id)
		require.NoError(t, err)
		assert.Equal(t, expected[i].beneficiary, sched.Beneficiary)
		assert.Equal(t, expected[i].amount, sched.TotalAmount)
	}
	assert.Equal(t, uint64(600), l.LockedTotal("tokenA"))
	balance, err := facility.BalanceOf(context.Background(), "tokenA")
	require.NoError(t, err)
	assert.Equal(t, uint64(600), balance)
}

func TestBatchCreateAtomicity(t *testing.T) {
	l, facility, _ := newTestLedger(t)
	facility.Fund("tokenA", testOperator, 10_000)
	beneficiaries := []string{"b1", "b2", "b3", "b4", "b5"}
	amounts := []uint64{100, 100, 0, 100, 100}
	_, err := l.BatchCreateSchedules(
		context.Background(),
		testOperator,
		beneficiaries,
		"tokenA",
		amounts,
		l.now(),
		0,
		1000,
		false,
	)
	require.ErrorIs(t, err, ErrInvalidInput)
	// No schedule exists and no tokens moved
	for _, beneficiary := range beneficiaries {
		assert.Empty(t, l.ListSchedules(beneficiary))
	}
	assert.Equal(t, uint64(0), l.LockedTotal("tokenA"))
	assert.Equal(
		t,
		uint64(10_000),
		facility.HolderBalance("tokenA", testOperator),
	)
	// Mismatched lengths and empty batches are rejected up front
	_, err = l.BatchCreateSchedules(
		context.Background(),
		testOperator,
		[]string{"b1"},
		"tokenA",
		[]uint64{100, 200},
		l.now(),
		0,
		1000,
		false,
	)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = l.BatchCreateSchedules(
		context.Background(),
		testOperator,
		nil,
		"tokenA",
		nil,
		l.now(),
		0,
		1000,
		false,
	)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestBatchCreateIdCollision(t *testing.T) {
	l, facility, _ := newTestLedger(t)
	origId := newScheduleId
	t.Cleanup(func() {
		newScheduleId = origId
	})
	// A generator that repeats an id within the batch
	newScheduleId = func() (string, error) {
		return "duplicate-id", nil
	}
	facility.Fund("tokenA", testOperator, 300)
	_, err := l.BatchCreateSchedules(
		context.Background(),
		testOperator,
		[]string{"alice", "bob"},
		"tokenA",
		[]uint64{100, 200},
		l.now(),
		0,
		1000,
		false,
	)
	require.ErrorIs(t, err, ErrCollision)
	// Nothing was created and no tokens moved
	assert.Empty(t, l.ListSchedules("alice"))
	assert.Empty(t, l.ListSchedules("bob"))
	assert.Equal(t, uint64(0), l.LockedTotal("tokenA"))
	assert.Equal(
		t,
		uint64(300),
		facility.HolderBalance("tokenA", testOperator),
	)
}

func TestRelease(t *testing.T) {
	l, facility, clock := newTestLedger(t)
	id := createTestSchedule(
		t, l, facility, "alice", "tokenA", 1_000_000, 0, 31_536_000, false,
	)
	// Nothing vested yet
	_, err := l.Release(context.Background(), "alice", id)
	require.ErrorIs(t, err, ErrNothingDue)
	// Exactly half a year in, exactly half is releasable
	clock.Advance(15_768_000 * time.Second)
	info, err := l.GetVestingInfo(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000), info.Releasable)
	assert.Equal(t, ScheduleActive, info.State)
	amount, err := l.Release(context.Background(), "alice", id)
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000), amount)
	assert.Equal(t, uint64(500_000), facility.HolderBalance("tokenA", "alice"))
	assert.Equal(t, uint64(500_000), l.LockedTotal("tokenA"))
	// An immediate second release has nothing due
	_, err = l.Release(context.Background(), "alice", id)
	require.ErrorIs(t, err, ErrNothingDue)
	// At exact completion the remainder is releasable
	clock.Advance(15_768_000 * time.Second)
	amount, err = l.Release(context.Background(), "alice", id)
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000), amount)
	assert.Equal(t, uint64(1_000_000), facility.HolderBalance("tokenA", "alice"))
	assert.Equal(t, uint64(0), l.LockedTotal("tokenA"))
	info, err = l.GetVestingInfo(id)
	require.NoError(t, err)
	assert.Equal(t, ScheduleCompleted, info.State)
	assert.Equal(t, uint64(1_000_000), info.Schedule.Released)
}

func TestReleaseCliffGating(t *testing.T) {
	l, facility, clock := newTestLedger(t)
	id := createTestSchedule(
		t, l, facility, "alice", "tokenA", 100, 2_592_000, 31_536_000, false,
	)
	// One second before the cliff nothing is due
	clock.Advance(2_591_999 * time.Second)
	_, err := l.Release(context.Background(), "alice", id)
	require.ErrorIs(t, err, ErrNothingDue)
	// At the cliff the accrued amount unlocks
	clock.Advance(1 * time.Second)
	amount, err := l.Release(context.Background(), "alice", id)
	require.NoError(t, err)
	assert.Greater(t, amount, uint64(0))
}

func TestReleaseAuthorization(t *testing.T) {
	l, facility, clock := newTestLedger(t)
	id := createTestSchedule(
		t, l, facility, "alice", "tokenA", 1000, 0, 1000, false,
	)
	clock.Advance(500 * time.Second)
	// Neither the operator nor a stranger may release
	_, err := l.Release(context.Background(), testOperator, id)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = l.Release(context.Background(), "mallory", id)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = l.Release(context.Background(), "alice", "no-such-id")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRevokePayoutSplit(t *testing.T) {
	l, facility, clock := newTestLedger(t)
	id := createTestSchedule(
		t, l, facility, "alice", "tokenA", 1000, 0, 1000, true,
	)
	clock.Advance(400 * time.Second)
	require.NoError(t, l.Revoke(context.Background(), testOperator, id))
	// Beneficiary keeps the vested 400, the operator gets the 600 back
	assert.Equal(t, uint64(400), facility.HolderBalance("tokenA", "alice"))
	assert.Equal(
		t,
		uint64(600),
		facility.HolderBalance("tokenA", testOperator),
	)
	assert.Equal(t, uint64(0), l.LockedTotal("tokenA"))
	sched, err := l.GetSchedule(id)
	require.NoError(t, err)
	assert.True(t, sched.Revoked)
	assert.Equal(t, uint64(400), sched.Released)
	// Revoked schedules are never releasable, regardless of time
	clock.Advance(10_000 * time.Second)
	info, err := l.GetVestingInfo(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), info.Releasable)
	assert.Equal(t, ScheduleRevoked, info.State)
	_, err = l.Release(context.Background(), "alice", id)
	require.ErrorIs(t, err, ErrInvalidState)
	// A second revocation fails
	err = l.Revoke(context.Background(), testOperator, id)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestRevokeNonRevocable(t *testing.T) {
	l, facility, _ := newTestLedger(t)
	id := createTestSchedule(
		t, l, facility, "alice", "tokenA", 1000, 0, 1000, false,
	)
	err := l.Revoke(context.Background(), testOperator, id)
	require.ErrorIs(t, err, ErrInvalidState)
	err = l.Revoke(context.Background(), "alice", id)
	require.ErrorIs(t, err, ErrUnauthorized)
}

// refusingFacility wraps a MemoryFacility and rejects outbound transfers to
// one holder
type refusingFacility struct {
	*custody.MemoryFacility
	refuse string
}

func (f *refusingFacility) TransferOut(
	ctx context.Context,
	asset string,
	to string,
	amount uint64,
) error {
	if to == f.refuse {
		return errors.New("transfer rejected")
	}
	return f.MemoryFacility.TransferOut(ctx, asset, to, amount)
}

func TestRevokePayoutFailure(t *testing.T) {
	clock := newTestClock()
	inner := custody.NewMemoryFacility()
	facility := &refusingFacility{
		MemoryFacility: inner,
		refuse:         testOperator,
	}
	l, err := NewLedger(LedgerConfig{
		DataDir:    t.TempDir(),
		Custody:    facility,
		Authorizer: NewStaticAuthorizer(testOperator),
		Operator:   testOperator,
		Now:        clock.Now,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		l.Close()
	})
	inner.Fund("tokenA", testOperator, 1000)
	id, err := l.CreateSchedule(
		context.Background(),
		testOperator,
		ScheduleParams{
			Beneficiary:   "alice",
			Asset:         "tokenA",
			Amount:        1000,
			StartTime:     l.now(),
			CliffDuration: 0,
			TotalDuration: 1000,
			Revocable:     true,
		},
	)
	require.NoError(t, err)
	clock.Advance(400 * time.Second)
	// The vested payout to alice succeeds, the operator refund fails
	err = l.Revoke(context.Background(), testOperator, id)
	require.Error(t, err)
	assert.Equal(t, uint64(400), inner.HolderBalance("tokenA", "alice"))
	assert.Equal(
		t,
		uint64(0),
		inner.HolderBalance("tokenA", testOperator),
	)
	// The revocation committed despite the failed refund, so the vested
	// portion can never be paid a second time
	sched, err := l.GetSchedule(id)
	require.NoError(t, err)
	assert.True(t, sched.Revoked)
	assert.Equal(t, uint64(400), sched.Released)
	assert.Equal(t, uint64(0), l.LockedTotal("tokenA"))
	_, err = l.Release(context.Background(), "alice", id)
	require.ErrorIs(t, err, ErrInvalidState)
	err = l.Revoke(context.Background(), testOperator, id)
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, uint64(400), inner.HolderBalance("tokenA", "alice"))
	// The unsent refund is still in custody, owed to the operator
	bal, err := inner.BalanceOf(context.Background(), "tokenA")
	require.NoError(t, err)
	assert.Equal(t, uint64(600), bal)
}

func TestChangeBeneficiary(t *testing.T) {
	l, facility, clock := newTestLedger(t)
	id := createTestSchedule(
		t, l, facility, "alice", "tokenA", 1000, 0, 1000, false,
	)
	require.NoError(
		t,
		l.ChangeBeneficiary(context.Background(), testOperator, id, "bob"),
	)
	// Visibility moves with the reassignment
	assert.Empty(t, l.ListSchedules("alice"))
	assert.Equal(t, []string{id}, l.ListSchedules("bob"))
	// The new beneficiary releases, the old one cannot
	clock.Advance(500 * time.Second)
	_, err := l.Release(context.Background(), "alice", id)
	require.ErrorIs(t, err, ErrUnauthorized)
	amount, err := l.Release(context.Background(), "bob", id)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), amount)
	// Reassigning to the current beneficiary or nobody is rejected
	err = l.ChangeBeneficiary(context.Background(), testOperator, id, "bob")
	require.ErrorIs(t, err, ErrInvalidInput)
	err = l.ChangeBeneficiary(context.Background(), testOperator, id, "")
	require.ErrorIs(t, err, ErrInvalidInput)
	err = l.ChangeBeneficiary(context.Background(), "bob", id, "carol")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestEmergencySweep(t *testing.T) {
	l, facility, _ := newTestLedger(t)
	createTestSchedule(
		t, l, facility, "alice", "tokenA", 1000, 0, 1000, false,
	)
	// Custody holds exactly the locked total, so any sweep must fail
	err := l.EmergencySweep(context.Background(), testOperator, "tokenA", 1)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	// An accidental transfer-in is sweepable, but only up to the excess
	facility.Deposit("tokenA", 500)
	err = l.EmergencySweep(context.Background(), testOperator, "tokenA", 501)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.NoError(
		t,
		l.EmergencySweep(context.Background(), testOperator, "tokenA", 500),
	)
	assert.Equal(
		t,
		uint64(500),
		facility.HolderBalance("tokenA", testOperator),
	)
	// The locked total is untouched
	assert.Equal(t, uint64(1000), l.LockedTotal("tokenA"))
	err = l.EmergencySweep(context.Background(), testOperator, "tokenA", 1)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	err = l.EmergencySweep(context.Background(), "mallory", "tokenA", 1)
	require.ErrorIs(t, err, ErrUnauthorized)
	err = l.EmergencySweep(context.Background(), testOperator, "tokenA", 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPause(t *testing.T) {
	l, facility, _ := newTestLedger(t)
	id := createTestSchedule(
		t, l, facility, "alice", "tokenA", 1000, 0, 1000, true,
	)
	require.ErrorIs(t, l.Pause("mallory"), ErrUnauthorized)
	require.NoError(t, l.Pause(testOperator))
	assert.True(t, l.Paused())
	require.ErrorIs(t, l.Pause(testOperator), ErrInvalidState)
	// Creation and release fail closed while paused
	facility.Fund("tokenA", testOperator, 100)
	_, err := l.CreateSchedule(
		context.Background(),
		testOperator,
		ScheduleParams{
			Beneficiary:   "bob",
			Asset:         "tokenA",
			Amount:        100,
			StartTime:     l.now(),
			TotalDuration: 100,
		},
	)
	require.ErrorIs(t, err, ErrPaused)
	_, err = l.BatchCreateSchedules(
		context.Background(),
		testOperator,
		[]string{"bob"},
		"tokenA",
		[]uint64{100},
		l.now(),
		0,
		100,
		false,
	)
	require.ErrorIs(t, err, ErrPaused)
	_, err = l.Release(context.Background(), "alice", id)
	require.ErrorIs(t, err, ErrPaused)
	// Administrative remediation stays available
	require.NoError(
		t,
		l.ChangeBeneficiary(context.Background(), testOperator, id, "bob"),
	)
	require.NoError(t, l.Revoke(context.Background(), testOperator, id))
	// Queries stay available
	_, err = l.GetVestingInfo(id)
	require.NoError(t, err)
	require.NoError(t, l.Unpause(testOperator))
	assert.False(t, l.Paused())
	require.ErrorIs(t, l.Unpause(testOperator), ErrInvalidState)
	_, err = l.CreateSchedule(
		context.Background(),
		testOperator,
		ScheduleParams{
			Beneficiary:   "carol",
			Asset:         "tokenA",
			Amount:        100,
			StartTime:     l.now(),
			TotalDuration: 100,
		},
	)
	require.NoError(t, err)
}

func TestPersistence(t *testing.T) {
	dataDir := t.TempDir()
	clock := newTestClock()
	facility := custody.NewMemoryFacility()
	cfg := LedgerConfig{
		DataDir:    dataDir,
		Custody:    facility,
		Authorizer: NewStaticAuthorizer(testOperator),
		Operator:   testOperator,
		Now:        clock.Now,
	}
	l, err := NewLedger(cfg)
	require.NoError(t, err)
	facility.Fund("tokenA", testOperator, 1000)
	id, err := l.CreateSchedule(
		context.Background(),
		testOperator,
		ScheduleParams{
			Beneficiary:   "alice",
			Asset:         "tokenA",
			Amount:        1000,
			StartTime:     l.now(),
			TotalDuration: 1000,
		},
	)
	require.NoError(t, err)
	clock.Advance(250 * time.Second)
	_, err = l.Release(context.Background(), "alice", id)
	require.NoError(t, err)
	require.NoError(t, l.Close())
	// Reopen from the same data directory
	l, err = NewLedger(cfg)
	require.NoError(t, err)
	defer l.Close()
	sched, err := l.GetSchedule(id)
	require.NoError(t, err)
	assert.Equal(t, "alice", sched.Beneficiary)
	assert.Equal(t, uint64(250), sched.Released)
	assert.Equal(t, []string{id}, l.ListSchedules("alice"))
	assert.Equal(t, uint64(750), l.LockedTotal("tokenA"))
	// The audit journal survived too
	entries, err := l.JournalEntries("tokenA")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "create", entries[0].Op)
	assert.Equal(t, "release", entries[1].Op)
}

func TestJournal(t *testing.T) {
	l, facility, clock := newTestLedger(t)
	id := createTestSchedule(
		t, l, facility, "alice", "tokenA", 1000, 0, 1000, true,
	)
	createTestSchedule(
		t, l, facility, "bob", "tokenB", 500, 0, 1000, false,
	)
	clock.Advance(400 * time.Second)
	_, err := l.Release(context.Background(), "alice", id)
	require.NoError(t, err)
	require.NoError(t, l.Revoke(context.Background(), testOperator, id))
	// Entries are filterable by asset and ordered by sequence
	entries, err := l.JournalEntries("tokenA")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "create", entries[0].Op)
	assert.Equal(t, "release", entries[1].Op)
	assert.Equal(t, "revoke", entries[2].Op)
	assert.Equal(t, []string{id}, entries[1].ScheduleIds)
	assert.Equal(t, uint64(400), entries[1].Amount)
	assert.Equal(t, uint64(600), entries[2].Amount)
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].Seq, entries[i-1].Seq)
	}
	entries, err = l.JournalEntries("tokenB")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "create", entries[0].Op)
	assert.Equal(t, uint64(500), entries[0].Amount)
}

func TestScheduleInvariants(t *testing.T) {
	l, facility, clock := newTestLedger(t)
	ids := []string{
		createTestSchedule(t, l, facility, "alice", "tokenA", 999, 50, 777, true),
		createTestSchedule(t, l, facility, "bob", "tokenA", 123_456, 0, 3600, true),
		createTestSchedule(t, l, facility, "carol", "tokenA", 7, 100, 100, false),
	}
	check := func() {
		var outstanding uint64
		for _, id := range ids {
			sched, err := l.GetSchedule(id)
			require.NoError(t, err)
			require.LessOrEqual(t, sched.Released, sched.TotalAmount)
			if !sched.Revoked {
				outstanding += sched.TotalAmount - sched.Released
			}
		}
		// Locked total matches outstanding obligations and never exceeds
		// the custody balance
		require.Equal(t, outstanding, l.LockedTotal("tokenA"))
		balance, err := facility.BalanceOf(context.Background(), "tokenA")
		require.NoError(t, err)
		require.LessOrEqual(t, l.LockedTotal("tokenA"), balance)
	}
	check()
	for range 20 {
		clock.Advance(97 * time.Second)
		for _, id := range ids {
			sched, err := l.GetSchedule(id)
			require.NoError(t, err)
			if _, err := l.Release(
				context.Background(),
				sched.Beneficiary,
				id,
			); err != nil {
				require.ErrorIs(t, err, ErrNothingDue)
			}
			check()
		}
	}
	// ids[1] is still vesting after the loop, so revocation splits its
	// remaining value and the invariants must still hold
	require.NoError(t, l.Revoke(context.Background(), testOperator, ids[1]))
	check()
	// ids[0] finished vesting during the loop and can no longer be revoked
	err := l.Revoke(context.Background(), testOperator, ids[0])
	require.ErrorIs(t, err, ErrInvalidState)
}
