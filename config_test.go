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

package vesting

import (
	"testing"
	"time"

	"github.com/campustudio/blockchain-vesting-app/custody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, runModeServe, cfg.runMode)
	assert.Equal(t, 30*time.Second, cfg.shutdownTimeout)
	assert.Empty(t, cfg.dataDir)
	assert.False(t, cfg.isDevMode())
}

func TestConfigOptions(t *testing.T) {
	facility := custody.NewMemoryFacility()
	cfg := NewConfig(
		WithDatabasePath("/tmp/vesting"),
		WithOperator("treasury"),
		WithExtraOperators("ops-a", "ops-b"),
		WithCustodyFacility(facility),
		WithRunMode(runModeDev),
		WithShutdownTimeout(5*time.Second),
		WithTracing(true),
		WithTracingStdout(true),
	)
	assert.Equal(t, "/tmp/vesting", cfg.dataDir)
	assert.Equal(t, "treasury", cfg.operator)
	assert.Equal(t, []string{"ops-a", "ops-b"}, cfg.extraOperators)
	assert.Equal(t, custody.Facility(facility), cfg.custodyFacility)
	assert.True(t, cfg.isDevMode())
	assert.Equal(t, 5*time.Second, cfg.shutdownTimeout)
	assert.True(t, cfg.tracing)
	assert.True(t, cfg.tracingStdout)
}

func TestConfigValidate(t *testing.T) {
	// Missing operator
	_, err := New(NewConfig(
		WithCustodyFacility(custody.NewMemoryFacility()),
	))
	require.ErrorContains(t, err, "no operator identity")
	// Missing custody facility outside dev mode
	_, err = New(NewConfig(
		WithOperator("treasury"),
	))
	require.ErrorContains(t, err, "no custody facility")
	// Dev mode supplies its own custody facility
	_, err = New(NewConfig(
		WithOperator("treasury"),
		WithRunMode(runModeDev),
	))
	require.NoError(t, err)
	// Unknown run mode
	_, err = New(NewConfig(
		WithOperator("treasury"),
		WithRunMode("bogus"),
	))
	require.ErrorContains(t, err, "unknown run mode")
}
