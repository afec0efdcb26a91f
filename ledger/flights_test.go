// Copyright 2025 Blink Labs Software
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

package ledger_test

import (
	"testing"
	"time"

	"github.com/mariogutval/flightsurety/database/models"
	"github.com/mariogutval/flightsurety/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightKeyDeterministic(t *testing.T) {
	departure := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	keyA := ledger.FlightKey("airline-1", "FS1234", departure)
	keyB := ledger.FlightKey("airline-1", "FS1234", departure)
	assert.Equal(t, keyA, keyB)

	// Any differing input produces a different key
	assert.NotEqual(
		t,
		keyA,
		ledger.FlightKey("airline-2", "FS1234", departure),
	)
	assert.NotEqual(
		t,
		keyA,
		ledger.FlightKey("airline-1", "FS5678", departure),
	)
	assert.NotEqual(
		t,
		keyA,
		ledger.FlightKey(
			"airline-1",
			"FS1234",
			departure.Add(time.Hour),
		),
	)
}

func TestRegisterFlightIdempotent(t *testing.T) {
	ls := newTestLedger(t)

	keyA := registerTestFlight(t, ls)
	keyB := registerTestFlight(t, ls)
	assert.Equal(t, keyA, keyB)

	flight, err := ls.GetFlight(keyA)
	require.NoError(t, err)
	require.NotNil(t, flight)
	assert.Equal(t, "airline-1", flight.Airline)
	assert.Equal(t, "FS1234", flight.Number)
	assert.Equal(t, testDeparture.Unix(), flight.Departure)
	assert.Equal(
		t,
		uint8(models.FlightStatusUnknown),
		flight.Status,
	)
}

func TestProcessFlightStatusLateAirline(t *testing.T) {
	ls := newTestLedger(t, func(cfg *ledger.LedgerStateConfig) {
		cfg.PremiumCap = 2
	})
	key := registerTestFlight(t, ls)
	require.NoError(t, ls.Buy("pax-1", key, 2))

	err := ls.ProcessFlightStatus(
		testAuthority,
		key,
		models.FlightStatusLateAirline,
	)
	require.NoError(t, err)

	flight, err := ls.GetFlight(key)
	require.NoError(t, err)
	assert.Equal(
		t,
		uint8(models.FlightStatusLateAirline),
		flight.Status,
	)

	// A delay attributed to the airline compensates passengers
	pending, err := ls.PendingPayout("pax-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), pending)
}

func TestProcessFlightStatusOtherStatuses(t *testing.T) {
	for _, status := range []uint8{
		models.FlightStatusOnTime,
		models.FlightStatusLateWeather,
		models.FlightStatusLateTechnical,
		models.FlightStatusLateOther,
	} {
		t.Run(
			models.FlightStatusString(status),
			func(t *testing.T) {
				ls := newTestLedger(t)
				key := registerTestFlight(t, ls)
				require.NoError(t, ls.Buy("pax-1", key, 1))

				err := ls.ProcessFlightStatus(
					testAuthority,
					key,
					status,
				)
				require.NoError(t, err)

				// Any resolution not attributable to the airline
				// closes policies without payout
				policies, err := ls.GetPolicies(key)
				require.NoError(t, err)
				require.Len(t, policies, 1)
				assert.Equal(
					t,
					uint8(models.PolicyStatusClosed),
					policies[0].Status,
				)
				pending, err := ls.PendingPayout("pax-1")
				require.NoError(t, err)
				assert.Equal(t, uint64(0), pending)
			},
		)
	}
}

func TestProcessFlightStatusUnknown(t *testing.T) {
	ls := newTestLedger(t)
	key := registerTestFlight(t, ls)
	require.NoError(t, ls.Buy("pax-1", key, 1))

	err := ls.ProcessFlightStatus(
		testAuthority,
		key,
		models.FlightStatusUnknown,
	)
	require.NoError(t, err)

	// Unknown is not a resolution: policies stay open for a later update
	policies, err := ls.GetPolicies(key)
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(
		t,
		uint8(models.PolicyStatusActive),
		policies[0].Status,
	)
}

func TestProcessFlightStatusNotFound(t *testing.T) {
	ls := newTestLedger(t)

	err := ls.ProcessFlightStatus(
		testAuthority,
		"missing",
		models.FlightStatusOnTime,
	)
	require.ErrorIs(t, err, ledger.ErrFlightNotFound)
}
