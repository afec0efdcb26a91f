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

package database_test

import (
	"errors"
	"testing"

	"github.com/mariogutval/flightsurety/database"
	"github.com/mariogutval/flightsurety/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(&database.Config{
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestGetOrCreateAirline(t *testing.T) {
	db := newTestDatabase(t)

	// Unknown airline is nil, not an error
	airline, err := db.GetAirline("airline-1", nil)
	require.NoError(t, err)
	assert.Nil(t, airline)

	// First reference creates the row with zero-value defaults
	airline, err = db.GetOrCreateAirline("airline-1", nil)
	require.NoError(t, err)
	require.NotNil(t, airline)
	assert.Equal(
		t,
		uint8(models.AirlineStateApplied),
		airline.State,
	)
	assert.Equal(t, uint64(0), airline.Funding)

	// Second reference returns the same row
	again, err := db.GetOrCreateAirline("airline-1", nil)
	require.NoError(t, err)
	assert.Equal(t, airline.ID, again.ID)
}

func TestCountAdmittedAirlines(t *testing.T) {
	db := newTestDatabase(t)

	for i, state := range []uint8{
		models.AirlineStateApplied,
		models.AirlineStateRegistered,
		models.AirlineStateRegistered,
		models.AirlineStatePaid,
	} {
		airline, err := db.GetOrCreateAirline(
			string(rune('a'+i)),
			nil,
		)
		require.NoError(t, err)
		airline.State = state
		require.NoError(t, db.SaveAirline(airline, nil))
	}

	// Applied airlines do not count toward membership
	count, err := db.CountAdmittedAirlines(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	paid, err := db.PaidAirlines(nil)
	require.NoError(t, err)
	assert.Len(t, paid, 1)
}

func TestApprovals(t *testing.T) {
	db := newTestDatabase(t)

	airline, err := db.GetOrCreateAirline("airline-1", nil)
	require.NoError(t, err)

	require.NoError(t, db.AddApproval(airline.ID, "voter-1", nil))
	require.NoError(t, db.AddApproval(airline.ID, "voter-2", nil))
	// Approvals are a raw log, not a set
	require.NoError(t, db.AddApproval(airline.ID, "voter-1", nil))

	count, err := db.CountApprovals(airline.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	voters, err := db.GetApprovals(airline.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"voter-1", "voter-2", "voter-1"}, voters)
}

func TestFlightStatus(t *testing.T) {
	db := newTestDatabase(t)

	flight, err := db.GetOrCreateFlight(&models.Flight{
		Key:       "key-1",
		Airline:   "airline-1",
		Number:    "FS1234",
		Departure: 1700000000,
	}, nil)
	require.NoError(t, err)
	assert.Equal(
		t,
		uint8(models.FlightStatusUnknown),
		flight.Status,
	)

	// Re-creating with the same key returns the existing row
	again, err := db.GetOrCreateFlight(&models.Flight{
		Key: "key-1",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, flight.ID, again.ID)
	assert.Equal(t, "FS1234", again.Number)

	require.NoError(
		t,
		db.SetFlightStatus(
			"key-1",
			models.FlightStatusLateAirline,
			nil,
		),
	)
	flight, err = db.GetFlight("key-1", nil)
	require.NoError(t, err)
	assert.Equal(
		t,
		uint8(models.FlightStatusLateAirline),
		flight.Status,
	)
}

func TestPolicies(t *testing.T) {
	db := newTestDatabase(t)

	for _, passenger := range []string{"pax-1", "pax-2", "pax-3"} {
		require.NoError(t, db.AddPolicy(&models.Policy{
			FlightKey: "key-1",
			Passenger: passenger,
			Value:     1,
		}, nil))
	}
	require.NoError(t, db.AddPolicy(&models.Policy{
		FlightKey: "key-2",
		Passenger: "pax-1",
		Value:     1,
	}, nil))

	// Purchase order is preserved
	policies, err := db.GetPolicies("key-1", nil)
	require.NoError(t, err)
	require.Len(t, policies, 3)
	assert.Equal(t, "pax-1", policies[0].Passenger)
	assert.Equal(t, "pax-3", policies[2].Passenger)

	// Closing one policy removes it from the active set only
	require.NoError(t, db.ClosePolicy(policies[0].ID, nil))
	active, err := db.GetActivePolicies("key-1", nil)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	policies, err = db.GetPolicies("key-1", nil)
	require.NoError(t, err)
	assert.Len(t, policies, 3)

	// Closing the whole flight key leaves other keys untouched
	require.NoError(t, db.ClosePolicies("key-1", nil))
	active, err = db.GetActivePolicies("key-1", nil)
	require.NoError(t, err)
	assert.Empty(t, active)
	active, err = db.GetActivePolicies("key-2", nil)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestPayoutCreditAndZero(t *testing.T) {
	db := newTestDatabase(t)

	// Zeroing an unknown beneficiary returns zero
	amount, err := db.ZeroPayout("pax-1", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), amount)

	require.NoError(t, db.CreditPayout("pax-1", 3, nil))
	require.NoError(t, db.CreditPayout("pax-1", 6, nil))

	payout, err := db.GetPayout("pax-1", nil)
	require.NoError(t, err)
	require.NotNil(t, payout)
	assert.Equal(t, uint64(9), payout.Amount)

	amount, err = db.ZeroPayout("pax-1", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), amount)

	payout, err = db.GetPayout("pax-1", nil)
	require.NoError(t, err)
	require.NotNil(t, payout)
	assert.Equal(t, uint64(0), payout.Amount)
}

func TestCallers(t *testing.T) {
	db := newTestDatabase(t)

	ok, err := db.HasCaller("app-1", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.AddCaller("app-1", nil))
	// Adding twice is idempotent
	require.NoError(t, db.AddCaller("app-1", nil))

	ok, err = db.HasCaller("app-1", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, db.RemoveCaller("app-1", nil))
	ok, err = db.HasCaller("app-1", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNodeStateSingleton(t *testing.T) {
	db := newTestDatabase(t)

	state, err := db.GetNodeState("authority-1", nil)
	require.NoError(t, err)
	assert.True(t, state.Operational)
	assert.Equal(t, "authority-1", state.Authority)

	require.NoError(t, db.SetOperational(false, nil))
	state, err = db.GetNodeState("authority-1", nil)
	require.NoError(t, err)
	assert.False(t, state.Operational)
}

func TestTransactionRollback(t *testing.T) {
	db := newTestDatabase(t)

	sentinel := errors.New("boom")
	err := db.Transaction(func(txn *gorm.DB) error {
		if err := db.CreditPayout("pax-1", 5, txn); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	// The credit must have been rolled back with the transaction
	payout, err := db.GetPayout("pax-1", nil)
	require.NoError(t, err)
	assert.Nil(t, payout)
}
