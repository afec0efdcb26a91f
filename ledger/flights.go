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

package ledger

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/mariogutval/flightsurety/database/models"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

// FlightKey derives the deterministic identifier grouping insurance
// policies for one real-world flight event
func FlightKey(
	airline string,
	number string,
	departure time.Time,
) string {
	tmpData := make([]byte, 0, len(airline)+len(number)+8)
	tmpData = append(tmpData, []byte(airline)...)
	tmpData = append(tmpData, []byte(number)...)
	tmpData = binary.BigEndian.AppendUint64(
		tmpData,
		uint64(departure.Unix()), //nolint:gosec
	)
	key := blake2b.Sum256(tmpData)
	return hex.EncodeToString(key[:])
}

// RegisterFlight records a flight and returns its key. Registering the same
// flight again returns the existing key
func (ls *LedgerState) RegisterFlight(
	caller string,
	airline string,
	number string,
	departure time.Time,
) (string, error) {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return "", err
	}
	if err := ls.requireRole(caller, RoleAuthorized, nil); err != nil {
		return "", err
	}
	key := FlightKey(airline, number, departure)
	err := ls.db.Transaction(func(txn *gorm.DB) error {
		_, err := ls.db.GetOrCreateFlight(
			&models.Flight{
				Key:       key,
				Airline:   airline,
				Number:    number,
				Departure: departure.Unix(),
			},
			txn,
		)
		return err
	})
	if err != nil {
		ls.metrics.operation("register_flight", err)
		return "", err
	}
	ls.metrics.operation("register_flight", nil)
	ls.publish(FlightRegisteredEventType, FlightEvent{
		Key:       key,
		Airline:   airline,
		Number:    number,
		Departure: departure.Unix(),
	})
	return key, nil
}

// ProcessFlightStatus records the resolved status for a flight and resolves
// its policies: a delay attributed to the airline credits all Active
// policies, any other resolved status closes them without payout
func (ls *LedgerState) ProcessFlightStatus(
	caller string,
	flightKey string,
	status uint8,
) error {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return err
	}
	if err := ls.requireRole(caller, RoleAuthorized, nil); err != nil {
		return err
	}
	var credits []payoutCredit
	var resolved int
	err := ls.db.Transaction(func(txn *gorm.DB) error {
		flight, err := ls.db.GetFlight(flightKey, txn)
		if err != nil {
			return err
		}
		if flight == nil {
			return ErrFlightNotFound
		}
		if err := ls.db.SetFlightStatus(flightKey, status, txn); err != nil {
			return err
		}
		switch status {
		case models.FlightStatusUnknown:
			// Not a resolution, leave policies untouched
		case models.FlightStatusLateAirline:
			credits, err = ls.creditInsureesTxn(flightKey, txn)
			if err != nil {
				return err
			}
			resolved = len(credits)
		default:
			resolved, err = ls.closeInsureesTxn(flightKey, txn)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		ls.metrics.operation("process_flight_status", err)
		return err
	}
	ls.metrics.operation("process_flight_status", nil)
	ls.config.Logger.Info(
		"flight status processed",
		"flight", flightKey,
		"status", status,
		"policies", resolved,
		"component", "ledger",
	)
	ls.publish(FlightStatusEventType, FlightStatusEvent{
		Key:    flightKey,
		Status: status,
	})
	ls.publishResolution(flightKey, status, credits, resolved)
	return nil
}

// publishResolution emits the policy resolution event matching a flight
// status outcome
func (ls *LedgerState) publishResolution(
	flightKey string,
	status uint8,
	credits []payoutCredit,
	resolved int,
) {
	switch status {
	case models.FlightStatusUnknown:
	case models.FlightStatusLateAirline:
		var total uint64
		for _, credit := range credits {
			total += credit.amount
		}
		ls.metrics.payoutsCredited.Add(float64(total))
		ls.publish(PolicyCreditedEventType, PolicyResolutionEvent{
			FlightKey:   flightKey,
			Policies:    resolved,
			TotalPayout: total,
		})
	default:
		ls.publish(PolicyClosedEventType, PolicyResolutionEvent{
			FlightKey: flightKey,
			Policies:  resolved,
		})
	}
}
