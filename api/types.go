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

package api

import (
	"time"

	"github.com/mariogutval/flightsurety/database/models"
	"github.com/mariogutval/flightsurety/ledger"
)

// Ledger is the subset of ledger operations the API server exposes
type Ledger interface {
	IsOperational() bool
	SetOperatingStatus(caller string, operational bool) error
	AuthorizeCaller(caller, address string) error
	DeauthorizeCaller(caller, address string) error
	RegisterAirline(caller, address, name string) error
	Vote(caller, voter, candidate string) error
	Fund(caller, address string, amount uint64) error
	RegisterFlight(
		caller, airline, number string,
		departure time.Time,
	) (string, error)
	ProcessFlightStatus(caller, flightKey string, status uint8) error
	Buy(passenger, flightKey string, value uint64) error
	CreditInsurees(caller, flightKey string) error
	CloseInsurees(caller, flightKey string) error
	Pay(caller, beneficiary string) (uint64, error)
	GetAirline(address string) (*ledger.AirlineInfo, error)
	PaidAirlines() ([]ledger.AirlineInfo, error)
	GetFlight(key string) (*models.Flight, error)
	GetPolicies(flightKey string) ([]models.Policy, error)
	PendingPayout(beneficiary string) (uint64, error)
}

// ErrorResponse is the API error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

type operationalResponse struct {
	Operational bool `json:"operational"`
}

type setOperationalRequest struct {
	Operational bool `json:"operational"`
}

type authorizeCallerRequest struct {
	Address string `json:"address"`
}

type registerAirlineRequest struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

type airlineResponse struct {
	Address   string   `json:"address"`
	Name      string   `json:"name"`
	State     string   `json:"state"`
	Funding   uint64   `json:"funding"`
	Approvals []string `json:"approvals,omitempty"`
}

type voteRequest struct {
	Voter string `json:"voter"`
}

type fundRequest struct {
	Amount uint64 `json:"amount"`
}

type registerFlightRequest struct {
	Airline   string `json:"airline"`
	Number    string `json:"number"`
	Departure int64  `json:"departure"`
}

type flightResponse struct {
	Key       string `json:"key"`
	Airline   string `json:"airline"`
	Number    string `json:"number"`
	Departure int64  `json:"departure"`
	Status    uint8  `json:"status"`
}

type flightStatusRequest struct {
	Status uint8 `json:"status"`
}

type buyPolicyRequest struct {
	Passenger string `json:"passenger"`
	FlightKey string `json:"flightKey"`
	Value     uint64 `json:"value"`
}

type policyResponse struct {
	Passenger string `json:"passenger"`
	FlightKey string `json:"flightKey"`
	Value     uint64 `json:"value"`
	Status    string `json:"status"`
}

type payoutResponse struct {
	Beneficiary string `json:"beneficiary"`
	Amount      uint64 `json:"amount"`
}

func policyStatusString(status uint8) string {
	if status == models.PolicyStatusClosed {
		return "closed"
	}
	return "active"
}
