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
	"github.com/mariogutval/flightsurety/event"
)

const (
	AirlineRegisteredEventType event.EventType = "airline.registered"
	AirlineVotedEventType      event.EventType = "airline.voted"
	AirlineFundedEventType     event.EventType = "airline.funded"
	FlightRegisteredEventType  event.EventType = "flight.registered"
	FlightStatusEventType      event.EventType = "flight.status"
	PolicyPurchasedEventType   event.EventType = "policy.purchased"
	PolicyCreditedEventType    event.EventType = "policy.credited"
	PolicyClosedEventType      event.EventType = "policy.closed"
	PayoutPaidEventType        event.EventType = "payout.paid"
	OperationalEventType       event.EventType = "operational.changed"
)

// EventTypes returns every event type the ledger publishes
func EventTypes() []event.EventType {
	return []event.EventType{
		AirlineRegisteredEventType,
		AirlineVotedEventType,
		AirlineFundedEventType,
		FlightRegisteredEventType,
		FlightStatusEventType,
		PolicyPurchasedEventType,
		PolicyCreditedEventType,
		PolicyClosedEventType,
		PayoutPaidEventType,
		OperationalEventType,
	}
}

// AirlineEvent is emitted when an airline is registered or queued
type AirlineEvent struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	State   string `json:"state"`
}

// VoteEvent is emitted for every recorded admission approval
type VoteEvent struct {
	Voter     string `json:"voter"`
	Candidate string `json:"candidate"`
	Approvals int64  `json:"approvals"`
	Promoted  bool   `json:"promoted"`
}

// FundEvent is emitted for every funding contribution
type FundEvent struct {
	Address  string `json:"address"`
	Caller   string `json:"caller"`
	Amount   uint64 `json:"amount"`
	Total    uint64 `json:"total"`
	Promoted bool   `json:"promoted"`
}

// FlightEvent is emitted when a flight is registered
type FlightEvent struct {
	Key       string `json:"key"`
	Airline   string `json:"airline"`
	Number    string `json:"number"`
	Departure int64  `json:"departure"`
}

// FlightStatusEvent is emitted when a flight status is processed
type FlightStatusEvent struct {
	Key    string `json:"key"`
	Status uint8  `json:"status"`
}

// PolicyEvent is emitted when a policy is purchased
type PolicyEvent struct {
	FlightKey string `json:"flightKey"`
	Passenger string `json:"passenger"`
	Value     uint64 `json:"value"`
}

// PolicyResolutionEvent is emitted when the policies under a flight key are
// credited or closed
type PolicyResolutionEvent struct {
	FlightKey   string `json:"flightKey"`
	Policies    int    `json:"policies"`
	TotalPayout uint64 `json:"totalPayout,omitempty"`
}

// PayoutEvent is emitted when a pending payout is transferred
type PayoutEvent struct {
	Beneficiary string `json:"beneficiary"`
	Amount      uint64 `json:"amount"`
}

// OperationalEvent is emitted when the operational gate is toggled
type OperationalEvent struct {
	Operational bool `json:"operational"`
}
