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
	"github.com/mariogutval/flightsurety/database/models"
)

// AirlineInfo is the read-side view of one airline's governance state
type AirlineInfo struct {
	Address   string
	Name      string
	State     string
	Funding   uint64
	Approvals []string
}

// GetAirline returns the governance state of an airline. Returns nil when
// the airline has never been referenced
func (ls *LedgerState) GetAirline(address string) (*AirlineInfo, error) {
	ls.Lock()
	defer ls.Unlock()
	airline, err := ls.db.GetAirline(address, nil)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, nil
	}
	approvals, err := ls.db.GetApprovals(airline.ID, nil)
	if err != nil {
		return nil, err
	}
	return &AirlineInfo{
		Address:   airline.Address,
		Name:      airline.Name,
		State:     models.AirlineStateString(airline.State),
		Funding:   airline.Funding,
		Approvals: approvals,
	}, nil
}

// PaidAirlines returns the roster of funded member airlines
func (ls *LedgerState) PaidAirlines() ([]AirlineInfo, error) {
	ls.Lock()
	defer ls.Unlock()
	airlines, err := ls.db.PaidAirlines(nil)
	if err != nil {
		return nil, err
	}
	ret := make([]AirlineInfo, 0, len(airlines))
	for _, airline := range airlines {
		ret = append(ret, AirlineInfo{
			Address: airline.Address,
			Name:    airline.Name,
			State:   models.AirlineStateString(airline.State),
			Funding: airline.Funding,
		})
	}
	return ret, nil
}

// GetFlight returns a registered flight. Returns nil when no flight exists
// for the key
func (ls *LedgerState) GetFlight(key string) (*models.Flight, error) {
	ls.Lock()
	defer ls.Unlock()
	return ls.db.GetFlight(key, nil)
}

// GetPolicies returns the policy sequence for a flight key in purchase
// order
func (ls *LedgerState) GetPolicies(
	flightKey string,
) ([]models.Policy, error) {
	ls.Lock()
	defer ls.Unlock()
	return ls.db.GetPolicies(flightKey, nil)
}

// PendingPayout returns a beneficiary's pending withdrawable amount
func (ls *LedgerState) PendingPayout(beneficiary string) (uint64, error) {
	ls.Lock()
	defer ls.Unlock()
	payout, err := ls.db.GetPayout(beneficiary, nil)
	if err != nil {
		return 0, err
	}
	if payout == nil {
		return 0, nil
	}
	return payout.Amount, nil
}
