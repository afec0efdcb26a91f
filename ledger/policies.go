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
	"gorm.io/gorm"
)

// payoutCredit is one passenger credit computed while resolving a flight
type payoutCredit struct {
	passenger string
	amount    uint64
}

// Buy opens a new Active policy for a passenger on a flight key. The value
// must not exceed the per-policy premium cap
func (ls *LedgerState) Buy(
	passenger string,
	flightKey string,
	value uint64,
) error {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return err
	}
	if value == 0 || value > ls.config.PremiumCap {
		ls.metrics.operation("buy", ErrInvalidAmount)
		return ErrInvalidAmount
	}
	err := ls.db.Transaction(func(txn *gorm.DB) error {
		return ls.db.AddPolicy(
			&models.Policy{
				FlightKey: flightKey,
				Passenger: passenger,
				Value:     value,
				Status:    models.PolicyStatusActive,
			},
			txn,
		)
	})
	if err != nil {
		ls.metrics.operation("buy", err)
		return err
	}
	ls.metrics.operation("buy", nil)
	ls.publish(PolicyPurchasedEventType, PolicyEvent{
		FlightKey: flightKey,
		Passenger: passenger,
		Value:     value,
	})
	return nil
}

// CreditInsurees closes every Active policy under a flight key and credits
// each passenger's pending payout. Policies already Closed are untouched,
// so re-invocation is a no-op
func (ls *LedgerState) CreditInsurees(
	caller string,
	flightKey string,
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
	err := ls.db.Transaction(func(txn *gorm.DB) error {
		var err error
		credits, err = ls.creditInsureesTxn(flightKey, txn)
		return err
	})
	if err != nil {
		ls.metrics.operation("credit_insurees", err)
		return err
	}
	ls.metrics.operation("credit_insurees", nil)
	var total uint64
	for _, credit := range credits {
		total += credit.amount
	}
	ls.metrics.payoutsCredited.Add(float64(total))
	ls.config.Logger.Info(
		"insurees credited",
		"flight", flightKey,
		"policies", len(credits),
		"total", total,
		"component", "ledger",
	)
	ls.publish(PolicyCreditedEventType, PolicyResolutionEvent{
		FlightKey:   flightKey,
		Policies:    len(credits),
		TotalPayout: total,
	})
	return nil
}

// creditInsureesTxn closes each Active policy under a flight key and
// schedules its payout inside an existing transaction. The payout is
// value/2*3: division happens before multiplication, so the half is
// truncated under integer arithmetic
func (ls *LedgerState) creditInsureesTxn(
	flightKey string,
	txn *gorm.DB,
) ([]payoutCredit, error) {
	policies, err := ls.db.GetActivePolicies(flightKey, txn)
	if err != nil {
		return nil, err
	}
	credits := make([]payoutCredit, 0, len(policies))
	for _, policy := range policies {
		if err := ls.db.ClosePolicy(policy.ID, txn); err != nil {
			return nil, err
		}
		amount := policy.Value / 2 * 3
		if err := ls.db.CreditPayout(policy.Passenger, amount, txn); err != nil {
			return nil, err
		}
		credits = append(credits, payoutCredit{
			passenger: policy.Passenger,
			amount:    amount,
		})
	}
	return credits, nil
}

// CloseInsurees forces every policy under a flight key to Closed with no
// payout. Used when the triggering event does not qualify for compensation
func (ls *LedgerState) CloseInsurees(
	caller string,
	flightKey string,
) error {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return err
	}
	if err := ls.requireRole(caller, RoleAuthorized, nil); err != nil {
		return err
	}
	var closed int
	err := ls.db.Transaction(func(txn *gorm.DB) error {
		var err error
		closed, err = ls.closeInsureesTxn(flightKey, txn)
		return err
	})
	if err != nil {
		ls.metrics.operation("close_insurees", err)
		return err
	}
	ls.metrics.operation("close_insurees", nil)
	ls.config.Logger.Info(
		"insurees closed without payout",
		"flight", flightKey,
		"policies", closed,
		"component", "ledger",
	)
	ls.publish(PolicyClosedEventType, PolicyResolutionEvent{
		FlightKey: flightKey,
		Policies:  closed,
	})
	return nil
}

// closeInsureesTxn forces every policy under a flight key to Closed inside
// an existing transaction
func (ls *LedgerState) closeInsureesTxn(
	flightKey string,
	txn *gorm.DB,
) (int, error) {
	policies, err := ls.db.GetPolicies(flightKey, txn)
	if err != nil {
		return 0, err
	}
	if err := ls.db.ClosePolicies(flightKey, txn); err != nil {
		return 0, err
	}
	return len(policies), nil
}
