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
	"gorm.io/gorm"
)

// Pay withdraws a beneficiary's pending payout. The pending balance is
// zeroed before the transfer is requested, so a reentrant observer sees a
// zero balance during settlement. A failed transfer rolls the zeroing back.
// Returns the amount transferred, which is zero when nothing was pending
func (ls *LedgerState) Pay(
	caller string,
	beneficiary string,
) (uint64, error) {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return 0, err
	}
	if err := ls.requireRole(caller, RoleAuthorized, nil); err != nil {
		return 0, err
	}
	var amount uint64
	err := ls.db.Transaction(func(txn *gorm.DB) error {
		var err error
		amount, err = ls.db.ZeroPayout(beneficiary, txn)
		if err != nil {
			return err
		}
		if amount == 0 {
			return nil
		}
		return ls.config.Settler.Transfer(beneficiary, amount)
	})
	if err != nil {
		ls.metrics.operation("pay", err)
		return 0, err
	}
	ls.metrics.operation("pay", nil)
	if amount > 0 {
		ls.metrics.payoutsPaid.Add(float64(amount))
		ls.config.Logger.Info(
			"payout transferred",
			"beneficiary", beneficiary,
			"amount", amount,
			"component", "ledger",
		)
		ls.publish(PayoutPaidEventType, PayoutEvent{
			Beneficiary: beneficiary,
			Amount:      amount,
		})
	}
	return amount, nil
}
