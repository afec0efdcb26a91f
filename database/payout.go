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

package database

import (
	"errors"
	"fmt"

	"github.com/mariogutval/flightsurety/database/models"
	"gorm.io/gorm"
)

// GetPayout gets the pending payout for a beneficiary. Returns nil without
// error when the beneficiary has never been credited
func (d *Database) GetPayout(
	beneficiary string,
	txn *gorm.DB,
) (*models.Payout, error) {
	ret := &models.Payout{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("beneficiary = ?", beneficiary).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// CreditPayout increases a beneficiary's pending payout, creating the row
// at zero on first reference. The new running total is persisted
func (d *Database) CreditPayout(
	beneficiary string,
	amount uint64,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	payout := &models.Payout{}
	result := db.FirstOrCreate(payout, models.Payout{Beneficiary: beneficiary})
	if result.Error != nil {
		return fmt.Errorf(
			"failed to find or create payout: %w",
			result.Error,
		)
	}
	newTotal := payout.Amount + amount
	if err := db.Model(payout).Update("amount", newTotal).Error; err != nil {
		return fmt.Errorf("failed to credit payout: %w", err)
	}
	return nil
}

// ZeroPayout atomically reads and zeroes a beneficiary's pending payout,
// returning the amount that was pending
func (d *Database) ZeroPayout(
	beneficiary string,
	txn *gorm.DB,
) (uint64, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	payout, err := d.GetPayout(beneficiary, db)
	if err != nil {
		return 0, err
	}
	if payout == nil || payout.Amount == 0 {
		return 0, nil
	}
	amount := payout.Amount
	if err := db.Model(payout).Update("amount", uint64(0)).Error; err != nil {
		return 0, fmt.Errorf("failed to zero payout: %w", err)
	}
	return amount, nil
}
