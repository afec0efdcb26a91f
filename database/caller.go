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
	"fmt"

	"github.com/mariogutval/flightsurety/database/models"
	"gorm.io/gorm"
)

// AddCaller adds an address to the authorized caller whitelist, idempotently
func (d *Database) AddCaller(address string, txn *gorm.DB) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	caller := &models.Caller{}
	result := db.FirstOrCreate(caller, models.Caller{Address: address})
	if result.Error != nil {
		return fmt.Errorf("failed to add caller: %w", result.Error)
	}
	return nil
}

// RemoveCaller removes an address from the authorized caller whitelist
func (d *Database) RemoveCaller(address string, txn *gorm.DB) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Where("address = ?", address).Delete(&models.Caller{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove caller: %w", result.Error)
	}
	return nil
}

// HasCaller returns whether an address is on the authorized caller whitelist
func (d *Database) HasCaller(address string, txn *gorm.DB) (bool, error) {
	if txn == nil {
		txn = d.DB()
	}
	var count int64
	result := txn.Model(&models.Caller{}).
		Where("address = ?", address).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
