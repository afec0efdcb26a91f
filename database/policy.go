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

// AddPolicy appends a new policy to the sequence for a flight key
func (d *Database) AddPolicy(
	policy *models.Policy,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	if result := db.Create(policy); result.Error != nil {
		return fmt.Errorf("failed to add policy: %w", result.Error)
	}
	return nil
}

// GetPolicies returns the full policy sequence for a flight key in purchase
// order
func (d *Database) GetPolicies(
	flightKey string,
	txn *gorm.DB,
) ([]models.Policy, error) {
	if txn == nil {
		txn = d.DB()
	}
	var ret []models.Policy
	result := txn.Where("flight_key = ?", flightKey).
		Order("id").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// GetActivePolicies returns the Active policies for a flight key in
// purchase order
func (d *Database) GetActivePolicies(
	flightKey string,
	txn *gorm.DB,
) ([]models.Policy, error) {
	if txn == nil {
		txn = d.DB()
	}
	var ret []models.Policy
	result := txn.Where(
		"flight_key = ? AND status = ?",
		flightKey,
		models.PolicyStatusActive,
	).
		Order("id").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// ClosePolicy marks a single policy as Closed
func (d *Database) ClosePolicy(
	policyID uint,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Model(&models.Policy{}).
		Where("id = ?", policyID).
		Update("status", models.PolicyStatusClosed)
	if result.Error != nil {
		return fmt.Errorf("failed to close policy: %w", result.Error)
	}
	return nil
}

// ClosePolicies marks every policy under a flight key as Closed
func (d *Database) ClosePolicies(
	flightKey string,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Model(&models.Policy{}).
		Where("flight_key = ?", flightKey).
		Update("status", models.PolicyStatusClosed)
	if result.Error != nil {
		return fmt.Errorf("failed to close policies: %w", result.Error)
	}
	return nil
}
