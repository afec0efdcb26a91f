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

// GetAirline gets an airline by address. Returns nil without error when no
// airline exists for the address
func (d *Database) GetAirline(
	address string,
	txn *gorm.DB,
) (*models.Airline, error) {
	ret := &models.Airline{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("address = ?", address).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetOrCreateAirline gets the airline for an address, creating it with
// zero-value defaults on first reference
func (d *Database) GetOrCreateAirline(
	address string,
	txn *gorm.DB,
) (*models.Airline, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	airline := &models.Airline{}
	result := db.FirstOrCreate(airline, models.Airline{Address: address})
	if result.Error != nil {
		return nil, fmt.Errorf(
			"failed to find or create airline: %w",
			result.Error,
		)
	}
	return airline, nil
}

// SaveAirline persists changes to an airline row
func (d *Database) SaveAirline(
	airline *models.Airline,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	if result := db.Save(airline); result.Error != nil {
		return fmt.Errorf("failed to save airline: %w", result.Error)
	}
	return nil
}

// CountAdmittedAirlines returns the number of airlines that have been
// admitted (Registered or Paid)
func (d *Database) CountAdmittedAirlines(txn *gorm.DB) (int64, error) {
	if txn == nil {
		txn = d.DB()
	}
	var count int64
	result := txn.Model(&models.Airline{}).
		Where(
			"state IN ?",
			[]uint8{models.AirlineStateRegistered, models.AirlineStatePaid},
		).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// PaidAirlines returns the roster of funded (Paid) airlines
func (d *Database) PaidAirlines(txn *gorm.DB) ([]models.Airline, error) {
	if txn == nil {
		txn = d.DB()
	}
	var ret []models.Airline
	result := txn.Where("state = ?", models.AirlineStatePaid).
		Order("id").
		Find(&ret)
	if result.Error != nil {
		return nil, result.Error
	}
	return ret, nil
}

// AddApproval appends a voter to an airline's approval sequence. Repeated
// voters are accepted, the sequence is not deduplicated
func (d *Database) AddApproval(
	airlineID uint,
	voter string,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	approval := &models.Approval{
		AirlineID: airlineID,
		Voter:     voter,
	}
	if result := db.Create(approval); result.Error != nil {
		return fmt.Errorf("failed to add approval: %w", result.Error)
	}
	return nil
}

// CountApprovals returns the length of an airline's approval sequence
func (d *Database) CountApprovals(
	airlineID uint,
	txn *gorm.DB,
) (int64, error) {
	if txn == nil {
		txn = d.DB()
	}
	var count int64
	result := txn.Model(&models.Approval{}).
		Where("airline_id = ?", airlineID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetApprovals returns an airline's approval sequence in vote order
func (d *Database) GetApprovals(
	airlineID uint,
	txn *gorm.DB,
) ([]string, error) {
	if txn == nil {
		txn = d.DB()
	}
	var approvals []models.Approval
	result := txn.Where("airline_id = ?", airlineID).
		Order("id").
		Find(&approvals)
	if result.Error != nil {
		return nil, result.Error
	}
	ret := make([]string, 0, len(approvals))
	for _, approval := range approvals {
		ret = append(ret, approval.Voter)
	}
	return ret, nil
}
