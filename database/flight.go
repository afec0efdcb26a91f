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

// GetFlight gets a flight by its key. Returns nil without error when no
// flight exists for the key
func (d *Database) GetFlight(
	key string,
	txn *gorm.DB,
) (*models.Flight, error) {
	ret := &models.Flight{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("key = ?", key).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// GetOrCreateFlight gets the flight for a key, creating it on first
// reference
func (d *Database) GetOrCreateFlight(
	flight *models.Flight,
	txn *gorm.DB,
) (*models.Flight, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	ret := &models.Flight{}
	result := db.Where(models.Flight{Key: flight.Key}).
		Attrs(models.Flight{
			Airline:   flight.Airline,
			Number:    flight.Number,
			Departure: flight.Departure,
		}).
		FirstOrCreate(ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"failed to find or create flight: %w",
			result.Error,
		)
	}
	return ret, nil
}

// SetFlightStatus records the resolved status for a flight
func (d *Database) SetFlightStatus(
	key string,
	status uint8,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Model(&models.Flight{}).
		Where("key = ?", key).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to set flight status: %w", result.Error)
	}
	return nil
}
