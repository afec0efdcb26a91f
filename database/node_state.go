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

// GetNodeState gets the singleton node state row, creating it on first use
// with the gate open and the provided authority identity
func (d *Database) GetNodeState(
	authority string,
	txn *gorm.DB,
) (*models.NodeState, error) {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	ret := &models.NodeState{}
	result := db.Where(models.NodeState{ID: 1}).
		Attrs(models.NodeState{
			Operational: true,
			Authority:   authority,
		}).
		FirstOrCreate(ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"failed to find or create node state: %w",
			result.Error,
		)
	}
	return ret, nil
}

// SetOperational persists the operational flag
func (d *Database) SetOperational(
	operational bool,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Model(&models.NodeState{}).
		Where("id = ?", 1).
		Update("operational", operational)
	if result.Error != nil {
		return fmt.Errorf(
			"failed to set operational flag: %w",
			result.Error,
		)
	}
	return nil
}
