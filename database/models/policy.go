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

package models

// PolicyStatus constants represent the lifecycle status of a policy. The
// transition is one-way: a Closed policy is never reopened
const (
	PolicyStatusActive = 0
	PolicyStatusClosed = 1
)

// Policy represents one passenger's at-risk contribution for a flight,
// awaiting resolution. Rows are appended per flight key and never removed.
type Policy struct {
	ID        uint   `gorm:"primarykey"`
	FlightKey string `gorm:"index:idx_policy_flight;size:64;not null"`
	Passenger string `gorm:"index;size:64;not null"`
	Value     uint64 `gorm:"not null"`
	Status    uint8  `gorm:"not null;default:0"` // 0=Active, 1=Closed
}

// TableName returns the table name
func (Policy) TableName() string {
	return "policy"
}
