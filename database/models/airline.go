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

// AirlineState constants represent the membership state of an airline.
// Transitions only move forward: Applied -> Registered -> Paid
const (
	AirlineStateApplied    = 0 // not yet admitted, awaiting votes
	AirlineStateRegistered = 1 // admitted but not funded, no voting rights
	AirlineStatePaid       = 2 // funded full member, can vote
)

// AirlineStateString returns the display name for an airline state
func AirlineStateString(state uint8) string {
	switch state {
	case AirlineStateApplied:
		return "applied"
	case AirlineStateRegistered:
		return "registered"
	case AirlineStatePaid:
		return "paid"
	default:
		return "unknown"
	}
}

// Airline represents one governed participant. Rows are created implicitly
// on first reference and never deleted.
type Airline struct {
	ID      uint   `gorm:"primarykey"`
	Address string `gorm:"uniqueIndex;size:64;not null"`
	Name    string `gorm:"size:128"`
	State   uint8  `gorm:"index;not null"` // 0=Applied, 1=Registered, 2=Paid
	// Funding is the accumulated contribution amount. It only grows
	Funding uint64 `gorm:"not null;default:0"`
}

// TableName returns the table name
func (Airline) TableName() string {
	return "airline"
}

// Approval represents a single admission endorsement for an airline. Rows
// are ordered by ID and are never deduplicated or removed, so the approval
// sequence for an airline only grows.
type Approval struct {
	ID        uint   `gorm:"primarykey"`
	AirlineID uint   `gorm:"index:idx_approval_airline;not null"`
	Voter     string `gorm:"size:64;not null"`
}

// TableName returns the table name
func (Approval) TableName() string {
	return "approval"
}
