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

// FlightStatus constants represent the resolved status of a flight
const (
	FlightStatusUnknown       = 0
	FlightStatusOnTime        = 10
	FlightStatusLateAirline   = 20
	FlightStatusLateWeather   = 30
	FlightStatusLateTechnical = 40
	FlightStatusLateOther     = 50
)

// FlightStatusString returns a human-readable name for a flight status
func FlightStatusString(status uint8) string {
	switch status {
	case FlightStatusUnknown:
		return "Unknown"
	case FlightStatusOnTime:
		return "OnTime"
	case FlightStatusLateAirline:
		return "LateAirline"
	case FlightStatusLateWeather:
		return "LateWeather"
	case FlightStatusLateTechnical:
		return "LateTechnical"
	case FlightStatusLateOther:
		return "LateOther"
	default:
		return "Invalid"
	}
}

// Flight represents a registered flight. The Key is the deterministic hash
// of (airline, number, departure) used to group insurance policies.
type Flight struct {
	ID        uint   `gorm:"primarykey"`
	Key       string `gorm:"uniqueIndex;size:64;not null"`
	Airline   string `gorm:"index;size:64;not null"`
	Number    string `gorm:"size:16;not null"`
	Departure int64  `gorm:"not null"` // unix seconds
	Status    uint8  `gorm:"not null;default:0"`
}

// TableName returns the table name
func (Flight) TableName() string {
	return "flight"
}
