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

// Caller represents a whitelisted external caller allowed to invoke
// state-changing operations routed through the access-control gateway
type Caller struct {
	ID      uint   `gorm:"primarykey"`
	Address string `gorm:"uniqueIndex;size:64;not null"`
}

// TableName returns the table name
func (Caller) TableName() string {
	return "caller"
}
