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

// NodeState is a singleton row holding the process-wide operational flag
// and the authority identity that owns it
type NodeState struct {
	ID          uint   `gorm:"primarykey"`
	Operational bool   `gorm:"not null;default:true"`
	Authority   string `gorm:"size:64;not null"`
}

// TableName returns the table name
func (NodeState) TableName() string {
	return "node_state"
}
