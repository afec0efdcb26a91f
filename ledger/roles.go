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

package ledger

import "gorm.io/gorm"

// Role constants represent the caller tiers for boundary operations
type Role int

const (
	// RoleAny allows any caller
	RoleAny Role = iota
	// RoleAuthorized requires the caller to be on the whitelist (or to be
	// the authority)
	RoleAuthorized
	// RoleAuthority requires the privileged deploying identity
	RoleAuthority
)

// requireRole checks that a caller holds the required role. Returns
// ErrNotAuthorized otherwise
func (ls *LedgerState) requireRole(
	caller string,
	role Role,
	txn *gorm.DB,
) error {
	switch role {
	case RoleAny:
		return nil
	case RoleAuthority:
		if caller != ls.config.Authority {
			return ErrNotAuthorized
		}
		return nil
	case RoleAuthorized:
		if caller == ls.config.Authority {
			return nil
		}
		ok, err := ls.db.HasCaller(caller, txn)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAuthorized
		}
		return nil
	default:
		return ErrNotAuthorized
	}
}

// requireOperational checks the process-wide operational gate. Returns
// ErrNotOperational while the gate is closed
func (ls *LedgerState) requireOperational() error {
	if !ls.operational {
		return ErrNotOperational
	}
	return nil
}
