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

// IsOperational returns the current state of the operational gate
func (ls *LedgerState) IsOperational() bool {
	ls.Lock()
	defer ls.Unlock()
	return ls.operational
}

// SetOperatingStatus sets the operational gate. This is the only mutating
// operation permitted while the gate is closed, so the system can always be
// re-enabled. Authority only
func (ls *LedgerState) SetOperatingStatus(
	caller string,
	operational bool,
) error {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireRole(caller, RoleAuthority, nil); err != nil {
		return err
	}
	if ls.operational == operational {
		return nil
	}
	if err := ls.db.SetOperational(operational, nil); err != nil {
		return err
	}
	ls.operational = operational
	ls.metrics.setOperational(operational)
	ls.config.Logger.Info(
		"operational status changed",
		"operational", operational,
		"component", "ledger",
	)
	ls.publish(
		OperationalEventType,
		OperationalEvent{Operational: operational},
	)
	return nil
}

// AuthorizeCaller adds an address to the caller whitelist. Authority only,
// gate must be open
func (ls *LedgerState) AuthorizeCaller(caller, address string) error {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return err
	}
	if err := ls.requireRole(caller, RoleAuthority, nil); err != nil {
		return err
	}
	return ls.db.AddCaller(address, nil)
}

// DeauthorizeCaller removes an address from the caller whitelist. Authority
// only, gate must be open
func (ls *LedgerState) DeauthorizeCaller(caller, address string) error {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return err
	}
	if err := ls.requireRole(caller, RoleAuthority, nil); err != nil {
		return err
	}
	return ls.db.RemoveCaller(address, nil)
}
