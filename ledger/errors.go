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

import "errors"

// Precondition failures. All are detected before any mutation, surfaced
// synchronously to the caller, and leave state unchanged
var (
	// ErrNotOperational is returned by every mutating operation while the
	// operational gate is closed
	ErrNotOperational = errors.New("contract is not operational")

	// ErrNotAuthorized is returned when the caller lacks the required role
	ErrNotAuthorized = errors.New("caller is not authorized")

	// ErrNotEligibleVoter is returned when the voter is not a funded member
	ErrNotEligibleVoter = errors.New("voter is not a funded member")

	// ErrInvalidAmount is returned when a purchase value exceeds the
	// per-policy premium cap
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAlreadyRegistered is returned when registering an airline that has
	// already been admitted
	ErrAlreadyRegistered = errors.New("airline is already registered")

	// ErrFlightNotFound is returned when no flight exists for a key
	ErrFlightNotFound = errors.New("flight not found")
)
