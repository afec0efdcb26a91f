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

import (
	"log/slog"

	"github.com/mariogutval/flightsurety/database/journal"
)

// Settler is the external settlement collaborator that moves a payout
// amount to a beneficiary. The ledger clears the pending balance before
// requesting the transfer and rolls the clearing back if the transfer
// fails
type Settler interface {
	Transfer(beneficiary string, amount uint64) error
}

// LogSettler records transfers in the log only. Used when no settlement
// backend is configured
type LogSettler struct {
	logger *slog.Logger
}

func NewLogSettler(logger *slog.Logger) *LogSettler {
	return &LogSettler{logger: logger}
}

func (s *LogSettler) Transfer(beneficiary string, amount uint64) error {
	s.logger.Info(
		"settlement transfer requested",
		"beneficiary", beneficiary,
		"amount", amount,
		"component", "settler",
	)
	return nil
}

// JournalSettler records transfers as journal entries, giving a durable
// settlement instruction stream for an external payment processor to
// consume
type JournalSettler struct {
	journal *journal.Journal
	logger  *slog.Logger
}

func NewJournalSettler(
	j *journal.Journal,
	logger *slog.Logger,
) *JournalSettler {
	return &JournalSettler{
		journal: j,
		logger:  logger,
	}
}

func (s *JournalSettler) Transfer(beneficiary string, amount uint64) error {
	err := s.journal.Append(
		"settlement.transfer",
		map[string]any{
			"beneficiary": beneficiary,
			"amount":      amount,
		},
	)
	if err != nil {
		return err
	}
	s.logger.Info(
		"settlement transfer journaled",
		"beneficiary", beneficiary,
		"amount", amount,
		"component", "settler",
	)
	return nil
}
