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
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/mariogutval/flightsurety/database"
	"github.com/mariogutval/flightsurety/event"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultFundingThreshold is the accumulated funding amount at which a
	// registered airline becomes a full (voting) member
	DefaultFundingThreshold = 10

	// DefaultPremiumCap is the maximum value accepted for a single
	// insurance policy purchase
	DefaultPremiumCap = 1

	// bootstrapAirlineLimit is the admitted-airline count up to which new
	// airlines are admitted without a vote. Below a quorum-meaningful size
	// voting is not meaningful
	bootstrapAirlineLimit = 4
)

type LedgerStateConfig struct {
	Logger           *slog.Logger
	Database         *database.Database
	EventBus         *event.EventBus
	PromRegistry     prometheus.Registerer
	Settler          Settler
	Authority        string
	FundingThreshold uint64
	PremiumCap       uint64
}

// LedgerState is the governance and escrow state machine. Every mutating
// operation runs under a single lock, so read-modify-write sequences are
// atomic with respect to each other, and commits through a single metadata
// store transaction, so batch operations are all-or-nothing.
type LedgerState struct {
	sync.Mutex
	config      LedgerStateConfig
	db          *database.Database
	metrics     stateMetrics
	operational bool
}

func NewLedgerState(cfg LedgerStateConfig) (*LedgerState, error) {
	if cfg.Logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Database == nil {
		return nil, errors.New("no database provided")
	}
	if cfg.Authority == "" {
		return nil, errors.New("no authority identity provided")
	}
	if cfg.FundingThreshold == 0 {
		cfg.FundingThreshold = DefaultFundingThreshold
	}
	if cfg.PremiumCap == 0 {
		cfg.PremiumCap = DefaultPremiumCap
	}
	if cfg.Settler == nil {
		cfg.Settler = NewLogSettler(cfg.Logger)
	}
	ls := &LedgerState{
		config: cfg,
		db:     cfg.Database,
	}
	// Init metrics
	ls.metrics.init(cfg.PromRegistry)
	// Load persisted operational flag and authority
	nodeState, err := ls.db.GetNodeState(cfg.Authority, nil)
	if err != nil {
		return nil, err
	}
	ls.operational = nodeState.Operational
	ls.metrics.setOperational(ls.operational)
	ls.config.Logger.Info(
		"loaded ledger state",
		"operational", ls.operational,
		"authority", nodeState.Authority,
		"component", "ledger",
	)
	return ls, nil
}

// Authority returns the privileged identity that owns the operational gate
func (ls *LedgerState) Authority() string {
	return ls.config.Authority
}

// publish emits an event on the bus, if one is configured
func (ls *LedgerState) publish(eventType event.EventType, data any) {
	if ls.config.EventBus == nil {
		return
	}
	ls.config.EventBus.Publish(
		eventType,
		event.NewEvent(eventType, data),
	)
}
