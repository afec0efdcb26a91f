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

package flightsurety

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mariogutval/flightsurety/api"
	"github.com/mariogutval/flightsurety/database"
	"github.com/mariogutval/flightsurety/event"
	"github.com/mariogutval/flightsurety/ledger"
)

type Node struct {
	eventBus      *event.EventBus
	db            *database.Database
	ledger        *ledger.LedgerState
	api           *api.Server
	shutdownFuncs []func(context.Context) error
	config        Config
	done          chan struct{}
	shutdownOnce  sync.Once
}

func New(cfg Config) (*Node, error) {
	if cfg.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		cfg.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	n := &Node{
		config:   cfg,
		eventBus: event.NewEventBus(cfg.promRegistry, cfg.logger),
		done:     make(chan struct{}),
	}
	if err := n.configValidate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return n, nil
}

func (n *Node) Run(ctx context.Context) error {
	// Configure tracing
	if n.config.tracing {
		if err := n.setupTracing(); err != nil {
			return err
		}
	}
	// Load database
	db, err := database.New(&database.Config{
		DataDir: n.config.dataDir,
		Logger:  n.config.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	n.db = db
	// Default to recording settlements in the operation journal
	settler := n.config.settler
	if settler == nil {
		settler = ledger.NewJournalSettler(db.Journal(), n.config.logger)
	}
	// Load ledger state
	state, err := ledger.NewLedgerState(
		ledger.LedgerStateConfig{
			Database:         n.db,
			EventBus:         n.eventBus,
			Logger:           n.config.logger,
			PromRegistry:     n.config.promRegistry,
			Authority:        n.config.authority,
			FundingThreshold: n.config.fundingThreshold,
			PremiumCap:       n.config.premiumCap,
			Settler:          settler,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to load ledger state: %w", err)
	}
	n.ledger = state
	// Journal every committed mutation
	n.subscribeJournal()
	// Start REST API listener
	n.api = api.New(
		api.ServerConfig{
			ListenAddress: n.config.listenAddress,
		},
		n.ledger,
		n.config.logger,
	)
	if err := n.api.Start(ctx); err != nil {
		return fmt.Errorf("failed to start API listener: %w", err)
	}
	// Wait for shutdown
	select {
	case <-ctx.Done():
		return n.Stop()
	case <-n.done:
		return nil
	}
}

// subscribeJournal appends a journal record for every event published on the
// bus, giving an append-only audit trail of committed mutations
func (n *Node) subscribeJournal() {
	for _, evtType := range ledger.EventTypes() {
		n.eventBus.SubscribeFunc(
			evtType,
			func(evt event.Event) {
				if err := n.db.Journal().AppendEvent(evt); err != nil {
					n.config.logger.Warn(
						"failed to journal event",
						"type", evt.Type,
						"error", err,
						"component", "node",
					)
				}
			},
		)
	}
}

// Ledger returns the underlying ledger state
func (n *Node) Ledger() *ledger.LedgerState {
	return n.ledger
}

// Database returns the underlying database
func (n *Node) Database() *database.Database {
	return n.db
}

// Stop shuts down the node gracefully
func (n *Node) Stop() error {
	var err error
	n.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(
			context.Background(),
			n.config.shutdownTimeout,
		)
		defer cancel()
		// Run any registered shutdown functions (tracing, etc)
		for _, fn := range n.shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		// Stop API listener
		if n.api != nil {
			err = errors.Join(err, n.api.Stop(ctx))
		}
		// Stop event bus workers
		if n.eventBus != nil {
			n.eventBus.Stop()
		}
		// Close database
		if n.db != nil {
			err = errors.Join(err, n.db.Close())
		}
		close(n.done)
	})
	return err
}
