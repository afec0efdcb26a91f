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

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// Server is the REST API server exposing the ledger boundary operations.
// Caller identity is taken from a request header: authenticating it is the
// job of the external access-control gateway in front of this service
type Server struct {
	config     ServerConfig
	logger     *slog.Logger
	ledger     Ledger
	httpServer *http.Server
	mu         sync.Mutex
}

type ServerConfig struct {
	ListenAddress string
}

// New creates a new API server instance
func New(
	cfg ServerConfig,
	ledger Ledger,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	logger = logger.With("component", "api")
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":3000"
	}
	return &Server{
		config: cfg,
		logger: logger,
		ledger: ledger,
	}
}

// Start starts the HTTP server in a background goroutine
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		return errors.New("server already started")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/operational", s.handleGetOperational)
	mux.HandleFunc("PUT /api/v1/operational", s.handleSetOperational)
	mux.HandleFunc("POST /api/v1/callers", s.handleAuthorizeCaller)
	mux.HandleFunc(
		"DELETE /api/v1/callers/{address}",
		s.handleDeauthorizeCaller,
	)
	mux.HandleFunc("POST /api/v1/airlines", s.handleRegisterAirline)
	mux.HandleFunc("GET /api/v1/airlines", s.handlePaidAirlines)
	mux.HandleFunc("GET /api/v1/airlines/{address}", s.handleGetAirline)
	mux.HandleFunc("POST /api/v1/airlines/{address}/votes", s.handleVote)
	mux.HandleFunc("POST /api/v1/airlines/{address}/fund", s.handleFund)
	mux.HandleFunc("POST /api/v1/flights", s.handleRegisterFlight)
	mux.HandleFunc("GET /api/v1/flights/{key}", s.handleGetFlight)
	mux.HandleFunc(
		"POST /api/v1/flights/{key}/status",
		s.handleFlightStatus,
	)
	mux.HandleFunc(
		"POST /api/v1/flights/{key}/credit",
		s.handleCreditInsurees,
	)
	mux.HandleFunc(
		"POST /api/v1/flights/{key}/close",
		s.handleCloseInsurees,
	)
	mux.HandleFunc("POST /api/v1/policies", s.handleBuy)
	mux.HandleFunc("GET /api/v1/policies/{key}", s.handleGetPolicies)
	mux.HandleFunc("POST /api/v1/payouts/{address}", s.handlePay)
	mux.HandleFunc("GET /api/v1/payouts/{address}", s.handleGetPayout)

	server := &http.Server{
		Addr:              s.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
	}
	s.httpServer = server
	s.mu.Unlock()

	// Start the server with deterministic error detection
	if err := s.startServer(server); err != nil {
		s.mu.Lock()
		s.httpServer = nil
		s.mu.Unlock()
		return err
	}

	s.logger.Info(
		"API listener started on " + s.config.ListenAddress,
	)

	// Monitor context for cancellation
	go func() {
		<-ctx.Done()
		s.mu.Lock()
		srv := s.httpServer
		s.httpServer = nil
		s.mu.Unlock()

		if srv != nil {
			s.logger.Debug(
				"context cancelled, shutting down API server",
			)
			//nolint:contextcheck
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				30*time.Second,
			)
			defer cancel()
			//nolint:contextcheck
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error(
					"failed to shutdown API server on context cancellation",
					"error", err,
				)
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.httpServer = nil
	s.mu.Unlock()

	if srv != nil {
		s.logger.Debug("shutting down API server")
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf(
				"failed to shutdown API server: %w",
				err,
			)
		}
	}
	return nil
}

// startServer starts the HTTP server with deterministic error detection.
// It binds the listening socket first so port conflicts are detected
// immediately, then serves in a background goroutine
func (s *Server) startServer(server *http.Server) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf(
			"failed to listen for API server: %w",
			err,
		)
	}
	go func() {
		if err := server.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(
				"API server error",
				"error", err,
			)
		}
	}()
	return nil
}
