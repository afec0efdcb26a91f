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
	"errors"
	"log/slog"
	"time"

	"github.com/mariogutval/flightsurety/ledger"
	"github.com/prometheus/client_golang/prometheus"
)

const DefaultShutdownTimeout = 30 * time.Second

type Config struct {
	promRegistry     prometheus.Registerer
	logger           *slog.Logger
	settler          ledger.Settler
	dataDir          string
	authority        string
	listenAddress    string
	fundingThreshold uint64
	premiumCap       uint64
	tracing          bool
	tracingStdout    bool
	shutdownTimeout  time.Duration
}

func (n *Node) configValidate() error {
	if n.config.authority == "" {
		return errors.New("no authority identity configured")
	}
	if n.config.listenAddress == "" {
		return errors.New("no listen address configured")
	}
	if n.config.fundingThreshold == 0 {
		return errors.New("funding threshold must be greater than zero")
	}
	if n.config.premiumCap == 0 {
		return errors.New("premium cap must be greater than zero")
	}
	return nil
}

// NewConfig creates a new node config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		fundingThreshold: ledger.DefaultFundingThreshold,
		premiumCap:       ledger.DefaultPremiumCap,
		shutdownTimeout:  DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

type ConfigOptionFunc func(*Config)

// WithAuthority specifies the privileged identity that owns the operational
// gate and the caller whitelist
func WithAuthority(authority string) ConfigOptionFunc {
	return func(c *Config) {
		c.authority = authority
	}
}

// WithDataDir specifies the persistent data directory. An empty value keeps
// all state in memory
func WithDataDir(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithListenAddress specifies the REST API listen address
func WithListenAddress(address string) ConfigOptionFunc {
	return func(c *Config) {
		c.listenAddress = address
	}
}

// WithLogger specifies the logger to use. This defaults to discarding log output
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithFundingThreshold specifies the accumulated funding amount at which a
// registered airline becomes a full (voting) member
func WithFundingThreshold(threshold uint64) ConfigOptionFunc {
	return func(c *Config) {
		c.fundingThreshold = threshold
	}
}

// WithPremiumCap specifies the maximum value accepted for a single insurance
// policy purchase
func WithPremiumCap(premiumCap uint64) ConfigOptionFunc {
	return func(c *Config) {
		c.premiumCap = premiumCap
	}
}

// WithSettler specifies the settlement collaborator used to transfer payout
// amounts to beneficiaries
func WithSettler(settler ledger.Settler) ConfigOptionFunc {
	return func(c *Config) {
		c.settler = settler
	}
}

// WithPrometheusRegistry specifies a prometheus.Registerer instance to add metrics to
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithTracing enables tracing. By default, spans are submitted to a HTTP(s) endpoint using OTLP. This can be configured
// using the OTEL_EXPORTER_OTLP_* env vars documented in the README for [go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp]
func WithTracing(tracing bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracing = tracing
	}
}

// WithTracingStdout enables tracing output to stdout. This also requires tracing to enabled separately. This is mostly useful for debugging
func WithTracingStdout(stdout bool) ConfigOptionFunc {
	return func(c *Config) {
		c.tracingStdout = stdout
	}
}

// WithShutdownTimeout specifies the timeout for graceful shutdown. The default is 30 seconds
func WithShutdownTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.shutdownTimeout = timeout
	}
}
