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
	"testing"
	"time"

	"github.com/mariogutval/flightsurety/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(
		t,
		uint64(ledger.DefaultFundingThreshold),
		cfg.fundingThreshold,
	)
	assert.Equal(
		t,
		uint64(ledger.DefaultPremiumCap),
		cfg.premiumCap,
	)
	assert.Equal(t, DefaultShutdownTimeout, cfg.shutdownTimeout)
	assert.Empty(t, cfg.dataDir)
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithAuthority("authority-1"),
		WithDataDir("/tmp/surety"),
		WithListenAddress("127.0.0.1:3000"),
		WithFundingThreshold(20),
		WithPremiumCap(2),
		WithShutdownTimeout(5*time.Second),
	)

	assert.Equal(t, "authority-1", cfg.authority)
	assert.Equal(t, "/tmp/surety", cfg.dataDir)
	assert.Equal(t, "127.0.0.1:3000", cfg.listenAddress)
	assert.Equal(t, uint64(20), cfg.fundingThreshold)
	assert.Equal(t, uint64(2), cfg.premiumCap)
	assert.Equal(t, 5*time.Second, cfg.shutdownTimeout)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		opts []ConfigOptionFunc
		err  string
	}{
		{
			name: "missing authority",
			opts: []ConfigOptionFunc{
				WithListenAddress(":3000"),
			},
			err: "no authority identity configured",
		},
		{
			name: "missing listen address",
			opts: []ConfigOptionFunc{
				WithAuthority("authority-1"),
			},
			err: "no listen address configured",
		},
		{
			name: "zero funding threshold",
			opts: []ConfigOptionFunc{
				WithAuthority("authority-1"),
				WithListenAddress(":3000"),
				WithFundingThreshold(0),
			},
			err: "funding threshold must be greater than zero",
		},
		{
			name: "valid",
			opts: []ConfigOptionFunc{
				WithAuthority("authority-1"),
				WithListenAddress(":3000"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(NewConfig(tt.opts...))
			if tt.err == "" {
				require.NoError(t, err)
				require.NotNil(t, n)
				require.NoError(t, n.Stop())
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.err)
			}
		})
	}
}
