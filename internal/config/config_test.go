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

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mariogutval/flightsurety/ledger"
)

func resetGlobalConfig() {
	globalConfig = &Config{
		BindAddr:         "0.0.0.0",
		DatabasePath:     ".flightsurety",
		ApiPort:          3000,
		MetricsPort:      12798,
		ShutdownTimeout:  DefaultShutdownTimeout,
		FundingThreshold: ledger.DefaultFundingThreshold,
		PremiumCap:       ledger.DefaultPremiumCap,
	}
}

func TestLoad_CompareFullStruct(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
authority: "authority-1"
bindAddr: "127.0.0.1"
databasePath: ".flightsurety-test"
shutdownTimeout: "10s"
fundingThreshold: 20
premiumCap: 2
apiPort: 8080
metricsPort: 8088
tracing: true
tracingStdout: true
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-flightsurety.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	defer os.Remove(tmpFile)

	expected := &Config{
		Authority:        "authority-1",
		BindAddr:         "127.0.0.1",
		DatabasePath:     ".flightsurety-test",
		ShutdownTimeout:  "10s",
		FundingThreshold: 20,
		PremiumCap:       2,
		ApiPort:          8080,
		MetricsPort:      8088,
		Tracing:          true,
		TracingStdout:    true,
	}

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !reflect.DeepEqual(cfg, expected) {
		t.Fatalf(
			"config mismatch\ngot: %+v\nwant: %+v",
			cfg,
			expected,
		)
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
authority: "authority-1"
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-flightsurety.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.BindAddr != "0.0.0.0" {
		t.Fatalf("unexpected bind addr: %s", cfg.BindAddr)
	}
	if cfg.ApiPort != 3000 {
		t.Fatalf("unexpected api port: %d", cfg.ApiPort)
	}
	if cfg.MetricsPort != 12798 {
		t.Fatalf("unexpected metrics port: %d", cfg.MetricsPort)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if cfg.FundingThreshold != ledger.DefaultFundingThreshold {
		t.Fatalf(
			"unexpected funding threshold: %d",
			cfg.FundingThreshold,
		)
	}
	if cfg.PremiumCap != ledger.DefaultPremiumCap {
		t.Fatalf("unexpected premium cap: %d", cfg.PremiumCap)
	}
}

func TestLoad_NoAuthority(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
bindAddr: "127.0.0.1"
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-flightsurety.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err = LoadConfig(tmpFile)
	if err == nil {
		t.Fatal("expected error for missing authority")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
authority: "authority-1"
bindAddr: "127.0.0.1"
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-flightsurety.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("FLIGHTSURETY_BIND_ADDR", "192.168.0.1")
	t.Setenv("FLIGHTSURETY_FUNDING_THRESHOLD", "25")

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.BindAddr != "192.168.0.1" {
		t.Fatalf("env override not applied: %s", cfg.BindAddr)
	}
	if cfg.FundingThreshold != 25 {
		t.Fatalf(
			"env override not applied: %d",
			cfg.FundingThreshold,
		)
	}
}
