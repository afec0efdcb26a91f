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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/mariogutval/flightsurety/ledger"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "flightsurety.config"

const DefaultShutdownTimeout = "30s"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type Config struct {
	Authority        string `yaml:"authority"                          split_words:"true"`
	BindAddr         string `yaml:"bindAddr"                           split_words:"true"`
	DatabasePath     string `yaml:"databasePath"                       split_words:"true"`
	ShutdownTimeout  string `yaml:"shutdownTimeout"                    split_words:"true"`
	FundingThreshold uint64 `yaml:"fundingThreshold"                   split_words:"true"`
	PremiumCap       uint64 `yaml:"premiumCap"                         split_words:"true"`
	ApiPort          uint   `yaml:"apiPort"          envconfig:"port"`
	MetricsPort      uint   `yaml:"metricsPort"                        split_words:"true"`
	Tracing          bool   `yaml:"tracing"`
	TracingStdout    bool   `yaml:"tracingStdout"                      split_words:"true"`
}

var globalConfig = &Config{
	BindAddr:         "0.0.0.0",
	DatabasePath:     ".flightsurety",
	ApiPort:          3000,
	MetricsPort:      12798,
	ShutdownTimeout:  DefaultShutdownTimeout,
	FundingThreshold: ledger.DefaultFundingThreshold,
	PremiumCap:       ledger.DefaultPremiumCap,
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.flightsurety/flightsurety.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(
				homeDir,
				".flightsurety",
				"flightsurety.yaml",
			)
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try /etc/flightsurety/flightsurety.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/flightsurety/flightsurety.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		err = yaml.Unmarshal(buf, globalConfig)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	err := envconfig.Process("flightsurety", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}

	if globalConfig.Authority == "" {
		return nil, errors.New(
			"no authority identity configured (set 'authority' in the " +
				"config file or FLIGHTSURETY_AUTHORITY in the environment)",
		)
	}

	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
