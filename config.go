// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package bridge

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/sassoftware/xtract-bridge/logger"
)

type Config struct {
	// InitialInterval is the delay before the second readiness probe.
	// The first probe always happens before any suspension.
	InitialInterval time.Duration `validate:"min=100000"`
	// MaxInterval caps the geometric backoff growth.
	MaxInterval time.Duration `validate:"required,gtefield=InitialInterval"`
	// Timeout bounds every await driven by this Awaiter. Zero means no
	// awaiter-level deadline; context deadlines still apply.
	Timeout time.Duration `validate:"min=0"`
	// MaxConcurrentAwaits bounds how many bridges poll at once.
	// Zero means unlimited.
	MaxConcurrentAwaits int `validate:"min=0,max=1024"`
	DebugOn             bool
	Logger              logger.LogFunc
}

func NewDefaultConfig() *Config {
	return &Config{
		InitialInterval:     1 * time.Millisecond,
		MaxInterval:         50 * time.Millisecond,
		Timeout:             0,
		MaxConcurrentAwaits: 0,
		DebugOn:             false,
	}
}

func (cfg *Config) Validate() error {
	logger.Debug("Validating Config Object")
	validate := validator.New()
	return validate.Struct(cfg)
}

// fileConfig is the YAML shape of a Config. Durations are strings in
// time.ParseDuration syntax ("1ms", "50ms").
type fileConfig struct {
	InitialInterval     string `yaml:"initial_interval"`
	MaxInterval         string `yaml:"max_interval"`
	Timeout             string `yaml:"timeout"`
	MaxConcurrentAwaits *int   `yaml:"max_concurrent_awaits"`
	Debug               *bool  `yaml:"debug"`
}

// LoadConfig reads a YAML config file and applies it over the defaults.
// Absent fields keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newValidationError(fmt.Sprintf("read config file %s", path), err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, newValidationError(fmt.Sprintf("parse config file %s", path), err)
	}

	cfg := NewDefaultConfig()
	if fc.InitialInterval != "" {
		if cfg.InitialInterval, err = time.ParseDuration(fc.InitialInterval); err != nil {
			return nil, newValidationError("parse initial_interval", err)
		}
	}
	if fc.MaxInterval != "" {
		if cfg.MaxInterval, err = time.ParseDuration(fc.MaxInterval); err != nil {
			return nil, newValidationError("parse max_interval", err)
		}
	}
	if fc.Timeout != "" {
		if cfg.Timeout, err = time.ParseDuration(fc.Timeout); err != nil {
			return nil, newValidationError("parse timeout", err)
		}
	}
	if fc.MaxConcurrentAwaits != nil {
		cfg.MaxConcurrentAwaits = *fc.MaxConcurrentAwaits
	}
	if fc.Debug != nil {
		cfg.DebugOn = *fc.Debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, newValidationError(fmt.Sprintf("invalid config file %s", path), err)
	}
	return cfg, nil
}
