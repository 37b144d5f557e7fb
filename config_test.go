// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

package bridge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "valid config",
			cfg: &Config{
				InitialInterval:     1 * time.Millisecond,
				MaxInterval:         50 * time.Millisecond,
				Timeout:             time.Second,
				MaxConcurrentAwaits: 8,
			},
			shouldErr: false,
		},
		{
			name: "initial interval below floor",
			cfg: &Config{
				InitialInterval: 50 * time.Microsecond,
				MaxInterval:     50 * time.Millisecond,
			},
			shouldErr: true,
		},
		{
			name: "missing max interval",
			cfg: &Config{
				InitialInterval: 1 * time.Millisecond,
			},
			shouldErr: true,
		},
		{
			name: "cap below floor",
			cfg: &Config{
				InitialInterval: 10 * time.Millisecond,
				MaxInterval:     1 * time.Millisecond,
			},
			shouldErr: true,
		},
		{
			name: "negative timeout",
			cfg: &Config{
				InitialInterval: 1 * time.Millisecond,
				MaxInterval:     50 * time.Millisecond,
				Timeout:         -time.Second,
			},
			shouldErr: true,
		},
		{
			name: "too many concurrent awaits",
			cfg: &Config{
				InitialInterval:     1 * time.Millisecond,
				MaxInterval:         50 * time.Millisecond,
				MaxConcurrentAwaits: 2048,
			},
			shouldErr: true,
		},
		{
			name:      "default config is valid",
			cfg:       NewDefaultConfig(),
			shouldErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.shouldErr {
				assert.Error(t, err, "expected validation error")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfigFile(t, `
initial_interval: 2ms
max_interval: 40ms
timeout: 1s
max_concurrent_awaits: 8
debug: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Millisecond, cfg.InitialInterval)
	assert.Equal(t, 40*time.Millisecond, cfg.MaxInterval)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, 8, cfg.MaxConcurrentAwaits)
	assert.True(t, cfg.DebugOn)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, "timeout: 500ms\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	defaults := NewDefaultConfig()
	assert.Equal(t, defaults.InitialInterval, cfg.InitialInterval)
	assert.Equal(t, defaults.MaxInterval, cfg.MaxInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout)
}

func TestLoadConfig_BadDuration(t *testing.T) {
	path := writeConfigFile(t, "initial_interval: not-a-duration\n")

	_, err := LoadConfig(path)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
initial_interval: 40ms
max_interval: 2ms
`)

	_, err := LoadConfig(path)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}
