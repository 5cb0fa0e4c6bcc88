package main

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Port:           8080,
		DBPath:         "reorder.db",
		Periods:        12,
		Samples:        20,
		Workers:        4,
		Seed:           1,
		ReseedInterval: time.Hour,
	}, cfg)
}

func TestLoadConfig_EnvironmentThenFlags(t *testing.T) {
	// GIVEN: Environment overrides
	t.Setenv("REORDER_PORT", "9090")
	t.Setenv("REORDER_PERIODS", "52")
	t.Setenv("REORDER_SEED", "77")
	t.Setenv("REORDER_RESEED_INTERVAL", "0")

	// WHEN: A flag overrides one of them again
	cfg, err := loadConfig([]string{"-periods", "26", "-db", ":memory:"})
	require.NoError(t, err)

	// THEN: Flags win, then environment, then defaults
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 26, cfg.Periods)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, uint64(77), cfg.Seed)
	assert.Zero(t, cfg.ReseedInterval)
}

func TestLoadConfig_MalformedEnvironmentFallsBack(t *testing.T) {
	t.Setenv("REORDER_WORKERS", "many")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := [][]string{
		{"-port", "0"},
		{"-periods", "0"},
		{"-samples", "-1"},
		{"-workers", "0"},
		{"-periods", "twelve"},
	}
	for _, args := range tests {
		_, err := loadConfig(args)
		assert.Error(t, err, "args %v", args)
	}
}

func TestLoadConfig_Help(t *testing.T) {
	_, err := loadConfig([]string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}
