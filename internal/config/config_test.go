package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/fsctl/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.True(t, cfg.Log.FileEnabled)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, 28, cfg.Log.MaxAgeDays)
	assert.True(t, cfg.Log.Compress)

	assert.True(t, cfg.Storage.LockBitfield)
	assert.False(t, cfg.Storage.Sparse)

	assert.Equal(t, time.Duration(0), cfg.Lock.Hold)

	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"zero log size", func(c *Config) { c.Log.MaxSizeMB = 0 }, errors.ErrConfigInvalidLog},
		{"huge log size", func(c *Config) { c.Log.MaxSizeMB = 4096 }, errors.ErrConfigInvalidLog},
		{"negative backups", func(c *Config) { c.Log.MaxBackups = -1 }, errors.ErrConfigInvalidLog},
		{"negative age", func(c *Config) { c.Log.MaxAgeDays = -1 }, errors.ErrConfigInvalidLog},
		{"negative hold", func(c *Config) { c.Lock.Hold = -time.Second }, errors.ErrConfigInvalidLock},
		{"hold too long", func(c *Config) { c.Lock.Hold = 25 * time.Hour }, errors.ErrConfigInvalidLock},
		{"hold at max", func(c *Config) { c.Lock.Hold = 24 * time.Hour }, nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}
