package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/fsctl/internal/constants"
)

// DefaultConfig returns a new Config with default values.
// These defaults are the base layer that config files, environment
// variables and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			FileEnabled: true,
			MaxSizeMB:   constants.LogMaxSizeMB,
			MaxBackups:  constants.LogMaxBackups,
			MaxAgeDays:  constants.LogMaxAgeDays,
			Compress:    constants.LogCompress,
		},
		Storage: StorageConfig{
			LockBitfield: true,
			// Sparse stays off: marking files sparse on Windows showed a
			// regression that is still being investigated.
			Sparse: false,
		},
		Lock: LockConfig{
			Hold: constants.DefaultHoldDuration,
		},
	}
}

// setDefaults registers every default on the Viper instance. Registering
// each key is also what lets AutomaticEnv find FSCTL_* overrides on Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// Log defaults
	v.SetDefault("log.file_enabled", d.Log.FileEnabled)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)

	// Storage defaults
	v.SetDefault("storage.lock_bitfield", d.Storage.LockBitfield)
	v.SetDefault("storage.sparse", d.Storage.Sparse)

	// Lock defaults
	v.SetDefault("lock.hold", d.Lock.Hold.String())
}
