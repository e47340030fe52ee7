package config

import (
	"github.com/mrz1836/fsctl/internal/constants"
	"github.com/mrz1836/fsctl/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - log.max_size_mb must be between 1 and 1024
//   - log.max_backups and log.max_age_days must not be negative
//   - lock.hold must be between 0 and 24h
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateLogConfig(&cfg.Log); err != nil {
		return err
	}

	return validateLockConfig(&cfg.Lock)
}

func validateLogConfig(cfg *LogConfig) error {
	const maxSizeMB = 1024
	if cfg.MaxSizeMB < 1 || cfg.MaxSizeMB > maxSizeMB {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_size_mb must be between 1 and %d, got %d", maxSizeMB, cfg.MaxSizeMB)
	}
	if cfg.MaxBackups < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_backups cannot be negative, got %d", cfg.MaxBackups)
	}
	if cfg.MaxAgeDays < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidLog,
			"log.max_age_days cannot be negative, got %d", cfg.MaxAgeDays)
	}
	return nil
}

func validateLockConfig(cfg *LockConfig) error {
	if cfg.Hold < 0 || cfg.Hold > constants.MaxHoldDuration {
		return errors.Wrapf(errors.ErrConfigInvalidLock,
			"lock.hold must be between 0 and %s, got %s", constants.MaxHoldDuration, cfg.Hold)
	}
	return nil
}
