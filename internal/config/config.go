// Package config provides configuration management for fsctl with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (applied by the caller after Load)
//  2. Environment variables (FSCTL_* prefix, "." replaced by "_")
//  3. Project config (.fsctl/config.yaml)
//  4. Global config (~/.fsctl/config.yaml, or $FSCTL_HOME/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for fsctl.
type Config struct {
	// Log contains settings for the rotating CLI log file.
	Log LogConfig `yaml:"log" json:"log" mapstructure:"log"`

	// Storage contains the defaults applied when opening storage directories.
	Storage StorageConfig `yaml:"storage" json:"storage" mapstructure:"storage"`

	// Lock contains settings for the lock command.
	Lock LockConfig `yaml:"lock" json:"lock" mapstructure:"lock"`
}

// LogConfig contains settings for the log file written next to console output.
type LogConfig struct {
	// FileEnabled turns the rotating log file on or off.
	// Default: true
	FileEnabled bool `yaml:"file_enabled" json:"file_enabled" mapstructure:"file_enabled"`

	// MaxSizeMB is the size in megabytes at which the log file is rotated.
	// Default: 10, Valid range: 1-1024
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep. Zero keeps all.
	// Default: 3
	MaxBackups int `yaml:"max_backups" json:"max_backups" mapstructure:"max_backups"`

	// MaxAgeDays is the number of days to keep rotated files. Zero keeps them forever.
	// Default: 28
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days" mapstructure:"max_age_days"`

	// Compress gzips rotated files.
	// Default: true
	Compress bool `yaml:"compress" json:"compress" mapstructure:"compress"`
}

// StorageConfig contains the defaults applied when opening a storage directory.
type StorageConfig struct {
	// LockBitfield takes an exclusive lock on bitfield files so only one
	// process writes a storage directory.
	// Default: true
	LockBitfield bool `yaml:"lock_bitfield" json:"lock_bitfield" mapstructure:"lock_bitfield"`

	// Sparse marks writable storage files as sparse on platforms that
	// require an explicit request.
	// Default: false
	Sparse bool `yaml:"sparse" json:"sparse" mapstructure:"sparse"`
}

// LockConfig contains settings for `fsctl lock`.
type LockConfig struct {
	// Hold is how long `fsctl lock --hold` keeps the lock when the flag is
	// given without a value. Zero holds until interrupted.
	// Default: 0, Valid range: 0-24h
	Hold time.Duration `yaml:"hold" json:"hold" mapstructure:"hold"`
}
