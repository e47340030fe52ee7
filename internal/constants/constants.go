// Package constants provides centralized constant values used throughout fsctl.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// AppName is the name of the binary and the prefix for environment variables.
const AppName = "fsctl"

// EnvPrefix is the prefix for environment variable overrides (e.g., FSCTL_STORAGE_SPARSE).
const EnvPrefix = "FSCTL"

// Directory names and paths used by fsctl.
const (
	// FsctlHome is the hidden directory name where fsctl stores its config and logs.
	// This directory is created in the user's home directory.
	FsctlHome = ".fsctl"

	// HomeEnvVar overrides the location of FsctlHome when set.
	HomeEnvVar = "FSCTL_HOME"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Storage file names. A storage directory holds one file per name; these
// two names select special handling when the storage is opened.
const (
	// TreeFileName names the file holding the merkle tree nodes.
	TreeFileName = "tree"

	// BitfieldFileName names the file holding the bitfield. It is the file
	// that is locked so that only one process writes a storage directory.
	BitfieldFileName = "bitfield"
)

// File and directory permissions.
const (
	// DirPerm is used for every directory fsctl creates.
	DirPerm = 0o750

	// FilePerm is used for every file fsctl creates.
	FilePerm = 0o600
)

// Lock command defaults.
const (
	// DefaultHoldDuration is how long `fsctl lock --hold` keeps a lock when
	// no duration is given in flags or config. Zero means until interrupted.
	DefaultHoldDuration time.Duration = 0

	// MaxHoldDuration caps the configured hold duration.
	MaxHoldDuration = 24 * time.Hour
)
