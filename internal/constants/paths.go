package constants

// Log file settings.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.fsctl/logs/fsctl.log
	CLILogFileName = "fsctl.log"

	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of a rotated log file.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global configuration file.
	// This file is located in the fsctl home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigDir is the project-local configuration directory.
	ProjectConfigDir = ".fsctl"
)
