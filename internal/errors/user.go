package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Order matters: wrapped errors match the first entry found by errors.Is(),
// so storage errors come before the bridge reasons they wrap.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Storage
	// ===================
	{
		err: ErrStorageLocked,
		info: ErrorInfo{
			Message: "Storage is in use by another process.",
			Action:  "Close the other process using this storage directory and retry.",
		},
	},
	{
		err: ErrInvalidStorageName,
		info: ErrorInfo{
			Message: "Storage file name is invalid.",
			Action:  "Use a relative name that stays inside the storage directory.",
		},
	},
	{
		err: ErrStorageClosed,
		info: ErrorInfo{
			Message: "Storage file is already closed.",
		},
	},

	// ===================
	// File control
	// ===================
	{
		err: ErrLockContended,
		info: ErrorInfo{
			Message: "File is locked by another process.",
			Action:  "Wait for the other process to release the lock and try again.",
		},
	},
	{
		err: ErrInvalidDescriptor,
		info: ErrorInfo{
			Message: "The file is not open or the descriptor is invalid.",
			Action:  "Check that the path exists and is a regular file.",
		},
	},
	{
		err: ErrUnsupported,
		info: ErrorInfo{
			Message: "This operation is not supported on this platform or filesystem.",
		},
	},
	{
		err: ErrNotLocked,
		info: ErrorInfo{
			Message: "The file holds no lock to release.",
		},
	},
	{
		err: ErrFileControl,
		info: ErrorInfo{
			Message: "The operating system rejected the file-control request.",
			Action:  "Run with --verbose to see the underlying error.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigInvalidLog,
		info: ErrorInfo{
			Message: "Log configuration is invalid.",
			Action:  "Check the log section of ~/.fsctl/config.yaml.",
		},
	},
	{
		err: ErrConfigInvalidLock,
		info: ErrorInfo{
			Message: "Lock configuration is invalid.",
			Action:  "Use a duration such as '30s' or '5m' for lock.hold.",
		},
	},

	// ===================
	// CLI
	// ===================
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrInvalidArgument,
		info: ErrorInfo{
			Message: "An invalid argument was provided.",
			Action:  "Check the command help for valid arguments.",
		},
	},
	{
		err: ErrProbeFailed,
		info: ErrorInfo{
			Message: "Some files could not be probed.",
			Action:  "Check that each path exists and is a regular file you can open for writing.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// It first tries a direct map lookup for unwrapped sentinel errors,
// then falls back to errors.Is() traversal for wrapped errors.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
//
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
