package utils

import (
	"context"
	"errors"
	"os"
	"strings"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrParsing          = errors.New("parsing error")                  // Input is not a text document
	ErrConfigValidation = errors.New("configuration validation error") // Invalid TOC or driver options
	ErrFilesystem       = errors.New("filesystem error")               // Wraps os errors
	ErrDatabase         = errors.New("database error")                 // Wraps badger errors
	ErrUsage            = errors.New("invalid usage")                  // Conflicting command-line arguments
)

// CategorizeError maps an error to a predefined category string for logging.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	switch {
	case errors.Is(err, ErrParsing):
		errMsg := err.Error()
		if strings.Contains(errMsg, "UTF-8") {
			return "Content_Encoding"
		}
		if strings.Contains(errMsg, "NUL") {
			return "Content_Binary"
		}
		return "Content_ParsingOther"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	case errors.Is(err, ErrUsage):
		return "Usage"
	case errors.Is(err, ErrFilesystem):
		return categorizeFilesystem(err)
	case errors.Is(err, ErrDatabase):
		return "Database_Other"
	}

	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}
	// Unwrapped os errors still get a filesystem category
	if errors.Is(err, os.ErrPermission) || errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrExist) {
		return categorizeFilesystem(err)
	}

	return "Unknown"
}

func categorizeFilesystem(err error) string {
	if errors.Is(err, os.ErrPermission) {
		return "Filesystem_Permission"
	}
	if errors.Is(err, os.ErrNotExist) {
		return "Filesystem_NotExist"
	}
	if errors.Is(err, os.ErrExist) {
		return "Filesystem_Exist"
	}
	return "Filesystem_Other"
}
