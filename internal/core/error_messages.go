package core

// error_messages.go maps technical errors to user-friendly messages with
// codes for support reference.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - Invalid CSV: File is not a valid CSV
//	          Patterns: "invalid csv"
//	FILE004 - No file: No file was selected
//	          Patterns: "no file provided"
//	FILE005 - Empty file: The file has no header line
//	          Patterns: "empty file"
//	FILE006 - Not found: Input file does not exist
//	          Patterns: "file not found"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL004 - Missing column: Required column is missing from CSV
//	         Patterns: "missing required column"
//	VAL005 - Column not found: Expected column not found in CSV
//	         Patterns: "column not found"
//	VAL007 - Duplicate column: Two headers normalize to the same name
//	         Patterns: "duplicate column"
//
// # Output Errors (IO001-IO099)
//
//	IO001 - Write failed: The cleaned file could not be written
//	        Patterns: "io error"
//
// # Service Errors
//
//	UPL002  - System busy: Too many cleanings in progress
//	UPL004  - Request cancelled
//	UPL005  - Request timeout
//	RATE001 - Rate limited
//	DB004   - Archive unavailable
//	ARC001  - Archive not configured
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the logs for the
// original technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones. A ParseError
// message always contains "invalid csv", so every pattern describing a more
// specific parse failure must precede it.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file not found",
		msg: UserMessage{
			Message: "Input file does not exist",
			Action:  "Check that the raw sales file is in place",
			Code:    "FILE006",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file is empty",
			Action:  "Provide a CSV file with a header line",
			Code:    "FILE005",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to clean",
			Code:    "FILE004",
		},
	},

	// Header errors, more specific than "invalid csv"
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from CSV",
			Action:  "Include prodname, category, price and qty columns",
			Code:    "VAL004",
		},
	},
	{
		pattern: "duplicate column",
		msg: UserMessage{
			Message: "Two columns have the same name",
			Action:  "Rename or remove the duplicated column",
			Code:    "VAL007",
		},
	},
	{
		pattern: "column not found",
		msg: UserMessage{
			Message: "Expected column not found in CSV",
			Action:  "Verify the column headers",
			Code:    "VAL005",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},

	// Output errors
	{
		pattern: "io error",
		msg: UserMessage{
			Message: "The cleaned file could not be written",
			Action:  "Check that the output directory exists and is writable",
			Code:    "IO001",
		},
	},

	// Service errors
	{
		pattern: "too many cleanings",
		msg: UserMessage{
			Message: "System is busy processing other files",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "archive not configured",
		msg: UserMessage{
			Message: "Run history is not available",
			Action:  "Set DATABASE_URL to enable the run archive",
			Code:    "ARC001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the run archive",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the generic ERR000 message is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern, i.e. maps to
// something other than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
