package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # Airtable Errors (AT001-AT099)
//
//	AT001 - Resource not found: base, table or record does not exist
//	        Action: Please check your Base ID and Table ID
//	        Patterns: "not_found"
//
//	AT002 - Insufficient permissions: token cannot access the base
//	        Action: Please check your Airtable API token
//	        Patterns: "insufficient permissions", "invalid_permissions"
//
//	AT003 - Authentication required: token missing or revoked
//	        Action: Please check your Airtable API token
//	        Patterns: "authentication_required"
//
//	AT004 - Malformed response: Airtable answered with unexpected data
//	        Action: Please try again or contact support
//	        Patterns: "malformed response"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid date          Patterns: "invalid date"
//	VAL002 - Sponsor or offering   Patterns: "sponsor or offering not found"
//	VAL003 - Required field        Patterns: "required field"
//	VAL004 - Missing column        Patterns: "missing required column"
//	VAL005 - Invalid enum          Patterns: "invalid enum"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large       Patterns: "file too large"
//	FILE002 - Invalid CSV          Patterns: "invalid csv"
//	FILE003 - No file              Patterns: "no file provided"
//	FILE004 - Empty file           Patterns: "empty file"
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - System busy           Patterns: "too many concurrent imports"
//	IMP002 - Request cancelled     Patterns: "context canceled"
//	IMP003 - Request timeout       Patterns: "context deadline exceeded"
//
// # Store Errors (ST001-ST099)
//
//	ST001 - Record not found       Patterns: "not found"
//	ST002 - Data not loaded        Patterns: "failed to load data"
//	ST003 - Duplicate record       Patterns: "duplicate key", "unique constraint"
//	ST004 - Storage unavailable    Patterns: "connection refused", "database is locked"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests    Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns are listed
// before general ones.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgResourceNotFound = UserMessage{
		Message: "Airtable resource not found",
		Action:  "Please check your Base ID and Table ID.",
		Code:    "AT001",
	}
	msgInsufficientPermissions = UserMessage{
		Message: "Insufficient permissions",
		Action:  "Please check your Airtable API token.",
		Code:    "AT002",
	}
)

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// Airtable
	{pattern: "not_found", msg: msgResourceNotFound},
	{pattern: "insufficient permissions", msg: msgInsufficientPermissions},
	{pattern: "invalid_permissions", msg: msgInsufficientPermissions},
	{
		pattern: "authentication_required",
		msg: UserMessage{
			Message: "Airtable authentication failed",
			Action:  "Please check your Airtable API token.",
			Code:    "AT003",
		},
	},
	{
		pattern: "malformed response",
		msg: UserMessage{
			Message: "Airtable returned unexpected data",
			Action:  "Please try again or contact support",
			Code:    "AT004",
		},
	},

	// Validation
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD",
			Code:    "VAL001",
		},
	},
	{
		pattern: "sponsor or offering not found",
		msg: UserMessage{
			Message: "Sponsor or offering not found",
			Action:  "Reload the page and select them again",
			Code:    "VAL002",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Fill in all required fields",
			Code:    "VAL003",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from CSV",
			Action:  "Download the template and compare the header row",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid enum",
		msg: UserMessage{
			Message: "Value is not in the allowed list",
			Action:  "Check the allowed values for this field",
			Code:    "VAL005",
		},
	},

	// File
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit (10MB)",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a CSV file with a header row",
			Code:    "FILE004",
		},
	},

	// Import
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "System is busy processing other imports",
			Action:  "Please wait a moment and try again",
			Code:    "IMP001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "IMP002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "IMP003",
		},
	},

	// Store
	{
		pattern: "failed to load data",
		msg: UserMessage{
			Message: "Failed to load data",
			Action:  "Reload to try again",
			Code:    "ST002",
		},
	},
	{
		pattern: "not found",
		msg: UserMessage{
			Message: "Record not found",
			Action:  "It may have been deleted. Reload and try again",
			Code:    "ST001",
		},
	},
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Reload and try again",
			Code:    "ST003",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Reload and try again",
			Code:    "ST003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Storage is unavailable",
			Action:  "Please try again in a few moments",
			Code:    "ST004",
		},
	},
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "Storage is unavailable",
			Action:  "Please try again in a few moments",
			Code:    "ST004",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first matching pattern, or the ERR000 fallback.
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

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a *UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}

// RemoteOp names a remote sponsor operation for notices.
type RemoteOp string

const (
	OpAddSponsor    RemoteOp = "add"
	OpUpdateSponsor RemoteOp = "update"
	OpDeleteSponsor RemoteOp = "delete"
)

// gerund returns the -ing form used in the fallback notice.
func (op RemoteOp) gerund() string {
	switch op {
	case OpAddSponsor:
		return "adding"
	case OpUpdateSponsor:
		return "updating"
	case OpDeleteSponsor:
		return "deleting"
	}
	return string(op)
}

// ErrUnexpected marks a failure with no usable message.
var ErrUnexpected = errors.New("unexpected error")

// RemoteNotice builds the notice shown when a remote sponsor operation fails.
// Known Airtable failures get a friendlier text, others show the raw message,
// and failures without any message fall back to a generic notice. Delete
// failures always use a fixed text.
func RemoteNotice(op RemoteOp, err error) string {
	if op == OpDeleteSponsor {
		return "Failed to delete sponsor"
	}
	if err == nil || err.Error() == "" || errors.Is(err, ErrUnexpected) {
		return fmt.Sprintf("An unexpected error occurred while %s the sponsor", op.gerund())
	}

	prefix := fmt.Sprintf("Failed to %s sponsor: ", op)
	switch msg := MapError(err); msg.Code {
	case msgResourceNotFound.Code, msgInsufficientPermissions.Code:
		if op == OpAddSponsor {
			return prefix + msg.Message + ". " + msg.Action
		}
		return prefix + msg.Message
	default:
		return prefix + err.Error()
	}
}
