package core

// error_messages.go maps technical errors to user-friendly messages with codes
// for support reference. Users can quote the code when reporting a problem.
//
// # File Errors (FILE001-FILE099)
//
//	FILE002 - Invalid CSV: File is not a valid CSV
//	          Action: Check for unbalanced quotes or stray quote characters
//	          Patterns: "invalid csv"
//
//	FILE003 - Encoding error: File contains invalid characters
//	          Action: Save file as UTF-8, or set NORMALIZE_SANITIZE_UTF8=true
//	          Patterns: "encoding error"
//
//	FILE004 - No file: No file was selected
//	          Action: Run again and choose a CSV file
//	          Patterns: "no file provided"
//
//	FILE006 - Not found: The input file could not be found
//	          Action: Check that the file still exists
//	          Matches: fs.ErrNotExist, "no such file"
//
//	FILE007 - Access denied: The file could not be accessed
//	          Action: Check file permissions or choose another location
//	          Matches: fs.ErrPermission, "permission denied"
//
// # Run Errors (UPL001-UPL099)
//
//	UPL004 - Cancelled: Normalization was cancelled
//	         Action: Run again when ready
//	         Matches: context.Canceled
//
//	UPL005 - Timed out: Normalization timed out
//	         Action: Raise NORMALIZE_TIMEOUT or split the file
//	         Matches: context.DeadlineExceeded
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Check the log output for details
//
// Sentinel errors are checked first with errors.Is; after that, patterns are
// matched case-insensitively with strings.Contains and the first match wins.

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgNotFound = UserMessage{
		Message: "The input file could not be found",
		Action:  "Check that the file still exists",
		Code:    "FILE006",
	}
	msgAccess = UserMessage{
		Message: "The file could not be accessed",
		Action:  "Check file permissions or choose another location",
		Code:    "FILE007",
	}
	msgCancelled = UserMessage{
		Message: "Normalization was cancelled",
		Action:  "Run again when ready",
		Code:    "UPL004",
	}
	msgTimeout = UserMessage{
		Message: "Normalization timed out",
		Action:  "Raise NORMALIZE_TIMEOUT or split the file",
		Code:    "UPL005",
	}
)

// errorSentinel maps a wrapped sentinel error to a user message.
type errorSentinel struct {
	target error
	msg    UserMessage
}

var errorSentinels = []errorSentinel{
	{target: context.Canceled, msg: msgCancelled},
	{target: context.DeadlineExceeded, msg: msgTimeout},
	{target: fs.ErrNotExist, msg: msgNotFound},
	{target: fs.ErrPermission, msg: msgAccess},
	{target: ErrInvalidUTF8, msg: UserMessage{
		Message: "File contains invalid characters",
		Action:  "Save file as UTF-8, or set NORMALIZE_SANITIZE_UTF8=true",
		Code:    "FILE003",
	}},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is ordered: more specific patterns come first.
var errorPatterns = []errorPattern{
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Check for unbalanced quotes or stray quote characters",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8, or set NORMALIZE_SANITIZE_UTF8=true",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Run again and choose a CSV file",
			Code:    "FILE004",
		},
	},
	{pattern: "no such file", msg: msgNotFound},
	{pattern: "permission denied", msg: msgAccess},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the log output for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for nil.
//
// Example:
//
//	msg := MapError(err)
//	// msg.Code == "FILE002" for a CSV parse error
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range errorSentinels {
		if errors.Is(err, s.target) {
			return s.msg
		}
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

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
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

// NewUserError maps err and wraps it. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
