// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify every failure the
//              shell reports. Codes travel with the error into the log so
//              reports on the terminal and entries in the log file can be
//              correlated.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-03-02 v0.2.0: Shell dispatch and environment taxonomy

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Command registry and dispatch
	CodeDuplicateRegistration Code = "DUPLICATE_REGISTRATION"
	CodeCommandNotFound       Code = "COMMAND_NOT_FOUND"
	CodeNestingDepthExceeded  Code = "NESTING_DEPTH_EXCEEDED"
	CodeCommandLineSyntax     Code = "COMMAND_LINE_SYNTAX"

	// Command arguments
	CodeArgumentCountMismatch Code = "ARGUMENT_COUNT_MISMATCH"
	CodeArgumentParseFailure  Code = "ARGUMENT_PARSE_FAILURE"

	// Address space engine
	CodeMappingOperationFailure Code = "MAPPING_OPERATION_FAILURE"

	// Environment variables
	CodeEnvNotFound       Code = "ENV_NOT_FOUND"
	CodeEnvDifferentType  Code = "ENV_DIFFERENT_TYPE"
	CodeEnvCallbackFailed Code = "ENV_CALLBACK_FAILED"
	CodeEnvAlreadyExists  Code = "ENV_ALREADY_EXISTS"

	// Configuration and persistence
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
	CodeStorageError  Code = "STORAGE_ERROR"
	CodeScriptError   Code = "SCRIPT_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeDuplicateRegistration, CodeCommandNotFound, CodeNestingDepthExceeded, CodeCommandLineSyntax,
		CodeArgumentCountMismatch, CodeArgumentParseFailure,
		CodeMappingOperationFailure,
		CodeEnvNotFound, CodeEnvDifferentType, CodeEnvCallbackFailed, CodeEnvAlreadyExists,
		CodeConfigError, CodeInvalidConfig, CodeStorageError, CodeScriptError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeDuplicateRegistration, CodeCommandNotFound, CodeNestingDepthExceeded, CodeCommandLineSyntax:
		return "dispatch"
	case CodeArgumentCountMismatch, CodeArgumentParseFailure:
		return "arguments"
	case CodeMappingOperationFailure:
		return "io"
	case CodeEnvNotFound, CodeEnvDifferentType, CodeEnvCallbackFailed, CodeEnvAlreadyExists:
		return "environment"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeStorageError, CodeScriptError:
		return "extension"
	default:
		return "generic"
	}
}
