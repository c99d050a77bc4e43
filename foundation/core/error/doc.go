// Package error provides structured errors for the rair shell.
//
// Package: error
// Title: rair Error Handling
// Description: Errors carry a Code so that every failure the shell reports
//              (duplicate registrations, unknown commands, argument problems,
//              address-space failures) can be classified in the log. The type
//              works with errors.Is/As; two *Error values match when their
//              codes match.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Usage:
//   import rairerror "github.com/msto63/rair/foundation/core/error"
//
//   err := rairerror.Wrap(cause, "Failed to map memory").
//     WithCode(rairerror.CodeMappingOperationFailure).
//     WithDetail("vir", vir)
//
//   if rairerror.HasCode(err, rairerror.CodeMappingOperationFailure) { ... }
//   if errors.Is(err, rairerror.ErrEnvNotFound) { ... }
package error
