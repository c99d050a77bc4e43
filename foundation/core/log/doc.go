// Package log provides structured logging for the rair shell.
//
// Package: log
// Title: rair Structured Logging
// Description: Leveled, structured logging with immutable derived loggers.
//              The shell writes its log to a file in the application data
//              directory so that log output never interleaves with command
//              output; --verbose redirects it to stderr at debug level.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Usage:
//   import rairlog "github.com/msto63/rair/foundation/core/log"
//
//   logger := rairlog.NewWithConfig(rairlog.Config{
//     Level:  rairlog.LevelDebug,
//     Format: rairlog.FormatText,
//     Output: os.Stderr,
//     Name:   "rair",
//   })
//   registryLog := logger.WithField("component", "command-registry")
//   registryLog.Debug("Command registered", rairlog.Fields{"name": "map"})
package log
