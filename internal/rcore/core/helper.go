// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     core
// Description: Reporting and argument helpers shared by command handlers
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	rairerror "github.com/msto63/rair/foundation/core/error"
	rairlog "github.com/msto63/rair/foundation/core/log"
)

// Usage is one line of a command's help text
type Usage struct {
	Args        string
	Description string
}

// ErrorMsg writes "Error: <title>" and msg to the error sink and logs the
// report with its code.
func ErrorMsg(c *Core, code rairerror.Code, title, msg string) {
	fmt.Fprintf(c.stderr, "%s %s\n%s\n", c.Paint(3, "Error:"), title, msg)

	c.logger.Warn(title, rairlog.Fields{
		"error_code": code.String(),
		"category":   code.Category(),
	})
}

// Expect reports an argument count mismatch
func Expect(c *Core, got, want int) {
	msg := fmt.Sprintf("Expected %d argument(s), got %d.", want, got)
	ErrorMsg(c, rairerror.CodeArgumentCountMismatch, "Arguments count mismatch", msg)
}

// ParseFailure reports that argument name could not be parsed
func ParseFailure(c *Core, title, name string, err error) {
	msg := fmt.Sprintf("Failed to parse %s, %s", c.Bold(name), err)
	ErrorMsg(c, rairerror.CodeArgumentParseFailure, title, msg)
}

// HelpMsg prints the help layout for a command registered as long and,
// optionally, short. Usage lines show the short name when there is one.
func HelpMsg(c *Core, long, short string, usages []Usage) {
	name := long
	if short == "" {
		fmt.Fprintf(c.stdout, "Command: [%s]\n\n", c.Paint(6, long))
	} else {
		fmt.Fprintf(c.stdout, "Commands: [%s | %s]\n\n", c.Paint(6, long), c.Paint(6, short))
		name = short
	}

	fmt.Fprintln(c.stdout, "Usage:")
	for _, usage := range usages {
		if usage.Args == "" {
			fmt.Fprintf(c.stdout, "%s\t%s\n", c.Paint(6, name), usage.Description)
		} else {
			fmt.Fprintf(c.stdout, "%s %s\t%s\n", c.Paint(6, name), c.Paint(1, usage.Args), usage.Description)
		}
	}
}

// StrToNum parses an unsigned 64-bit number with an optional 0x, 0o or 0b
// prefix. Errors are strconv.ErrSyntax or strconv.ErrRange.
func StrToNum(s string) (uint64, error) {
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		base, digits = 8, s[2:]
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		base, digits = 2, s[2:]
	}

	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, numErr.Err
		}
		return 0, err
	}
	return n, nil
}
