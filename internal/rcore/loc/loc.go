// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     loc
// Description: Commands moving the location cursor and switching the
//              address interpretation mode
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package loc

import (
	"fmt"
	"math"
	"strings"

	rairerror "github.com/msto63/rair/foundation/core/error"
	"github.com/msto63/rair/internal/rcore/core"
)

// Register adds mode/m and seek/s to c
func Register(c *core.Core) {
	c.AddCommand("mode", "m", NewMode())
	c.AddCommand("seek", "s", NewSeek())
}

// Mode switches between physical and virtual addressing
type Mode struct{}

// NewMode creates the mode command
func NewMode() *Mode {
	return &Mode{}
}

func (m *Mode) Run(c *core.Core, args []string) {
	if len(args) != 1 {
		core.Expect(c, len(args), 1)
		return
	}
	mode, ok := core.ParseAddrMode(args[0])
	if !ok {
		msg := fmt.Sprintf("Expected %s or %s, got %s.", c.Bold("phy"), c.Bold("vir"), args[0])
		core.ErrorMsg(c, rairerror.CodeInvalidInput, "Failed to set mode", msg)
		return
	}
	c.SetMode(mode)
}

func (m *Mode) Help(c *core.Core) {
	core.HelpMsg(c, "mode", "m", []core.Usage{
		{Args: "[phy]", Description: "Interpret addresses as physical addresses."},
		{Args: "[vir]", Description: "Interpret addresses as virtual addresses."},
	})
}

// Seek moves the location cursor
type Seek struct{}

// NewSeek creates the seek command
func NewSeek() *Seek {
	return &Seek{}
}

func (s *Seek) Run(c *core.Core, args []string) {
	if len(args) != 1 {
		core.Expect(c, len(args), 1)
		return
	}

	arg := args[0]
	sign := byte(0)
	if strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-") {
		sign, arg = arg[0], arg[1:]
	}

	n, err := core.StrToNum(arg)
	if err != nil {
		core.ParseFailure(c, "Failed to seek", "addr", err)
		return
	}

	loc := c.Loc()
	switch sign {
	case '+':
		if n > math.MaxUint64-loc {
			core.ErrorMsg(c, rairerror.CodeInvalidInput, "Failed to seek", "Location would overflow.")
			return
		}
		loc += n
	case '-':
		if n > loc {
			core.ErrorMsg(c, rairerror.CodeInvalidInput, "Failed to seek", "Location would underflow.")
			return
		}
		loc -= n
	default:
		loc = n
	}
	c.SetLoc(loc)
}

func (s *Seek) Help(c *core.Core) {
	core.HelpMsg(c, "seek", "s", []core.Usage{
		{Args: "[addr]", Description: "Set current location to address."},
		{Args: "+[offset]", Description: "Move current location forward by offset."},
		{Args: "-[offset]", Description: "Move current location backward by offset."},
	})
}
