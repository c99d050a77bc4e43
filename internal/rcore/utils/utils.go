// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     utils
// Description: Session commands: quit, command listing and history
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package utils

import (
	"fmt"
	"strings"

	"github.com/rodaine/table"

	"github.com/msto63/rair/internal/rcore/core"
)

// Register adds quit/q, commands and history to c
func Register(c *core.Core) {
	c.AddCommand("quit", "q", NewQuit())
	c.AddCommand("commands", "", NewCommands())
	c.AddCommand("history", "", NewHistory())
}

// Quit ends the session
type Quit struct{}

// NewQuit creates the quit command
func NewQuit() *Quit {
	return &Quit{}
}

func (q *Quit) Run(c *core.Core, args []string) {
	if len(args) != 0 {
		core.Expect(c, len(args), 0)
		return
	}
	c.Quit()
}

func (q *Quit) Help(c *core.Core) {
	core.HelpMsg(c, "quit", "q", []core.Usage{
		{Args: "", Description: "Quit the current session."},
	})
}

// Commands lists every registered command with its aliases
type Commands struct{}

// NewCommands creates the commands command
func NewCommands() *Commands {
	return &Commands{}
}

func (l *Commands) Run(c *core.Core, args []string) {
	if len(args) != 0 {
		core.Expect(c, len(args), 0)
		return
	}

	tbl := table.New("Command", "Aliases").
		WithWriter(c.Out()).
		WithHeaderFormatter(func(format string, vals ...interface{}) string {
			header := strings.TrimSuffix(fmt.Sprintf(format, vals...), "\n")
			return c.Paint(5, header) + "\n"
		})

	groups := c.Commands().Groups(core.SameCmd)
	for _, group := range groups {
		tbl.AddRow(group.Names[0], strings.Join(group.Names[1:], ", "))
	}
	tbl.Print()
}

func (l *Commands) Help(c *core.Core) {
	core.HelpMsg(c, "commands", "", []core.Usage{
		{Args: "", Description: "List all commands and their aliases."},
	})
}

// History prints the lines executed in this session
type History struct{}

// NewHistory creates the history command
func NewHistory() *History {
	return &History{}
}

func (h *History) Run(c *core.Core, args []string) {
	if len(args) > 1 {
		core.Expect(c, len(args), 1)
		return
	}

	lines := c.History()
	start := 0
	if len(args) == 1 {
		n, err := core.StrToNum(args[0])
		if err != nil {
			core.ParseFailure(c, "Failed to show history", "count", err)
			return
		}
		if n < uint64(len(lines)) {
			start = len(lines) - int(n)
		}
	}

	for i := start; i < len(lines); i++ {
		fmt.Fprintf(c.Out(), "%s  %s\n", c.Paint(0, fmt.Sprintf("%4d", i+1)), lines[i])
	}
}

func (h *History) Help(c *core.Core) {
	core.HelpMsg(c, "history", "", []core.Usage{
		{Args: "", Description: "Show every line entered in this session."},
		{Args: "[n]", Description: "Show the last n lines."},
	})
}
