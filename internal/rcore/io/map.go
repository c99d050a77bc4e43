// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     io
// Description: Commands mapping, unmapping and listing memory regions
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

// Package io holds the commands that drive the address space engine.
package io

import (
	"fmt"

	rairerror "github.com/msto63/rair/foundation/core/error"
	"github.com/msto63/rair/foundation/utils/stringx"
	"github.com/msto63/rair/internal/rcore/core"
)

// Register adds map, unmap/um and maps to c
func Register(c *core.Core) {
	c.AddCommand("map", "", NewMap())
	c.AddCommand("unmap", "um", NewUnmap())
	c.AddCommand("maps", "", NewListMap())
}

// Map binds a physical region into the virtual address space
type Map struct{}

// NewMap creates the map command
func NewMap() *Map {
	return &Map{}
}

func (m *Map) Run(c *core.Core, args []string) {
	if len(args) != 3 {
		core.Expect(c, len(args), 3)
		return
	}
	nums, ok := parseArgs(c, "Failed to map memory", []string{"phy", "vir", "size"}, args)
	if !ok {
		return
	}
	if err := c.IO().Map(nums[0], nums[1], nums[2]); err != nil {
		core.ErrorMsg(c, rairerror.CodeMappingOperationFailure, "Failed to map memory", err.Error())
	}
}

func (m *Map) Help(c *core.Core) {
	core.HelpMsg(c, "map", "", []core.Usage{
		{Args: "[phy] [vir] [size]", Description: "Map region from physical address space to virtual address space."},
	})
}

// Unmap removes a virtual region
type Unmap struct{}

// NewUnmap creates the unmap command
func NewUnmap() *Unmap {
	return &Unmap{}
}

func (u *Unmap) Run(c *core.Core, args []string) {
	if len(args) != 2 {
		core.Expect(c, len(args), 2)
		return
	}
	nums, ok := parseArgs(c, "Failed to unmap memory", []string{"vir", "size"}, args)
	if !ok {
		return
	}
	if err := c.IO().Unmap(nums[0], nums[1]); err != nil {
		core.ErrorMsg(c, rairerror.CodeMappingOperationFailure, "Failed to unmap memory", err.Error())
	}
}

func (u *Unmap) Help(c *core.Core) {
	core.HelpMsg(c, "unmap", "um", []core.Usage{
		{Args: "[vir] [size]", Description: "Unmap a previosly mapped memory region."},
	})
}

// ListMap prints every mapping
type ListMap struct{}

// NewListMap creates the maps command
func NewListMap() *ListMap {
	return &ListMap{}
}

func (l *ListMap) Run(c *core.Core, args []string) {
	if len(args) != 0 {
		core.Expect(c, len(args), 0)
		return
	}

	fmt.Fprintf(c.Out(), "%s%s%s\n",
		c.Paint(5, stringx.PadRight("Virtual Address", 20, ' ')),
		c.Paint(5, stringx.PadRight("Physical Address", 20, ' ')),
		c.Paint(5, stringx.PadRight("Size", 5, ' ')),
	)
	for m := range c.IO().Maps() {
		fmt.Fprintf(c.Out(), "%-20s%-20s%-5s\n",
			fmt.Sprintf("0x%x", m.VirtAddr),
			fmt.Sprintf("0x%x", m.PhyAddr),
			fmt.Sprintf("0x%x", m.Size),
		)
	}
}

func (l *ListMap) Help(c *core.Core) {
	core.HelpMsg(c, "maps", "", []core.Usage{
		{Args: "", Description: "List all memory maps."},
	})
}

// parseArgs parses args as numbers, reporting the first failure by name
func parseArgs(c *core.Core, title string, names, args []string) ([]uint64, bool) {
	nums := make([]uint64, len(args))
	for i, arg := range args {
		n, err := core.StrToNum(arg)
		if err != nil {
			core.ParseFailure(c, title, names[i], err)
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}
