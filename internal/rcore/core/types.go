// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     core
// Description: Command handler contract, address modes and the address
//              space interface consumed by the shell
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package core

import (
	"iter"
	"reflect"
)

// Cmd is a command handler. One value may be registered under several names
// (long name and short alias); it sees the Core it was dispatched from.
// Aliases are recognized by comparing handler values, so register pointers
// (or other comparable values) when a handler has more than one name.
type Cmd interface {
	// Run executes the command. Failures are reported on c.Err().
	Run(c *Core, args []string)
	// Help prints usage on c.Out().
	Help(c *Core)
}

// SameCmd reports whether a and b are the same handler value. Handlers of
// a non-comparable dynamic type are never equal to anything.
func SameCmd(a, b Cmd) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() {
		return false
	}
	return a == b
}

// AddrMode selects how addresses typed by the user are interpreted
type AddrMode int

const (
	// Phy interprets addresses in the physical address space
	Phy AddrMode = iota
	// Vir interprets addresses in the virtual address space
	Vir
)

// String returns the mode name as accepted by the mode command
func (m AddrMode) String() string {
	switch m {
	case Phy:
		return "phy"
	case Vir:
		return "vir"
	default:
		return "unknown"
	}
}

// ParseAddrMode converts "phy" or "vir" to an AddrMode
func ParseAddrMode(s string) (AddrMode, bool) {
	switch s {
	case "phy":
		return Phy, true
	case "vir":
		return Vir, true
	default:
		return Phy, false
	}
}

// Mapping binds a virtual range to a physical one
type Mapping struct {
	VirtAddr uint64
	PhyAddr  uint64
	Size     uint64
}

// AddressSpace is the mapping engine the shell drives. The shell parses and
// formats; it never resolves overlaps itself.
type AddressSpace interface {
	// Map registers size bytes at phy under vir. A failed call has no effect.
	Map(phy, vir, size uint64) error
	// Unmap removes size bytes starting at vir.
	Unmap(vir, size uint64) error
	// Maps yields the current mappings in a stable order.
	Maps() iter.Seq[Mapping]
}
