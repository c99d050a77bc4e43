// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     script
// Description: Lua scripting command dispatching shell commands from scripts
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

// Package script runs Lua scripts against the shell. Scripts see a "rair"
// table:
//
//	rair.run(cmd, ...)          dispatch cmd with the remaining arguments
//	rair.run_at(addr, cmd, ...) same, with the location set to addr
//	rair.loc()                  current location
//	rair.seek(addr)             set the location
//	rair.mode()                 "phy" or "vir"
//	rair.args                   arguments passed after the file name
//
// Addresses may be given as Lua numbers or as strings in any notation the
// shell accepts ("0x1000").
package script

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"

	rairerror "github.com/msto63/rair/foundation/core/error"
	rairlog "github.com/msto63/rair/foundation/core/log"
	"github.com/msto63/rair/internal/rcore/core"
)

// Register adds script/. to c
func Register(c *core.Core) {
	c.AddCommand("script", ".", NewScript())
}

// Script runs a Lua file
type Script struct{}

// NewScript creates the script command
func NewScript() *Script {
	return &Script{}
}

func (s *Script) Run(c *core.Core, args []string) {
	if len(args) < 1 {
		core.Expect(c, len(args), 1)
		return
	}

	if err := RunFile(c, args[0], args[1:]); err != nil {
		core.ErrorMsg(c, rairerror.CodeScriptError, "Script failed", err.Error())
	}
}

func (s *Script) Help(c *core.Core) {
	core.HelpMsg(c, "script", ".", []core.Usage{
		{Args: "[file] [args...]", Description: "Run a Lua script with access to the shell."},
	})
}

// RunFile executes the Lua file at path with the rair table bound to c
func RunFile(c *core.Core, path string, args []string) error {
	L := newState(c, args)
	defer L.Close()

	c.Logger().Debug("Running script", rairlog.Fields{"path": path, "args": len(args)})
	return L.DoFile(path)
}

// RunString executes Lua source with the rair table bound to c
func RunString(c *core.Core, source string, args []string) error {
	L := newState(c, args)
	defer L.Close()

	return L.DoString(source)
}

func newState(c *core.Core, args []string) *lua.LState {
	L := lua.NewState()

	mod := L.NewTable()
	L.SetField(mod, "run", L.NewFunction(func(L *lua.LState) int {
		c.Run(L.CheckString(1), stringArgs(L, 2))
		return 0
	}))
	L.SetField(mod, "run_at", L.NewFunction(func(L *lua.LState) int {
		at := checkAddr(L, 1)
		c.RunAt(L.CheckString(2), stringArgs(L, 3), at)
		return 0
	}))
	L.SetField(mod, "loc", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(c.Loc()))
		return 1
	}))
	L.SetField(mod, "seek", L.NewFunction(func(L *lua.LState) int {
		c.SetLoc(checkAddr(L, 1))
		return 0
	}))
	L.SetField(mod, "mode", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(c.Mode().String()))
		return 1
	}))

	argv := L.NewTable()
	for _, arg := range args {
		argv.Append(lua.LString(arg))
	}
	L.SetField(mod, "args", argv)

	L.SetGlobal("rair", mod)
	return L
}

// stringArgs converts the Lua arguments from index first on to strings
func stringArgs(L *lua.LState, first int) []string {
	var args []string
	for i := first; i <= L.GetTop(); i++ {
		args = append(args, lua.LVAsString(L.Get(i)))
	}
	return args
}

// maxAddr is 2^64, the first number that does not fit an address
const maxAddr = float64(1 << 63) * 2

func checkAddr(L *lua.LState, n int) uint64 {
	switch v := L.Get(n).(type) {
	case lua.LNumber:
		f := float64(v)
		switch {
		case f < 0:
			L.ArgError(n, "address must not be negative")
		case f >= maxAddr:
			L.ArgError(n, "address does not fit in 64 bits, pass it as a string")
		case f != math.Trunc(f):
			L.ArgError(n, "address must be an integer")
		}
		return uint64(f)
	case lua.LString:
		addr, err := core.StrToNum(string(v))
		if err != nil {
			L.ArgError(n, fmt.Sprintf("invalid address %q: %v", string(v), err))
		}
		return addr
	default:
		L.TypeError(n, lua.LTNumber)
		return 0
	}
}
