// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     project
// Description: save and load commands
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

// Package project persists sessions into SQLite project files.
package project

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	rairerror "github.com/msto63/rair/foundation/core/error"
	rairlog "github.com/msto63/rair/foundation/core/log"
	"github.com/msto63/rair/internal/rcore/core"
)

// Register adds save and load to c
func Register(c *core.Core) {
	c.AddCommand("save", "", NewSave())
	c.AddCommand("load", "", NewLoad())
}

// Snapshot captures the persisted state of c
func Snapshot(c *core.Core) *Project {
	p := &Project{
		Loc:     c.Loc(),
		Mode:    c.Mode(),
		SavedAt: time.Now(),
	}
	for m := range c.IO().Maps() {
		p.Maps = append(p.Maps, m)
	}
	return p
}

// Save writes the session into a project file
type Save struct{}

// NewSave creates the save command
func NewSave() *Save {
	return &Save{}
}

func (s *Save) Run(c *core.Core, args []string) {
	if len(args) != 1 {
		core.Expect(c, len(args), 1)
		return
	}

	if err := saveFile(context.Background(), args[0], Snapshot(c)); err != nil {
		core.ErrorMsg(c, rairerror.CodeStorageError, "Failed to save project", err.Error())
		return
	}
	c.Logger().Debug("Project saved", rairlog.Fields{"path": args[0]})
}

func (s *Save) Help(c *core.Core) {
	core.HelpMsg(c, "save", "", []core.Usage{
		{Args: "[file]", Description: "Save location, mode and memory maps into a project file."},
	})
}

func saveFile(ctx context.Context, path string, p *Project) error {
	store, err := Create(path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Save(ctx, p)
}

// Load restores a session from a project file. Mappings are added to the
// current address space one by one; each failing mapping is reported and
// the rest are still applied.
type Load struct{}

// NewLoad creates the load command
func NewLoad() *Load {
	return &Load{}
}

func (l *Load) Run(c *core.Core, args []string) {
	if len(args) != 1 {
		core.Expect(c, len(args), 1)
		return
	}

	p, err := loadFile(context.Background(), args[0])
	if err != nil {
		core.ErrorMsg(c, rairerror.CodeStorageError, "Failed to load project", err.Error())
		return
	}

	for _, m := range p.Maps {
		if err := c.IO().Map(m.PhyAddr, m.VirtAddr, m.Size); err != nil {
			msg := fmt.Sprintf("Cannot map 0x%x: %s", m.VirtAddr, err)
			core.ErrorMsg(c, rairerror.CodeMappingOperationFailure, "Failed to load project", msg)
		}
	}
	c.SetMode(p.Mode)
	c.SetLoc(p.Loc)

	c.Logger().Debug("Project loaded", rairlog.Fields{"path": args[0], "maps": len(p.Maps)})
}

func (l *Load) Help(c *core.Core) {
	core.HelpMsg(c, "load", "", []core.Usage{
		{Args: "[file]", Description: "Restore location, mode and memory maps from a project file."},
	})
}

func loadFile(ctx context.Context, path string) (*Project, error) {
	store, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.Load(ctx)
}

func sortMappings(maps []core.Mapping) {
	slices.SortFunc(maps, func(a, b core.Mapping) int {
		return cmp.Compare(a.VirtAddr, b.VirtAddr)
	})
}
