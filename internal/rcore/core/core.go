// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     core
// Description: Execution context owning the command registry, the location
//              cursor, output sinks and display palette
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/buildkite/shellwords"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	rairerror "github.com/msto63/rair/foundation/core/error"
	rairlog "github.com/msto63/rair/foundation/core/log"
	"github.com/msto63/rair/internal/rcore/commands"
)

const (
	// SuggestDistance is the largest edit distance offered as a suggestion
	SuggestDistance = 2

	// DefaultMaxNesting bounds commands dispatched from inside other commands
	DefaultMaxNesting = 32
)

// DefaultPalette is the display palette, indexed 0-8
var DefaultPalette = []string{
	"#586875",
	"#b58900",
	"#cb4b16",
	"#dc322f",
	"#d33682",
	"#6c71c4",
	"#268bd2",
	"#2aa198",
	"#859900",
}

// Options configures a Core
type Options struct {
	// Registry is shared with the front end. A new one is created when nil.
	Registry *commands.Registry[Cmd]
	// IO is the address space engine. Required.
	IO     AddressSpace
	Stdout io.Writer
	Stderr io.Writer
	Logger *rairlog.Logger
	// Palette overrides DefaultPalette; it must hold 9 colors.
	Palette []string
	// Color enables ANSI styling of output.
	Color      bool
	MaxNesting int
}

// Core is the execution context handed to every command
type Core struct {
	commands *commands.Registry[Cmd]
	io       AddressSpace
	loc      uint64
	mode     AddrMode

	stdout   io.Writer
	stderr   io.Writer
	color    bool
	renderer *lipgloss.Renderer
	colors   []string
	palette  []lipgloss.Style
	bold     lipgloss.Style

	logger     *rairlog.Logger
	maxNesting int
	depth      int
	quit       bool
	history    []string
}

// New creates a Core. Built-in commands are not registered here.
func New(opts Options) (*Core, error) {
	if opts.IO == nil {
		return nil, rairerror.New("address space engine is required").
			WithCode(rairerror.CodeInvalidInput).
			WithOperation("core.New")
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette
	}
	if len(opts.Palette) != len(DefaultPalette) {
		return nil, rairerror.Newf("palette needs %d colors, got %d", len(DefaultPalette), len(opts.Palette)).
			WithCode(rairerror.CodeInvalidInput).
			WithOperation("core.New")
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = rairlog.GetDefault()
	}
	if opts.MaxNesting <= 0 {
		opts.MaxNesting = DefaultMaxNesting
	}
	if opts.Registry == nil {
		opts.Registry = commands.NewRegistry[Cmd](commands.Options{Logger: opts.Logger})
	}

	c := &Core{
		commands:   opts.Registry,
		io:         opts.IO,
		mode:       Phy,
		color:      opts.Color,
		logger:     opts.Logger.WithField("component", "core"),
		maxNesting: opts.MaxNesting,
	}
	c.colors = append([]string(nil), opts.Palette...)
	c.SetOutput(opts.Stdout, opts.Stderr)

	return c, nil
}

// SetOutput replaces the output and error sinks
func (c *Core) SetOutput(stdout, stderr io.Writer) {
	c.stdout = stdout
	c.stderr = stderr
	c.renderer = lipgloss.NewRenderer(stdout)
	if c.color {
		c.renderer.SetColorProfile(termenv.TrueColor)
	} else {
		c.renderer.SetColorProfile(termenv.Ascii)
	}

	c.palette = make([]lipgloss.Style, len(c.colors))
	for i, color := range c.colors {
		c.palette[i] = c.renderer.NewStyle().Foreground(lipgloss.Color(color))
	}
	c.bold = c.renderer.NewStyle().Bold(true)
}

// Out returns the output sink
func (c *Core) Out() io.Writer {
	return c.stdout
}

// Err returns the error sink
func (c *Core) Err() io.Writer {
	return c.stderr
}

// Paint renders s in palette color i
func (c *Core) Paint(i int, s string) string {
	return c.palette[i].Render(s)
}

// Bold renders s in bold
func (c *Core) Bold(s string) string {
	return c.bold.Render(s)
}

// Color reports whether output is styled
func (c *Core) Color() bool {
	return c.color
}

// PaletteColors returns the palette as hex colors
func (c *Core) PaletteColors() []string {
	return append([]string(nil), c.colors...)
}

// Commands returns the registry shared with the front end
func (c *Core) Commands() *commands.Registry[Cmd] {
	return c.commands
}

// IO returns the address space engine
func (c *Core) IO() AddressSpace {
	return c.io
}

// Logger returns the core logger
func (c *Core) Logger() *rairlog.Logger {
	return c.logger
}

// SetLoc moves the location cursor
func (c *Core) SetLoc(loc uint64) {
	c.loc = loc
}

// Loc returns the location cursor
func (c *Core) Loc() uint64 {
	return c.loc
}

// Mode returns the address interpretation mode
func (c *Core) Mode() AddrMode {
	return c.mode
}

// SetMode sets the address interpretation mode
func (c *Core) SetMode(mode AddrMode) {
	c.mode = mode
}

// Quit asks the front end to end the session
func (c *Core) Quit() {
	c.quit = true
}

// ShouldQuit reports whether Quit was called
func (c *Core) ShouldQuit() bool {
	return c.quit
}

// AddCommand registers h under long and short. Each non-empty name is tried
// on its own; a collision is reported and does not stop the other one.
func (c *Core) AddCommand(long, short string, h Cmd) {
	for _, name := range []string{long, short} {
		if name == "" {
			continue
		}
		if !c.commands.Add(name, h) {
			msg := fmt.Sprintf("Command %s already existed.", c.Bold(name))
			ErrorMsg(c, rairerror.CodeDuplicateRegistration, "Cannot add this command.", msg)
		}
	}
}

// Run dispatches command with args. A miss is reported together with the
// registered names within SuggestDistance.
func (c *Core) Run(command string, args []string) {
	if c.depth >= c.maxNesting {
		msg := fmt.Sprintf("Maximum command nesting depth (%d) exceeded.", c.maxNesting)
		ErrorMsg(c, rairerror.CodeNestingDepthExceeded, "Execution failed", msg)
		return
	}

	cmd, ok := c.commands.Find(command)
	if !ok {
		c.commandNotFound(command)
		return
	}

	c.depth++
	defer func() { c.depth-- }()

	c.logger.Debug("Dispatching command", rairlog.Fields{
		"command": command,
		"args":    len(args),
		"loc":     c.loc,
		"depth":   c.depth,
	})
	cmd.Run(c, args)
}

// RunAt runs command with the location cursor set to at. The previous
// location is restored afterwards, also when the command panics.
func (c *Core) RunAt(command string, args []string, at uint64) {
	saved := c.loc
	c.loc = at
	defer func() { c.loc = saved }()

	c.Run(command, args)
}

// Help prints the usage of command
func (c *Core) Help(command string) {
	cmd, ok := c.commands.Find(command)
	if !ok {
		c.commandNotFound(command)
		return
	}
	cmd.Help(c)
}

// Exec splits line into words and dispatches it. A trailing "?" on the
// command word prints help instead. Panics raised by a handler are reported
// and do not end the session.
func (c *Core) Exec(line string) {
	words, err := shellwords.SplitPosix(line)
	if err != nil {
		ErrorMsg(c, rairerror.CodeCommandLineSyntax, "Failed to parse command line", err.Error())
		return
	}
	if len(words) == 0 {
		return
	}
	c.history = append(c.history, line)

	name, args := words[0], words[1:]

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("Command %s panicked: %v", c.Bold(name), r)
			ErrorMsg(c, rairerror.CodeInternal, "Execution failed", msg)
		}
	}()

	if len(name) > 1 && strings.HasSuffix(name, "?") {
		c.Help(strings.TrimSuffix(name, "?"))
		return
	}
	c.Run(name, args)
}

// History returns the lines executed in this session, oldest first
func (c *Core) History() []string {
	return append([]string(nil), c.history...)
}

// Close releases the address space engine when it holds resources
func (c *Core) Close() error {
	if closer, ok := c.io.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Core) commandNotFound(command string) {
	msg := fmt.Sprintf("Command %s is not found.", c.Bold(command))
	ErrorMsg(c, rairerror.CodeCommandNotFound, "Execution failed", msg)

	similar := c.commands.Suggest(command, SuggestDistance)
	if len(similar) == 0 {
		return
	}
	painted := make([]string, len(similar))
	for i, name := range similar {
		painted[i] = c.Paint(5, name)
	}
	fmt.Fprintf(c.stderr, "Similar command: %s.\n", strings.Join(painted, ", "))
}
