// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     repl
// Description: Line editor front end feeding user input into the core
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	rairerror "github.com/msto63/rair/foundation/core/error"
	rairlog "github.com/msto63/rair/foundation/core/log"
	"github.com/msto63/rair/internal/rcore/core"
)

// Config holds line editor settings
type Config struct {
	HistoryFile  string
	HistoryLimit int
	VimMode      bool

	// Stdin, Stdout and Stderr default to the process streams
	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

// Shell is the interactive read-eval-print loop
type Shell struct {
	core   *core.Core
	rl     *readline.Instance
	logger *rairlog.Logger
}

// New creates a shell bound to c. The history file is loaded if it can be
// read; its directory is created when possible.
func New(c *core.Core, cfg Config) (*Shell, error) {
	logger := c.Logger().WithField("component", "repl")

	if cfg.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.HistoryFile), 0755); err != nil {
			logger.Debug("History directory not available", rairlog.Fields{
				"path":  cfg.HistoryFile,
				"error": err.Error(),
			})
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            Prompt(c),
		HistoryFile:       cfg.HistoryFile,
		HistoryLimit:      cfg.HistoryLimit,
		HistorySearchFold: true,
		AutoComplete:      NewCompleter(c.Commands()),
		Painter:           NewPainter(c),
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		VimMode:           cfg.VimMode,
		Stdin:             cfg.Stdin,
		Stdout:            cfg.Stdout,
		Stderr:            cfg.Stderr,
	})
	if err != nil {
		return nil, rairerror.Wrap(err, "failed to initialize line editor").
			WithCode(rairerror.CodeInternal)
	}

	c.SetOutput(rl.Stdout(), rl.Stderr())

	return &Shell{
		core:   c,
		rl:     rl,
		logger: logger,
	}, nil
}

// Run reads lines until quit, end of input or ctx is done. Ctrl-C clears
// the current line.
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Debug("Shell started")

	for !s.core.ShouldQuit() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.rl.SetPrompt(Prompt(s.core))
		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		s.core.Exec(line)
	}

	s.logger.Debug("Shell stopped")
	return nil
}

// Close restores the terminal
func (s *Shell) Close() error {
	return s.rl.Close()
}

// Prompt renders the prompt for the current location
func Prompt(c *core.Core) string {
	return c.Paint(7, fmt.Sprintf("[0x%08x]", c.Loc())) + "> "
}
