// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     shell
// Description: History file shared with the line editor front end
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package shell

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	rairerror "github.com/msto63/rair/foundation/core/error"
)

// loadHistory reads the last limit lines of path. A missing file is an
// empty history. When the file holds more than limit lines it is rewritten
// with the kept ones, the same way the line editor trims it.
func loadHistory(path string, limit int) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, rairerror.Wrap(err, "cannot open history file").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, rairerror.Wrap(err, "cannot read history file").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}

	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
		if err := writeHistory(path, lines); err != nil {
			return lines, err
		}
	}
	return lines, nil
}

func writeHistory(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return rairerror.Wrap(err, "cannot rewrite history file").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}
	return nil
}

// appendHistory adds line to path, creating the file and its directory
func appendHistory(path, line string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return rairerror.Wrap(err, "cannot create history directory").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return rairerror.Wrap(err, "cannot open history file").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return rairerror.Wrap(err, "cannot append to history file").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}
	return nil
}
