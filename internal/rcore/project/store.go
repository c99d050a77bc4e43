// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     project
// Description: SQLite project files holding the location, address mode and
//              memory mappings of a session
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	rairerror "github.com/msto63/rair/foundation/core/error"
	"github.com/msto63/rair/internal/rcore/core"
)

// SchemaVersion is written into every project file
const SchemaVersion = 1

// Project is the persisted part of a session
type Project struct {
	Loc     uint64
	Mode    core.AddrMode
	Maps    []core.Mapping
	SavedAt time.Time
}

// Store is an open project file
type Store struct {
	db   *sql.DB
	path string
}

// Create opens path for writing, creating the file and its directory when
// missing.
func Create(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, rairerror.Wrap(err, "failed to create project directory").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}
	return open(path, path+"?_busy_timeout=5000", true)
}

// Open opens an existing project file read-only. The file is never written,
// so opening a database that is not a project leaves it untouched.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, rairerror.Wrap(err, "failed to open project").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro&_busy_timeout=5000"
	return open(path, dsn, false)
}

func open(path, dsn string, writable bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, rairerror.Wrap(err, "failed to open project").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}

	s := &Store{db: db, path: path}
	if !writable {
		return s, nil
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, rairerror.Wrap(err, "failed to initialize project schema").
			WithCode(rairerror.CodeStorageError).
			WithDetail("path", path)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	-- addresses are stored as the bit pattern of the uint64
	CREATE TABLE IF NOT EXISTS mappings (
		vaddr INTEGER PRIMARY KEY,
		paddr INTEGER NOT NULL,
		size INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Path returns the file the store was opened on
func (s *Store) Path() string {
	return s.path
}

// Close closes the project file
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the file contents with p
func (s *Store) Save(ctx context.Context, p *Project) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM meta`); err != nil {
		return fmt.Errorf("failed to clear meta: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM mappings`); err != nil {
		return fmt.Errorf("failed to clear mappings: %w", err)
	}

	meta := map[string]string{
		"version":  strconv.Itoa(SchemaVersion),
		"loc":      strconv.FormatUint(p.Loc, 10),
		"mode":     p.Mode.String(),
		"saved_at": p.SavedAt.UTC().Format(time.RFC3339),
	}
	for key, value := range meta {
		if _, err = tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	for _, m := range p.Maps {
		_, err = tx.ExecContext(ctx, `INSERT INTO mappings (vaddr, paddr, size) VALUES (?, ?, ?)`,
			int64(m.VirtAddr), int64(m.PhyAddr), int64(m.Size))
		if err != nil {
			return fmt.Errorf("failed to write mapping 0x%x: %w", m.VirtAddr, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit project: %w", err)
	}
	return nil
}

// Load reads the project stored in the file
func (s *Store) Load(ctx context.Context) (*Project, error) {
	var tables int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('meta', 'mappings')`,
	).Scan(&tables)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	if tables != 2 {
		return nil, errors.New("not a project file")
	}

	meta, err := s.loadMeta(ctx)
	if err != nil {
		return nil, err
	}

	version, ok := meta["version"]
	if !ok {
		return nil, errors.New("not a project file")
	}
	if version != strconv.Itoa(SchemaVersion) {
		return nil, fmt.Errorf("unsupported project version %s", version)
	}

	p := &Project{}
	if p.Loc, err = strconv.ParseUint(meta["loc"], 10, 64); err != nil {
		return nil, fmt.Errorf("invalid location: %w", err)
	}
	mode, ok := core.ParseAddrMode(meta["mode"])
	if !ok {
		return nil, fmt.Errorf("invalid mode %q", meta["mode"])
	}
	p.Mode = mode
	if savedAt, err := time.Parse(time.RFC3339, meta["saved_at"]); err == nil {
		p.SavedAt = savedAt
	}

	rows, err := s.db.QueryContext(ctx, `SELECT vaddr, paddr, size FROM mappings`)
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var vaddr, paddr, size int64
		if err := rows.Scan(&vaddr, &paddr, &size); err != nil {
			return nil, fmt.Errorf("failed to scan mapping: %w", err)
		}
		p.Maps = append(p.Maps, core.Mapping{
			VirtAddr: uint64(vaddr),
			PhyAddr:  uint64(paddr),
			Size:     uint64(size),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mappings: %w", err)
	}

	// signed rowid order differs from address order above 1<<63
	sortMappings(p.Maps)
	return p, nil
}

func (s *Store) loadMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to read meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan meta: %w", err)
		}
		meta[key] = value
	}
	return meta, rows.Err()
}
