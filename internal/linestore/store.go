package linestore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"isynspec/internal/synspec"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases must then be recreated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrListNotFound indicates the named line list is not in the store.
var ErrListNotFound = errors.New("line list not found")

// ListInfo summarizes a stored line list.
type ListInfo struct {
	Name       string
	Lines      int
	MinAlam    float64
	MaxAlam    float64
	ImportedAt time.Time
}

// Store persists atomic line lists in SQLite for wavelength-range queries.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the line database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Import stores lines under name, replacing any list previously imported
// with that name. The whole import is one transaction.
func (s *Store) Import(ctx context.Context, name string, lines []synspec.Line) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM line_lists WHERE name = ?", name); err != nil {
		return fmt.Errorf("replace list: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO line_lists (name, imported_at) VALUES (?, ?)",
		name, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert list: %w", err)
	}
	listID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO lines (
            list_id, alam, anum, gf, excl, ql, excu, qu, agam, gs, gw,
            wgr1, wgr2, wgr3, wgr4, ilwn, iun, iprf
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, line := range lines {
		args := []any{
			listID, line.Alam, line.Anum, line.GF, line.Excl, line.QL,
			line.Excu, line.QU, line.Agam, line.GS, line.GW,
		}
		if b := line.Broadening; b != nil {
			args = append(args, b.WGR1, b.WGR2, b.WGR3, b.WGR4, b.ILWN, b.IUN, b.IPRF)
		} else {
			args = append(args, nil, nil, nil, nil, nil, nil, nil)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert line %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Lists returns a summary of every stored line list, ordered by name.
func (s *Store) Lists(ctx context.Context) ([]ListInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ll.name, ll.imported_at,
                COUNT(l.id), COALESCE(MIN(l.alam), 0), COALESCE(MAX(l.alam), 0)
         FROM line_lists ll
         LEFT JOIN lines l ON l.list_id = ll.id
         GROUP BY ll.id
         ORDER BY ll.name`)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}
	defer rows.Close()

	var infos []ListInfo
	for rows.Next() {
		var info ListInfo
		var imported string
		if err := rows.Scan(&info.Name, &imported, &info.Lines, &info.MinAlam, &info.MaxAlam); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, imported); err == nil {
			info.ImportedAt = ts
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// SelectRange returns the lines of the named list whose wavelength lies in
// [lo, hi], ordered by wavelength.
func (s *Store) SelectRange(ctx context.Context, name string, lo, hi float64) ([]synspec.Line, error) {
	listID, err := s.listID(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT alam, anum, gf, excl, ql, excu, qu, agam, gs, gw,
                wgr1, wgr2, wgr3, wgr4, ilwn, iun, iprf
         FROM lines
         WHERE list_id = ? AND alam BETWEEN ? AND ?
         ORDER BY alam`,
		listID, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	var lines []synspec.Line
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Export writes the named list, ordered by wavelength, to w in the fixed
// record format.
func (s *Store) Export(ctx context.Context, name string, w io.Writer) error {
	lines, err := s.All(ctx, name)
	if err != nil {
		return err
	}
	return synspec.WriteLineList(w, lines)
}

// All returns every line of the named list ordered by wavelength.
func (s *Store) All(ctx context.Context, name string) ([]synspec.Line, error) {
	listID, err := s.listID(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT alam, anum, gf, excl, ql, excu, qu, agam, gs, gw,
                wgr1, wgr2, wgr3, wgr4, ilwn, iun, iprf
         FROM lines
         WHERE list_id = ?
         ORDER BY alam`,
		listID)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	var lines []synspec.Line
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Delete removes the named list and its lines.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM line_lists WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrListNotFound, name)
	}
	return nil
}

func (s *Store) listID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM line_lists WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrListNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup list: %w", err)
	}
	return id, nil
}

func scanLine(rows *sql.Rows) (synspec.Line, error) {
	var line synspec.Line
	var wgr1, wgr2, wgr3, wgr4 sql.NullFloat64
	var ilwn, iun, iprf sql.NullInt64

	err := rows.Scan(
		&line.Alam, &line.Anum, &line.GF, &line.Excl, &line.QL,
		&line.Excu, &line.QU, &line.Agam, &line.GS, &line.GW,
		&wgr1, &wgr2, &wgr3, &wgr4, &ilwn, &iun, &iprf)
	if err != nil {
		return synspec.Line{}, fmt.Errorf("scan line: %w", err)
	}

	if wgr1.Valid {
		line.Broadening = &synspec.Broadening{
			WGR1: wgr1.Float64,
			WGR2: wgr2.Float64,
			WGR3: wgr3.Float64,
			WGR4: wgr4.Float64,
			ILWN: int(ilwn.Int64),
			IUN:  int(iun.Int64),
			IPRF: int(iprf.Int64),
		}
	}
	return line, nil
}
