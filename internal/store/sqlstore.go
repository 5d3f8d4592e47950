package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Satria0ibnu/deftection-sub000/internal/defect"
)

const schema = `
CREATE TABLE IF NOT EXISTS scans (
	id               TEXT PRIMARY KEY,
	created_at       TIMESTAMP NOT NULL,
	source           TEXT NOT NULL,
	image_width      INTEGER NOT NULL,
	image_height     INTEGER NOT NULL,
	detected_defect  TEXT NOT NULL DEFAULT '',
	confidence       REAL NOT NULL DEFAULT 0,
	selection_reason TEXT NOT NULL,
	corrected        INTEGER NOT NULL DEFAULT 0,
	severity         TEXT NOT NULL DEFAULT '',
	region           TEXT,
	distribution     TEXT
);
CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans (created_at DESC);
`

// SqlStore persists scans in a SQLite database file.
type SqlStore struct {
	db *sql.DB
}

var _ Store = (*SqlStore)(nil)

// OpenSql opens (and creates if needed) the SQLite database at path and
// applies the schema.
func OpenSql(path string) (*SqlStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &SqlStore{db: db}, nil
}

// SaveScan inserts the scan, assigning ID and CreatedAt when unset.
func (s *SqlStore) SaveScan(scan *Scan) (string, error) {
	if scan.ID == "" {
		scan.ID = uuid.NewString()
	}
	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now().UTC()
	}

	region, err := marshalNullable(scan.Region)
	if err != nil {
		return "", fmt.Errorf("store: encode region: %w", err)
	}
	dist, err := marshalNullable(scan.Distribution)
	if err != nil {
		return "", fmt.Errorf("store: encode distribution: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO scans
			(id, created_at, source, image_width, image_height,
			 detected_defect, confidence, selection_reason, corrected,
			 severity, region, distribution)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scan.ID, scan.CreatedAt, scan.Source, scan.ImageWidth, scan.ImageHeight,
		scan.DetectedDefect, scan.Confidence, scan.SelectionReason, scan.Corrected,
		scan.Severity, region, dist,
	)
	if err != nil {
		return "", fmt.Errorf("store: insert scan: %w", err)
	}
	return scan.ID, nil
}

// GetScan fetches one scan by id.
func (s *SqlStore) GetScan(id string) (*Scan, error) {
	row := s.db.QueryRow(
		`SELECT id, created_at, source, image_width, image_height,
			detected_defect, confidence, selection_reason, corrected,
			severity, region, distribution
		 FROM scans WHERE id = ?`, id)

	scan, err := scanRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get scan: %w", err)
	}
	return scan, nil
}

// ListScans returns the most recent scans, newest first.
func (s *SqlStore) ListScans(limit int) ([]*Scan, error) {
	query := `SELECT id, created_at, source, image_width, image_height,
			detected_defect, confidence, selection_reason, corrected,
			severity, region, distribution
		 FROM scans ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list scans: %w", err)
	}
	defer rows.Close()

	var scans []*Scan
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list scans: %w", err)
		}
		scans = append(scans, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list scans: %w", err)
	}
	return scans, nil
}

// Close closes the database.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*Scan, error) {
	var (
		scan   Scan
		region sql.NullString
		dist   sql.NullString
	)
	err := row.Scan(
		&scan.ID, &scan.CreatedAt, &scan.Source, &scan.ImageWidth, &scan.ImageHeight,
		&scan.DetectedDefect, &scan.Confidence, &scan.SelectionReason, &scan.Corrected,
		&scan.Severity, &region, &dist,
	)
	if err != nil {
		return nil, err
	}

	if region.Valid && region.String != "" {
		var r defect.Region
		if err := json.Unmarshal([]byte(region.String), &r); err != nil {
			return nil, fmt.Errorf("decode region: %w", err)
		}
		scan.Region = &r
	}
	if dist.Valid && dist.String != "" {
		if err := json.Unmarshal([]byte(dist.String), &scan.Distribution); err != nil {
			return nil, fmt.Errorf("decode distribution: %w", err)
		}
	}
	return &scan, nil
}

// marshalNullable encodes v as JSON, mapping nil to a SQL NULL.
func marshalNullable(v any) (any, error) {
	switch t := v.(type) {
	case *defect.Region:
		if t == nil {
			return nil, nil
		}
	case map[string]defect.ClassStat:
		if t == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
