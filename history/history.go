// Package history stores explicitly saved SMART reports and benchmark
// results in a local SQLite database. Nothing is written here unless
// the user asks for it; routine scans stay in memory.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/dhealth/diskscope/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	device       TEXT NOT NULL,
	disk_type    TEXT NOT NULL,
	overall      TEXT NOT NULL,
	warn_count   INTEGER NOT NULL,
	attr_count   INTEGER NOT NULL,
	collected_at TEXT NOT NULL,
	payload      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_device ON reports(device, collected_at);

CREATE TABLE IF NOT EXISTS benchmarks (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	device        TEXT NOT NULL,
	started_at    TEXT NOT NULL,
	block_size    INTEGER NOT NULL,
	sample_count  INTEGER NOT NULL,
	avg_read_mbps REAL NOT NULL,
	min_read_mbps REAL NOT NULL,
	max_read_mbps REAL NOT NULL,
	avg_access_ms REAL NOT NULL,
	payload       TEXT NOT NULL
);
`

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// SQLite supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("history store opened")
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveReport stores a full report and returns its row id. Timestamps
// are stored as UTC RFC3339 text so lexicographic order is
// chronological order.
func (s *Store) SaveReport(r *model.SmartReport) (int64, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("encode report: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO reports (device, disk_type, overall, warn_count, attr_count, collected_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Device, string(r.Type), r.Overall, r.WarnCount(), len(r.Attributes),
		r.Collected.UTC().Format(time.RFC3339), string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	return res.LastInsertId()
}

// SaveBenchmark stores a benchmark result and returns its row id.
func (s *Store) SaveBenchmark(r *model.BenchmarkResult) (int64, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("encode benchmark: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO benchmarks (device, started_at, block_size, sample_count,
		 avg_read_mbps, min_read_mbps, max_read_mbps, avg_access_ms, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Device, r.Started.UTC().Format(time.RFC3339), r.BlockSize, len(r.Samples),
		r.AvgReadMBps, r.MinReadMBps, r.MaxReadMBps, r.AvgAccessMs, string(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("insert benchmark: %w", err)
	}
	return res.LastInsertId()
}

// ReportSummary is one row of the reports listing.
type ReportSummary struct {
	ID        int64
	Device    string
	Type      model.DiskType
	Overall   string
	WarnCount int
	AttrCount int
	Collected time.Time
}

// ListReports returns the most recent stored reports, newest first.
func (s *Store) ListReports(limit int) ([]ReportSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, device, disk_type, overall, warn_count, attr_count, collected_at
		 FROM reports ORDER BY collected_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []ReportSummary
	for rows.Next() {
		var r ReportSummary
		var diskType, collected string
		if err := rows.Scan(&r.ID, &r.Device, &diskType, &r.Overall, &r.WarnCount, &r.AttrCount, &collected); err != nil {
			return nil, err
		}
		r.Type = model.DiskType(diskType)
		r.Collected, _ = time.Parse(time.RFC3339, collected)
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetReport loads a stored report by id.
func (s *Store) GetReport(id int64) (*model.SmartReport, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load report %d: %w", id, err)
	}
	var r model.SmartReport
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode report %d: %w", id, err)
	}
	return &r, nil
}

// BenchSummary is one row of the benchmarks listing.
type BenchSummary struct {
	ID          int64
	Device      string
	Started     time.Time
	SampleCount int
	AvgReadMBps float64
	AvgAccessMs float64
}

// ListBenchmarks returns the most recent stored benchmarks, newest
// first.
func (s *Store) ListBenchmarks(limit int) ([]BenchSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, device, started_at, sample_count, avg_read_mbps, avg_access_ms
		 FROM benchmarks ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list benchmarks: %w", err)
	}
	defer rows.Close()

	var out []BenchSummary
	for rows.Next() {
		var b BenchSummary
		var started string
		if err := rows.Scan(&b.ID, &b.Device, &started, &b.SampleCount, &b.AvgReadMBps, &b.AvgAccessMs); err != nil {
			return nil, err
		}
		b.Started, _ = time.Parse(time.RFC3339, started)
		out = append(out, b)
	}
	return out, rows.Err()
}
