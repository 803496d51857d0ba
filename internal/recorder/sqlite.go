package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"IssuanceSentinel/internal/logging"
	"IssuanceSentinel/internal/model"
)

var log = logging.For("recorder")

// SQLiteRecorder persists block reports to a SQLite database.
// Amounts are stored as INTEGER; values above MaxInt64 are rejected by
// database/sql and surface as record errors.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS block_issuance (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			label          TEXT NOT NULL,
			height         INTEGER NOT NULL,
			epoch          INTEGER,
			base           INTEGER,
			window_spend   INTEGER,
			smoothed_spend REAL,
			multiplier     REAL,
			issuance       INTEGER,
			total_minted   INTEGER,
			capped         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_block_label_height ON block_issuance(label, height)`,

		`CREATE TABLE IF NOT EXISTS issuance_mismatches (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			label     TEXT NOT NULL,
			height    INTEGER NOT NULL,
			expected  INTEGER,
			observed  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mismatch_height ON issuance_mismatches(height)`,

		`CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			label         TEXT NOT NULL,
			from_height   INTEGER,
			to_height     INTEGER,
			blocks        INTEGER,
			issued        INTEGER,
			total_minted  INTEGER,
			capped_blocks INTEGER,
			mismatches    INTEGER,
			started_at    INTEGER,
			finished_at   INTEGER
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordBlock(label string, rep *model.BlockReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO block_issuance
		(timestamp, label, height, epoch, base, window_spend, smoothed_spend,
		 multiplier, issuance, total_minted, capped)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), label, rep.Height, rep.Epoch, rep.Base, rep.WindowSpend,
		rep.SmoothedSpend, rep.Multiplier, rep.Issuance, rep.TotalMinted, rep.Capped,
	)
	return err
}

func (r *SQLiteRecorder) RecordMismatch(label string, mm *model.Mismatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO issuance_mismatches
		(timestamp, label, height, expected, observed)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), label, mm.Height, mm.Expected, mm.Observed,
	)
	return err
}

func (r *SQLiteRecorder) RecordRun(sum *model.RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs
		(label, from_height, to_height, blocks, issued, total_minted,
		 capped_blocks, mismatches, started_at, finished_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		sum.Label, sum.FromHeight, sum.ToHeight, sum.Blocks, sum.Issued, sum.TotalMinted,
		sum.CappedBlocks, sum.Mismatches, sum.StartedAt.Unix(), sum.FinishedAt.Unix(),
	)
	return err
}

// BlockCount returns how many block reports are stored for label.
func (r *SQLiteRecorder) BlockCount(label string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM block_issuance WHERE label = ?`, label).Scan(&n)
	return n, err
}

// LastTotalMinted returns the total minted after the highest recorded height
// for label.
func (r *SQLiteRecorder) LastTotalMinted(label string) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total int64
	err := r.db.QueryRow(`SELECT total_minted FROM block_issuance
		WHERE label = ? ORDER BY height DESC LIMIT 1`, label).Scan(&total)
	if err != nil {
		return 0, err
	}
	return uint64(total), nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}
