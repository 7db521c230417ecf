// Package store manages SQLite persistence for dosewatch.
//
// The record list is persisted as a whole snapshot: Load reads every record
// at startup and Replace rewrites the full list after every state change,
// last write wins. There is no incremental persistence and no log — a single
// local snapshot is the entire durability model.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lpmorais/dosewatch/pkg/model"

	_ "modernc.org/sqlite"
)

// Store manages all SQLite operations with WAL mode for concurrent access
// (the watch daemon and CLI commands may hit the same snapshot).
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database and initializes the schema.
func New(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// retryOnContention wraps retryOp from retry.go with the default config.
// All store write operations should use this to handle transient SQLite
// errors (BUSY, LOCKED, IOERR_SHORT_READ) under concurrent access.
func retryOnContention(fn func() error) error {
	return retryOp(defaultRetryConfig, fn)
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS medications (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		dosage_label    TEXT NOT NULL DEFAULT '',
		notes           TEXT NOT NULL DEFAULT '',
		posology        TEXT NOT NULL,
		dose_amount     REAL NOT NULL DEFAULT 1,
		frequency_hours REAL NOT NULL DEFAULT 0,
		schedule_times  TEXT NOT NULL DEFAULT '[]',
		stock           REAL,
		next_dose_at    TEXT,
		notified        INTEGER NOT NULL DEFAULT 0,
		taken_count     INTEGER NOT NULL DEFAULT 0,
		total_doses     INTEGER,
		finished        INTEGER NOT NULL DEFAULT 0,
		last_taken_at   TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_medications_next_dose ON medications(next_dose_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the full medication snapshot, ordered by creation time so the
// in-memory list is stable across runs.
func (s *Store) Load() ([]model.Medication, error) {
	rows, err := s.db.Query(
		`SELECT id, name, dosage_label, notes, posology, dose_amount,
		        frequency_hours, schedule_times, stock, next_dose_at,
		        notified, taken_count, total_doses, finished, last_taken_at,
		        created_at, updated_at
		 FROM medications ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []model.Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

// Replace rewrites the full snapshot in one transaction: the previous list
// is dropped and the given one inserted, so no partial update is ever
// observable by a concurrent Load.
func (s *Store) Replace(meds []model.Medication) error {
	return retryOnContention(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

		if _, err := tx.Exec(`DELETE FROM medications`); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}

		for _, m := range meds {
			times, err := json.Marshal(m.ScheduleTimes)
			if err != nil {
				return fmt.Errorf("marshal schedule times for %s: %w", m.Name, err)
			}
			_, err = tx.Exec(
				`INSERT INTO medications
				   (id, name, dosage_label, notes, posology, dose_amount,
				    frequency_hours, schedule_times, stock, next_dose_at,
				    notified, taken_count, total_doses, finished, last_taken_at,
				    created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				m.ID.String(), m.Name, m.DosageLabel, m.Notes, string(m.Posology),
				m.DoseAmount, m.FrequencyHours, string(times),
				nullFloat(m.Stock), nullTime(m.NextDoseAt),
				boolToInt(m.Notified), m.TakenCount, nullInt(m.TotalDoses),
				boolToInt(m.Finished), nullTime(m.LastTakenAt),
				m.CreatedAt.UTC().Format(time.RFC3339Nano),
				m.UpdatedAt.UTC().Format(time.RFC3339Nano),
			)
			if err != nil {
				return fmt.Errorf("insert medication %s: %w", m.Name, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit snapshot: %w", err)
		}
		return nil
	})
}

// Count returns the number of records in the snapshot.
func (s *Store) Count() int64 {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM medications`).Scan(&n); err != nil {
		return 0
	}
	return n
}

func scanMedication(rows *sql.Rows) (model.Medication, error) {
	var (
		m         model.Medication
		idStr     string
		posology  string
		timesJSON string
		stock     sql.NullFloat64
		nextDose  sql.NullString
		notified  int
		total     sql.NullInt64
		finished  int
		lastTaken sql.NullString
		created   string
		updated   string
	)
	if err := rows.Scan(&idStr, &m.Name, &m.DosageLabel, &m.Notes, &posology,
		&m.DoseAmount, &m.FrequencyHours, &timesJSON, &stock, &nextDose,
		&notified, &m.TakenCount, &total, &finished, &lastTaken,
		&created, &updated); err != nil {
		return model.Medication{}, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return model.Medication{}, fmt.Errorf("parse id for medication %s: %w", m.Name, err)
	}
	m.ID = id
	m.Posology = model.Posology(posology)
	m.Notified = notified != 0
	m.Finished = finished != 0

	if err := json.Unmarshal([]byte(timesJSON), &m.ScheduleTimes); err != nil {
		return model.Medication{}, fmt.Errorf("parse schedule times for %s: %w", m.Name, err)
	}
	if len(m.ScheduleTimes) == 0 {
		m.ScheduleTimes = nil
	}
	if stock.Valid {
		v := stock.Float64
		m.Stock = &v
	}
	if total.Valid {
		v := int(total.Int64)
		m.TotalDoses = &v
	}
	if m.NextDoseAt, err = parseNullTime(nextDose, "next_dose_at", m.Name); err != nil {
		return model.Medication{}, err
	}
	if m.LastTakenAt, err = parseNullTime(lastTaken, "last_taken_at", m.Name); err != nil {
		return model.Medication{}, err
	}
	if m.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return model.Medication{}, fmt.Errorf("parse created_at for %s: %w", m.Name, err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return model.Medication{}, fmt.Errorf("parse updated_at for %s: %w", m.Name, err)
	}
	return m, nil
}

func parseNullTime(v sql.NullString, column, name string) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, fmt.Errorf("parse %s for %s: %w", column, name, err)
	}
	return &t, nil
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
