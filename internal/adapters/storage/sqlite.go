// Package storage provides the SQLite implementation of the state store: a
// single key-value table holding one JSON document per state kind.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pomoday/pomoday/internal/domain"
	"github.com/pomoday/pomoday/internal/ports"
)

// Document keys. One row per key; every save overwrites the row.
const (
	keySettings    = "settings"
	keySchedule    = "schedule"
	keySelectedDay = "selected_day"
	keyTimer       = "timer"
)

// sqliteStore implements ports.StateStore using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Ensure sqliteStore implements ports.StateStore.
var _ ports.StateStore = (*sqliteStore)(nil)

// New creates a SQLite-backed state store at dbPath.
func New(dbPath string) (ports.StateStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single pooled connection also keeps
	// :memory: databases coherent across queries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	store := &sqliteStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// NewMemory creates an in-memory state store for testing.
func NewMemory() (ports.StateStore, error) {
	return New(":memory:")
}

func (s *sqliteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// LoadSettings returns the persisted timer settings, or nil if absent.
// Malformed documents fall back to nil with a warning, never an error.
func (s *sqliteStore) LoadSettings() (*domain.TimerSettings, error) {
	var settings domain.TimerSettings
	ok, err := s.loadJSON(keySettings, &settings)
	if err != nil || !ok {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings persists the timer settings.
func (s *sqliteStore) SaveSettings(settings domain.TimerSettings) error {
	return s.saveJSON(keySettings, settings)
}

// LoadSchedule returns the persisted schedule state, or nil if absent.
func (s *sqliteStore) LoadSchedule() (domain.ScheduleState, error) {
	var state domain.ScheduleState
	ok, err := s.loadJSON(keySchedule, &state)
	if err != nil || !ok {
		return nil, err
	}
	return state, nil
}

// SaveSchedule persists the schedule state.
func (s *sqliteStore) SaveSchedule(state domain.ScheduleState) error {
	return s.saveJSON(keySchedule, state)
}

// LoadSelectedDay returns the persisted selected day key, or "".
func (s *sqliteStore) LoadSelectedDay() (string, error) {
	var key string
	ok, err := s.loadJSON(keySelectedDay, &key)
	if err != nil || !ok {
		return "", err
	}
	return key, nil
}

// SaveSelectedDay persists the selected day key.
func (s *sqliteStore) SaveSelectedDay(key string) error {
	return s.saveJSON(keySelectedDay, key)
}

// LoadTimerSnapshot returns the persisted engine state, or nil if absent.
func (s *sqliteStore) LoadTimerSnapshot() (*domain.TimerSnapshot, error) {
	var snap domain.TimerSnapshot
	ok, err := s.loadJSON(keyTimer, &snap)
	if err != nil || !ok {
		return nil, err
	}
	return &snap, nil
}

// SaveTimerSnapshot persists the engine state.
func (s *sqliteStore) SaveTimerSnapshot(snap domain.TimerSnapshot) error {
	return s.saveJSON(keyTimer, snap)
}

// loadJSON reads and decodes one document. A missing row returns (false,
// nil); a corrupt document is treated as missing so startup always succeeds.
func (s *sqliteStore) loadJSON(key string, dest any) (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: discarding malformed %s document: %v\n", key, err)
		return false, nil
	}
	return true, nil
}

func (s *sqliteStore) saveJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	query := `
		INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, key, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
