package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Persisted state keys. Everything lives in the habitkv table as whole-object
// JSON values; writes replace the entire value for a key.
const (
	KeySettings       = "settings"
	KeyGoals          = "goals"
	KeyStats          = "stats"
	KeyCurrentSession = "current_session"
	KeySessionsView   = "sessions"
)

// KV is the key-value store contract: get-or-absent, whole-value set, delete.
// There is no cross-key atomicity and no compare-and-swap; callers do plain
// read-modify-write and accept last-write-wins.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// SQLiteKV implements KV on top of the habitkv table
type SQLiteKV struct {
	db *sql.DB
}

// NewSQLiteKV creates a SQLiteKV over an open database
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Get returns the value for a key, with ok=false when the key is absent
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM habitkv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q failed: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value, replacing any previous value for the key
func (s *SQLiteKV) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO habitkv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("set %q failed: %w", key, err)
	}
	return nil
}

// Delete removes keys; missing keys are not an error
func (s *SQLiteKV) Delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec("DELETE FROM habitkv WHERE key = ?", key); err != nil {
			return fmt.Errorf("delete %q failed: %w", key, err)
		}
	}
	return nil
}

// Store provides typed access to the persisted state. Absent keys decode to
// zero values rather than errors, matching the get-or-absent contract.
type Store struct {
	kv KV
}

// NewStore creates a Store over a key-value backend
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) load(key string, v interface{}) (bool, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) save(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return s.kv.Set(key, string(data))
}

// Settings loads the settings, falling back to defaults when unset
func (s *Store) Settings() (*Settings, error) {
	settings := DefaultSettings()
	if _, err := s.load(KeySettings, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings persists the settings
func (s *Store) SaveSettings(settings *Settings) error {
	return s.save(KeySettings, settings)
}

// Goals loads the goal collection; absent means no goals
func (s *Store) Goals() ([]*Goal, error) {
	var goals []*Goal
	if _, err := s.load(KeyGoals, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// SaveGoals persists the whole goal collection
func (s *Store) SaveGoals(goals []*Goal) error {
	return s.save(KeyGoals, goals)
}

// AllStats loads the full stats-by-date mapping
func (s *Store) AllStats() (map[string]*DayStats, error) {
	stats := make(map[string]*DayStats)
	if _, err := s.load(KeyStats, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// SaveAllStats persists the full stats-by-date mapping
func (s *Store) SaveAllStats(stats map[string]*DayStats) error {
	return s.save(KeyStats, stats)
}

// Stats loads one day's stats, or nil when the date has no entry
func (s *Store) Stats(date string) (*DayStats, error) {
	all, err := s.AllStats()
	if err != nil {
		return nil, err
	}
	return all[date], nil
}

// SaveStats persists one day's stats inside the stats mapping
func (s *Store) SaveStats(date string, day *DayStats) error {
	all, err := s.AllStats()
	if err != nil {
		return err
	}
	all[date] = day
	return s.SaveAllStats(all)
}

// CurrentSession loads the current session record, or nil when tracking is idle
func (s *Store) CurrentSession() (*Session, error) {
	var session *Session
	if _, err := s.load(KeyCurrentSession, &session); err != nil {
		return nil, err
	}
	return session, nil
}

// SaveCurrentSession persists the current session record
func (s *Store) SaveCurrentSession(session *Session) error {
	return s.save(KeyCurrentSession, session)
}

// ClearCurrentSession removes the current session record
func (s *Store) ClearCurrentSession() error {
	return s.kv.Delete(KeyCurrentSession)
}

// SessionsView loads the derived legacy sessions collection
func (s *Store) SessionsView() ([]*SessionRecord, error) {
	var records []*SessionRecord
	if _, err := s.load(KeySessionsView, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveSessionsView persists the derived legacy sessions collection
func (s *Store) SaveSessionsView(records []*SessionRecord) error {
	return s.save(KeySessionsView, records)
}

// ClearData deletes all tracked stats and session data. Settings and goals
// are preserved.
func (s *Store) ClearData() error {
	return s.kv.Delete(KeyStats, KeyCurrentSession, KeySessionsView)
}
