package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Collection keys. Each key maps to one JSON-serialized collection.
const (
	keyUserProfile = "daily_tracker_user"
	keyCatalog     = "daily_tracker_activities"
	keyLogs        = "daily_tracker_logs"
	keyDailyStats  = "daily_tracker_daily_stats"
	keySettings    = "daily_tracker_settings"
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath, runs migrations and
// seeds any missing collections.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS collections (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// seed writes defaults for any collection that is absent. Existing data is
// never touched, so reopening a populated database is a no-op.
func (s *Store) seed() error {
	now := time.Now().UTC()

	if ok, err := s.has(keyUserProfile); err != nil {
		return err
	} else if !ok {
		profile := UserProfile{
			ID:             "user_1",
			Name:           "User",
			CreatedAt:      now,
			LastActiveDate: now,
		}
		if err := s.SaveProfile(profile); err != nil {
			return err
		}
	}

	if ok, err := s.has(keyCatalog); err != nil {
		return err
	} else if !ok {
		if err := s.SaveCatalog(DefaultCatalog()); err != nil {
			return err
		}
	}

	if ok, err := s.has(keyLogs); err != nil {
		return err
	} else if !ok {
		if err := s.SaveLogs([]ActivityRecord{}); err != nil {
			return err
		}
	}

	if ok, err := s.has(keyDailyStats); err != nil {
		return err
	} else if !ok {
		if err := s.SaveDailyStats([]DailyStat{}); err != nil {
			return err
		}
	}

	if ok, err := s.has(keySettings); err != nil {
		return err
	} else if !ok {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return err
		}
	}

	return nil
}

// Reset drops every collection and reseeds the defaults.
func (s *Store) Reset() error {
	keys := []string{keyUserProfile, keyCatalog, keyLogs, keyDailyStats, keySettings}
	for _, k := range keys {
		if err := s.remove(k); err != nil {
			return fmt.Errorf("reset %q: %w", k, err)
		}
	}
	return s.seed()
}

func (s *Store) has(key string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM collections WHERE key = ?`, key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("probe %q: %w", key, err)
	}
	return n > 0, nil
}

// getJSON reads a collection into out. A missing key leaves out untouched
// and reports found=false without an error; storage and decode failures are
// returned for the caller to degrade on.
func (s *Store) getJSON(key string, out any) (bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM collections WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO collections (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

func (s *Store) remove(key string) error {
	_, err := s.db.Exec(`DELETE FROM collections WHERE key = ?`, key)
	return err
}

// DefaultDBPath returns ~/.config/daytrack/daytrack.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "daytrack", "daytrack.db"), nil
}
