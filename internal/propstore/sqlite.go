package propstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const settingsSchema = `
CREATE TABLE IF NOT EXISTS system_settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

// SettingsDB is a property store backed by a settings database on disk,
// mirroring the key/value settings table a device keeps its persisted
// properties in. Reads degrade to "absent" on storage errors so a broken
// database never takes the policy engine down with it.
type SettingsDB struct {
	logger *zap.Logger
	db     *sql.DB
}

// OpenSettingsDB opens the settings database at path, creating the schema
// when missing.
func OpenSettingsDB(logger *zap.Logger, path string) (*SettingsDB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening settings database at %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to settings database at %q: %w", path, err)
	}
	if _, err := db.Exec(settingsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing settings schema: %w", err)
	}
	return &SettingsDB{logger: logger.Named("propstore"), db: db}, nil
}

// Put upserts one setting.
func (s *SettingsDB) Put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO system_settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing setting %q: %w", key, err)
	}
	return nil
}

// GetString returns the raw value at key.
func (s *SettingsDB) GetString(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM system_settings WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false
	case err != nil:
		s.logger.Warn("Settings read failed.", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

// GetBool returns the boolean at key, or def when the key is absent or not
// parseable as a boolean.
func (s *SettingsDB) GetBool(key string, def bool) bool {
	v, ok := s.GetString(key)
	if !ok {
		return def
	}
	return parseBool(v, def)
}

// Close releases the database handle.
func (s *SettingsDB) Close() error {
	return s.db.Close()
}
