package prefs

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// QualityProfile is the one user preference the client persists. It
// selects the JPEG quality used by the compress transform.
type QualityProfile string

const (
	QualityFast     QualityProfile = "fast"
	QualityBalanced QualityProfile = "balanced"
	QualityBest     QualityProfile = "best"
)

// JPEGQuality maps a profile to an encoder quality.
func (q QualityProfile) JPEGQuality() int {
	switch q {
	case QualityFast:
		return 55
	case QualityBest:
		return 85
	default:
		return 70
	}
}

func (q QualityProfile) valid() bool {
	switch q {
	case QualityFast, QualityBalanced, QualityBest:
		return true
	}
	return false
}

// Store persists the single user preference in SQLite.
type Store struct {
	conn *sql.DB
}

func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping preferences database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS preferences (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		quality_profile TEXT NOT NULL
	);
	`
	_, err := s.conn.Exec(query)
	return err
}

// Quality returns the stored profile, defaulting to balanced when
// nothing has been saved yet.
func (s *Store) Quality() (QualityProfile, error) {
	var profile string
	err := s.conn.QueryRow("SELECT quality_profile FROM preferences WHERE id = 1").Scan(&profile)
	if err == sql.ErrNoRows {
		return QualityBalanced, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading preference: %w", err)
	}

	q := QualityProfile(profile)
	if !q.valid() {
		return QualityBalanced, nil
	}
	return q, nil
}

// SetQuality saves the profile, replacing any previous value.
func (s *Store) SetQuality(q QualityProfile) error {
	if !q.valid() {
		return fmt.Errorf("unknown quality profile: %s", q)
	}
	_, err := s.conn.Exec(
		"INSERT INTO preferences (id, quality_profile) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET quality_profile = excluded.quality_profile",
		string(q),
	)
	if err != nil {
		return fmt.Errorf("saving preference: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}
