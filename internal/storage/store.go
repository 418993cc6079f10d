// Package storage persists set logs, learning-state snapshots, and
// suggestion provenance in SQLite. The engine core never reads it; cmds use
// it to feed history back into subsequent calls.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/kinetiq/go-engine/internal/lift"
	"github.com/danielpatrickdp/kinetiq/go-engine/internal/ml"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS set_logs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	exercise   TEXT NOT NULL,
	weight     REAL NOT NULL,
	reps       INTEGER NOT NULL,
	rpe        REAL NOT NULL,
	unit       TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_set_logs_exercise ON set_logs(exercise, id);

CREATE TABLE IF NOT EXISTS ml_snapshots (
	version_id TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	state_json TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS suggestion_log (
	id          TEXT PRIMARY KEY,
	exercise    TEXT NOT NULL,
	action      TEXT NOT NULL,
	next_weight REAL NOT NULL,
	next_reps   INTEGER NOT NULL,
	unit        TEXT NOT NULL,
	source      TEXT NOT NULL,
	reason      TEXT,
	debug_json  TEXT,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store
// Store manages the engine's SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion store

// #region set-logs
// AppendSet appends one performed set to the exercise's log.
func (s *Store) AppendSet(exercise string, set lift.SetLog, unit lift.Unit) error {
	_, err := s.db.Exec(
		`INSERT INTO set_logs (exercise, weight, reps, rpe, unit, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		exercise, set.Weight, set.Reps, set.RPE, string(unit),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append set: %w", err)
	}
	return nil
}

// History returns up to limit sets for an exercise, oldest first. A limit of
// 0 returns everything.
func (s *Store) History(exercise string, limit int) (lift.History, error) {
	query := `SELECT weight, reps, rpe FROM set_logs WHERE exercise = ? ORDER BY id`
	args := []any{exercise}
	if limit > 0 {
		// Take the most recent rows, then restore chronological order.
		query = `SELECT weight, reps, rpe FROM (
			SELECT id, weight, reps, rpe FROM set_logs WHERE exercise = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var history lift.History
	for rows.Next() {
		var set lift.SetLog
		if err := rows.Scan(&set.Weight, &set.Reps, &set.RPE); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		history = append(history, set)
	}
	return history, rows.Err()
}

// #endregion set-logs

// #region ml-snapshots
// SaveState writes a new uuid-versioned snapshot of the learning state.
func (s *Store) SaveState(userID string, state *ml.State) (string, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}
	id := uuid.New().String()
	_, err = s.db.Exec(
		`INSERT INTO ml_snapshots (version_id, user_id, state_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, userID, string(stateJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("save state: %w", err)
	}
	return id, nil
}

// LoadLatestState restores the most recent snapshot for a user. A user with
// no snapshots gets a fresh state.
func (s *Store) LoadLatestState(userID string) (*ml.State, error) {
	var stateJSON string
	err := s.db.QueryRow(
		`SELECT state_json FROM ml_snapshots WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT 1`, userID,
	).Scan(&stateJSON)
	if err == sql.ErrNoRows {
		return ml.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	state := &ml.State{}
	if err := json.Unmarshal([]byte(stateJSON), state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return state, nil
}

// SnapshotInfo describes one stored learning-state snapshot.
type SnapshotInfo struct {
	VersionID string
	UserID    string
	CreatedAt time.Time
}

// LatestSnapshotInfo returns metadata for a user's newest snapshot, or nil
// when the user has none.
func (s *Store) LatestSnapshotInfo(userID string) (*SnapshotInfo, error) {
	var info SnapshotInfo
	var createdStr string
	err := s.db.QueryRow(
		`SELECT version_id, user_id, created_at FROM ml_snapshots WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT 1`, userID,
	).Scan(&info.VersionID, &info.UserID, &createdStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot info: %w", err)
	}
	info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return &info, nil
}

// #endregion ml-snapshots

// #region suggestion-log
// SuggestionRecord is one provenance row: what was prescribed and why.
type SuggestionRecord struct {
	ID         string
	Exercise   string
	Action     string
	NextWeight float64
	NextReps   int
	Unit       string
	Source     string // "rules" | "learned"
	Reason     string
	DebugJSON  string
	CreatedAt  time.Time
}

// LogSuggestion records a suggestion and its provenance.
func (s *Store) LogSuggestion(exercise, source string, sug lift.Suggestion) (string, error) {
	var debugJSON any
	if sug.Debug != nil {
		raw, err := json.Marshal(sug.Debug)
		if err != nil {
			return "", fmt.Errorf("marshal debug: %w", err)
		}
		debugJSON = string(raw)
	}

	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO suggestion_log (id, exercise, action, next_weight, next_reps, unit, source, reason, debug_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, exercise, string(sug.Action), sug.NextWeight, sug.NextReps,
		string(sug.Unit), source, sug.Explanation, debugJSON,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("log suggestion: %w", err)
	}
	return id, nil
}

// RecentSuggestions returns the newest suggestion rows for an exercise.
func (s *Store) RecentSuggestions(exercise string, limit int) ([]SuggestionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, exercise, action, next_weight, next_reps, unit, source, reason, debug_json, created_at
		 FROM suggestion_log WHERE exercise = ? ORDER BY created_at DESC LIMIT ?`,
		exercise, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	var records []SuggestionRecord
	for rows.Next() {
		var rec SuggestionRecord
		var reason, debugJSON sql.NullString
		var createdStr string
		if err := rows.Scan(&rec.ID, &rec.Exercise, &rec.Action, &rec.NextWeight,
			&rec.NextReps, &rec.Unit, &rec.Source, &reason, &debugJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		if reason.Valid {
			rec.Reason = reason.String
		}
		if debugJSON.Valid {
			rec.DebugJSON = debugJSON.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion suggestion-log
