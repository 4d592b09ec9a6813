// Package turnlog persists the append-only record of completed turns.
// One row per turn, written once from the terminal graph state and never
// mutated afterward.
package turnlog

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// #endregion

// #region types

// TurnLog is the derived record of one completed turn.
type TurnLog struct {
	SessionID      string
	TurnID         string
	Mode           string
	Route          string
	Plan           string
	Draft          string
	FinalOutput    string
	CritiquePassed bool
	Issues         []string
	Attempts       int
	Duration       time.Duration
	CreatedAt      time.Time
}

// #endregion

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS turn_logs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id      TEXT NOT NULL,
    turn_id         TEXT NOT NULL,
    mode            TEXT NOT NULL,
    route           TEXT NOT NULL,
    plan            TEXT NOT NULL DEFAULT '',
    draft           TEXT NOT NULL DEFAULT '',
    final_output    TEXT NOT NULL DEFAULT '',
    critique_passed INTEGER NOT NULL DEFAULT 0,
    issues_json     TEXT NOT NULL DEFAULT '[]',
    attempts        INTEGER NOT NULL DEFAULT 0,
    duration_ms     INTEGER NOT NULL DEFAULT 0,
    created_at      TEXT NOT NULL,
    UNIQUE(session_id, turn_id)
);
CREATE INDEX IF NOT EXISTS idx_turn_logs_session ON turn_logs(session_id, created_at);
`

// #endregion

// #region store

// Store writes and reads turn logs in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the turn_logs table and returns a Store.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("turnlog schema: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion

// #region record

// Record persists one turn log row.
func (s *Store) Record(tl TurnLog) error {
	issuesJSON, err := json.Marshal(tl.Issues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	passed := 0
	if tl.CritiquePassed {
		passed = 1
	}
	createdAt := tl.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.Exec(
		`INSERT INTO turn_logs
		 (session_id, turn_id, mode, route, plan, draft, final_output,
		  critique_passed, issues_json, attempts, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tl.SessionID, tl.TurnID, tl.Mode, tl.Route, tl.Plan, tl.Draft,
		tl.FinalOutput, passed, string(issuesJSON), tl.Attempts,
		tl.Duration.Milliseconds(), createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record turn log: %w", err)
	}
	return nil
}

// #endregion

// #region recent

// Recent returns the newest turn logs, most recent first.
func (s *Store) Recent(limit int) ([]TurnLog, error) {
	rows, err := s.db.Query(
		`SELECT session_id, turn_id, mode, route, plan, draft, final_output,
		        critique_passed, issues_json, attempts, duration_ms, created_at
		 FROM turn_logs ORDER BY created_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent turn logs: %w", err)
	}
	defer rows.Close()

	var logs []TurnLog
	for rows.Next() {
		var tl TurnLog
		var passed int
		var issuesJSON, createdStr string
		var durationMS int64
		if err := rows.Scan(&tl.SessionID, &tl.TurnID, &tl.Mode, &tl.Route,
			&tl.Plan, &tl.Draft, &tl.FinalOutput, &passed, &issuesJSON,
			&tl.Attempts, &durationMS, &createdStr); err != nil {
			return nil, fmt.Errorf("scan turn log: %w", err)
		}
		tl.CritiquePassed = passed == 1
		if err := json.Unmarshal([]byte(issuesJSON), &tl.Issues); err != nil {
			return nil, fmt.Errorf("unmarshal issues: %w", err)
		}
		tl.Duration = time.Duration(durationMS) * time.Millisecond
		tl.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		logs = append(logs, tl)
	}
	return logs, rows.Err()
}

// #endregion
