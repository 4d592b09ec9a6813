// Package hints stores and formats session- and user-scoped behavior
// corrections learned from past critique failures. Independent of the
// router; the execution graph injects the formatted output into its
// generation prompts.
//
// No other component writes hints directly.
package hints

// #region imports
import (
	"database/sql"
	"fmt"
	"time"
)

// #endregion

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS session_hints (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id  TEXT NOT NULL,
    hint_type   TEXT NOT NULL,
    hint_text   TEXT NOT NULL,
    weight      REAL NOT NULL DEFAULT 1.0,
    created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_session_hints_session ON session_hints(session_id);

CREATE TABLE IF NOT EXISTS user_hints (
    id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id            TEXT NOT NULL,
    hint_type          TEXT NOT NULL,
    hint_text          TEXT NOT NULL,
    weight             REAL NOT NULL DEFAULT 0.5,
    occurrences        INTEGER NOT NULL DEFAULT 1,
    last_reinforced_at TEXT NOT NULL,
    created_at         TEXT NOT NULL,
    UNIQUE(user_id, hint_type)
);
CREATE INDEX IF NOT EXISTS idx_user_hints_user ON user_hints(user_id);
`

// #endregion

// #region types

// Scope distinguishes where a hint lives and how long it survives.
type Scope string

const (
	ScopeSession Scope = "session" // cleared when the session ends
	ScopeUser    Scope = "user"    // persists, reinforced and decayed over time
)

// Hint is one weighted behavior correction.
type Hint struct {
	Scope       Scope
	Type        string
	Text        string
	Weight      float64
	Occurrences int // user scope only
}

// Config bounds hint weights and limits what gets injected.
type Config struct {
	WeightCap       float64       // hard ceiling, weights never exceed this
	WeightFloor     float64       // user hints below this are not injected
	WeightIncrement float64       // added on each reinforcement
	HighWeightMark  float64       // at or above, format with an IMPORTANT marker
	SessionLimit    int           // most recent N session hints
	UserLimit       int           // top-weighted M user hints
	CacheTTL        time.Duration // active-hint cache staleness bound
}

// DefaultConfig returns the standard hint limits.
func DefaultConfig() Config {
	return Config{
		WeightCap:       2.0,
		WeightFloor:     0.3,
		WeightIncrement: 0.25,
		HighWeightMark:  1.5,
		SessionLimit:    5,
		UserLimit:       5,
		CacheTTL:        30 * time.Second,
	}
}

// #endregion

// #region service

// Service is the sole read/write surface for hints. The cache is owned
// by the service instance, never process-global, so tests can supply a
// fresh one.
type Service struct {
	db    *sql.DB
	cfg   Config
	cache *activeCache
}

// NewService initializes the hint tables and returns a Service.
func NewService(db *sql.DB, cfg Config) (*Service, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("hints schema: %w", err)
	}
	return &Service{db: db, cfg: cfg, cache: newActiveCache(cfg.CacheTTL)}, nil
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// #endregion

// #region active-hints

// ActiveHints returns the most recent session hints and the top-weighted
// user hints at or above the weight floor, ordered by weight then
// occurrence count. Results may be a few seconds stale; that is by
// contract, not a bug.
func (s *Service) ActiveHints(sessionID, userID string) ([]Hint, error) {
	if cached, ok := s.cache.get(sessionID, userID); ok {
		return cached, nil
	}

	var hints []Hint

	rows, err := s.db.Query(
		`SELECT hint_type, hint_text, weight
		 FROM session_hints
		 WHERE session_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		sessionID, s.cfg.SessionLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("session hints: %w", err)
	}
	for rows.Next() {
		h := Hint{Scope: ScopeSession}
		if err := rows.Scan(&h.Type, &h.Text, &h.Weight); err != nil {
			rows.Close()
			return nil, err
		}
		hints = append(hints, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(
		`SELECT hint_type, hint_text, weight, occurrences
		 FROM user_hints
		 WHERE user_id = ? AND weight >= ?
		 ORDER BY weight DESC, occurrences DESC
		 LIMIT ?`,
		userID, s.cfg.WeightFloor, s.cfg.UserLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("user hints: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		h := Hint{Scope: ScopeUser}
		if err := rows.Scan(&h.Type, &h.Text, &h.Weight, &h.Occurrences); err != nil {
			return nil, err
		}
		hints = append(hints, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cache.put(sessionID, userID, hints)
	return hints, nil
}

// #endregion

// #region add-session-hint

// AddSessionHint records a correction scoped to one session.
func (s *Service) AddSessionHint(sessionID, hintType, text string, weight float64) error {
	if weight > s.cfg.WeightCap {
		weight = s.cfg.WeightCap
	}
	if weight < 0 {
		weight = 0
	}
	_, err := s.db.Exec(
		`INSERT INTO session_hints (session_id, hint_type, hint_text, weight, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, hintType, text, weight, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("add session hint: %w", err)
	}
	s.cache.invalidate()
	return nil
}

// #endregion

// #region add-user-hint

// AddUserHint upserts a user-scoped hint: weight grows by the configured
// increment, capped, and the occurrence count advances. The reinforcement
// timestamp resets the decay clock.
func (s *Service) AddUserHint(userID, hintType, text string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	// The cap bounds the initial weight too, not just reinforcements.
	initial := s.cfg.WeightIncrement * 2
	if initial > s.cfg.WeightCap {
		initial = s.cfg.WeightCap
	}
	_, err := s.db.Exec(
		`INSERT INTO user_hints (user_id, hint_type, hint_text, weight, occurrences, last_reinforced_at, created_at)
		 VALUES (?, ?, ?, ?, 1, ?, ?)
		 ON CONFLICT(user_id, hint_type) DO UPDATE SET
		   hint_text          = excluded.hint_text,
		   weight             = MIN(?, user_hints.weight + ?),
		   occurrences        = user_hints.occurrences + 1,
		   last_reinforced_at = excluded.last_reinforced_at`,
		userID, hintType, text, initial, now, now,
		s.cfg.WeightCap, s.cfg.WeightIncrement,
	)
	if err != nil {
		return fmt.Errorf("add user hint: %w", err)
	}
	s.cache.invalidate()
	return nil
}

// #endregion

// #region decay

// DecayUserHints halves the weight of every user hint that has gone
// decayDays without reinforcement, deleting hints that fall below 0.05.
// Scheduled maintenance, not part of the per-turn path.
func (s *Service) DecayUserHints(decayDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -decayDays).Format(time.RFC3339Nano)

	res, err := s.db.Exec(
		`UPDATE user_hints SET weight = weight * 0.5 WHERE last_reinforced_at < ?`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("decay weights: %w", err)
	}
	decayed, _ := res.RowsAffected()

	if _, err := s.db.Exec(`DELETE FROM user_hints WHERE weight < 0.05`); err != nil {
		return decayed, fmt.Errorf("prune decayed hints: %w", err)
	}
	s.cache.invalidate()
	return decayed, nil
}

// #endregion

// #region clear-session

// ClearSession deletes all hints for a session. Called at session end.
func (s *Service) ClearSession(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM session_hints WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("clear session hints: %w", err)
	}
	s.cache.invalidate()
	return nil
}

// #endregion
