// Package storage opens the controller's SQLite database.
package storage

// #region imports
import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// #endregion

// #region open

// Open opens (or creates) the database with WAL and foreign keys on.
// Schema migration belongs to the packages that own each table.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	return db, nil
}

// #endregion
