package project

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Issue states persisted across result loads.
const (
	stateDeleted  = "deleted"
	stateComplete = "complete"
)

// Store persists per-issue state (deleted, complete) in the shared
// modlens database so user decisions survive result reloads.
type Store struct {
	db *sql.DB
}

// NewStore prepares the issue-state schema on an open database handle.
// The handle is shared with the workspace registry and stays owned by the
// caller.
func NewStore(db *sql.DB) (*Store, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS issue_state (
		project TEXT NOT NULL,
		issue_id TEXT NOT NULL,
		file TEXT NOT NULL,
		state TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (project, issue_id)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("initialize issue state schema: %w", err)
	}
	return &Store{db: db}, nil
}

// MarkDeleted records an issue as deleted for the project.
func (s *Store) MarkDeleted(projectName, issueID, file string) error {
	return s.setState(projectName, issueID, file, stateDeleted)
}

// MarkComplete records an issue as complete for the project.
func (s *Store) MarkComplete(projectName, issueID, file string) error {
	return s.setState(projectName, issueID, file, stateComplete)
}

func (s *Store) setState(projectName, issueID, file, state string) error {
	query := `
	INSERT OR REPLACE INTO issue_state (project, issue_id, file, state, updated_at)
	VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query, projectName, issueID, file, state, time.Now())
	return err
}

// States returns the recorded state per issue ID for a project.
func (s *Store) States(projectName string) (map[string]string, error) {
	rows, err := s.db.Query(
		"SELECT issue_id, state FROM issue_state WHERE project = ?",
		projectName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := make(map[string]string)
	for rows.Next() {
		var id, state string
		if err := rows.Scan(&id, &state); err != nil {
			return nil, err
		}
		states[id] = state
	}
	return states, rows.Err()
}
