package projects

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLiteStore is a Store backed by the shared SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a project store on top of an opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create adds a project.
func (s *SQLiteStore) Create(name, description string, ownerID int64) (Project, error) {
	if name == "" {
		return Project{}, ErrIllegalName
	}

	result, err := s.db.Exec(
		"INSERT INTO projects (name, description, owner_id) VALUES (?, ?, ?)",
		name, description, ownerID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Project{}, ErrDuplicateName
		}

		return Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Project{}, fmt.Errorf("failed to read new project id: %w", err)
	}

	return Project{ID: id, Name: name, Description: description, OwnerID: ownerID}, nil
}

// Get returns a project by ID.
func (s *SQLiteStore) Get(projectID int64) (Project, error) {
	var project Project

	err := s.db.QueryRow(
		"SELECT id, name, description, owner_id FROM projects WHERE id = ?",
		projectID,
	).Scan(&project.ID, &project.Name, &project.Description, &project.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	}

	if err != nil {
		return Project{}, fmt.Errorf("failed to load project: %w", err)
	}

	return project, nil
}

// Delete removes a project.
func (s *SQLiteStore) Delete(projectID int64) error {
	result, err := s.db.Exec("DELETE FROM projects WHERE id = ?", projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// ListByOwner returns all projects owned by a user, ordered by ID.
func (s *SQLiteStore) ListByOwner(ownerID int64) ([]Project, error) {
	rows, err := s.db.Query(
		"SELECT id, name, description, owner_id FROM projects WHERE owner_id = ? ORDER BY id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	var result []Project

	for rows.Next() {
		var project Project
		if err := rows.Scan(&project.ID, &project.Name, &project.Description, &project.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}

		result = append(result, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read project rows: %w", err)
	}

	return result, nil
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
