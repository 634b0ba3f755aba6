package acl

import (
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteStore is a Store backed by the shared SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a permission store on top of an opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Grant gives a user a specific role on a project.
func (s *SQLiteStore) Grant(projectID, userID int64, role Role) error {
	_, err := s.db.Exec(
		`INSERT INTO project_access (project_id, user_id, role) VALUES (?, ?, ?)
		 ON CONFLICT(project_id, user_id) DO UPDATE SET role = excluded.role`,
		projectID, userID, int(role),
	)
	if err != nil {
		return fmt.Errorf("failed to grant access: %w", err)
	}

	return nil
}

// Revoke removes a user's permission on a project.
func (s *SQLiteStore) Revoke(projectID, userID int64) error {
	result, err := s.db.Exec(
		"DELETE FROM project_access WHERE project_id = ? AND user_id = ?",
		projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke access: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return ErrPermissionNotFound
	}

	return nil
}

// GetRole returns the user's role for a project.
func (s *SQLiteStore) GetRole(projectID, userID int64) (Role, error) {
	var role int

	err := s.db.QueryRow(
		"SELECT role FROM project_access WHERE project_id = ? AND user_id = ?",
		projectID, userID,
	).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPermissionNotFound
	}

	if err != nil {
		return 0, fmt.Errorf("failed to load role: %w", err)
	}

	return Role(role), nil
}

// ListPermissions returns all permissions for a project.
func (s *SQLiteStore) ListPermissions(projectID int64) ([]Permission, error) {
	rows, err := s.db.Query(
		"SELECT project_id, user_id, role FROM project_access WHERE project_id = ?",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	var result []Permission

	for rows.Next() {
		var (
			permission Permission
			role       int
		)

		if err := rows.Scan(&permission.ProjectID, &permission.UserID, &role); err != nil {
			return nil, fmt.Errorf("failed to scan permission row: %w", err)
		}

		permission.Role = Role(role)
		result = append(result, permission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read permission rows: %w", err)
	}

	return result, nil
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
