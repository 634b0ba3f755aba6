package files

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/codecollab/editor-server/internal/protocol"
)

// SQLiteService is a Service backed by the shared SQLite database.
type SQLiteService struct {
	db *sql.DB
}

// NewSQLiteService creates a file service on top of an opened database.
func NewSQLiteService(db *sql.DB) *SQLiteService {
	return &SQLiteService{db: db}
}

// Create adds an empty file to a project.
func (s *SQLiteService) Create(projectID int64, name string) (File, error) {
	if err := ValidateName(name); err != nil {
		return File{}, err
	}

	result, err := s.db.Exec(
		"INSERT INTO files (project_id, name) VALUES (?, ?)",
		projectID, name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return File{}, ErrDuplicateName
		}

		return File{}, fmt.Errorf("failed to create file: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return File{}, fmt.Errorf("failed to read new file id: %w", err)
	}

	return File{ID: id, ProjectID: projectID, Name: name}, nil
}

// Delete removes a file.
func (s *SQLiteService) Delete(fileID int64) error {
	result, err := s.db.Exec("DELETE FROM files WHERE id = ?", fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}

// GetContent returns the full content of a file.
func (s *SQLiteService) GetContent(fileID int64) (string, error) {
	var content string

	err := s.db.QueryRow("SELECT content FROM files WHERE id = ?", fileID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrFileNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to load file content: %w", err)
	}

	return content, nil
}

// ApplyLineChange splices the replacement lines into the stored content.
// The read-modify-write runs in one transaction so concurrent mutations
// of the same file never interleave partially.
func (s *SQLiteService) ApplyLineChange(fileID int64, start, end protocol.Position, lines []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	var content string

	err = tx.QueryRow("SELECT content FROM files WHERE id = ?", fileID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFileNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to load file content: %w", err)
	}

	updated, err := spliceLines(content, start, end, lines)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("UPDATE files SET content = ? WHERE id = ?", updated, fileID); err != nil {
		return fmt.Errorf("failed to update file content: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit line change: %w", err)
	}

	return nil
}

// List returns all files of a project ordered by ID.
func (s *SQLiteService) List(projectID int64) ([]File, error) {
	rows, err := s.db.Query(
		"SELECT id, project_id, name FROM files WHERE project_id = ? ORDER BY id",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	var result []File

	for rows.Next() {
		var file File
		if err := rows.Scan(&file.ID, &file.ProjectID, &file.Name); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}

		result = append(result, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file rows: %w", err)
	}

	return result, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Ensure SQLiteService implements Service.
var _ Service = (*SQLiteService)(nil)
