package users

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

// NewSQLiteStore creates a user store on top of an opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create registers a new user with an already-hashed password.
func (s *SQLiteStore) Create(name, passwordHash string) (User, error) {
	if err := validateName(name); err != nil {
		return User{}, err
	}

	result, err := s.db.Exec(
		"INSERT INTO users (name, password_hash) VALUES (?, ?)",
		name, passwordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return User{}, ErrDuplicateName
		}

		return User{}, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("failed to read new user id: %w", err)
	}

	return User{ID: id, Name: name, PasswordHash: passwordHash}, nil
}

// Get returns a user by ID.
func (s *SQLiteStore) Get(userID int64) (User, error) {
	return s.scanOne(s.db.QueryRow(
		"SELECT id, name, password_hash FROM users WHERE id = ?", userID,
	))
}

// GetByName returns a user by username.
func (s *SQLiteStore) GetByName(name string) (User, error) {
	return s.scanOne(s.db.QueryRow(
		"SELECT id, name, password_hash FROM users WHERE name = ?", name,
	))
}

func (s *SQLiteStore) scanOne(row *sql.Row) (User, error) {
	var user User

	err := row.Scan(&user.ID, &user.Name, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}

	if err != nil {
		return User{}, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
