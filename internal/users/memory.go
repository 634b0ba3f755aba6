package users

import (
	"strings"
	"sync"
)

// MemoryStore is an in-memory implementation of the Store interface.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]User
	byName map[string]int64
}

// NewMemoryStore creates a new in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		byID:   make(map[int64]User),
		byName: make(map[string]int64),
	}
}

// Create registers a new user with an already-hashed password.
func (m *MemoryStore) Create(name, passwordHash string) (User, error) {
	if err := validateName(name); err != nil {
		return User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byName[name]; exists {
		return User{}, ErrDuplicateName
	}

	user := User{ID: m.nextID, Name: name, PasswordHash: passwordHash}
	m.nextID++

	m.byID[user.ID] = user
	m.byName[name] = user.ID

	return user, nil
}

// Get returns a user by ID.
func (m *MemoryStore) Get(userID int64) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.byID[userID]
	if !exists {
		return User{}, ErrUserNotFound
	}

	return user, nil
}

// GetByName returns a user by username.
func (m *MemoryStore) GetByName(name string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, exists := m.byName[name]
	if !exists {
		return User{}, ErrUserNotFound
	}

	return m.byID[id], nil
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return ErrIllegalName
	}

	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
