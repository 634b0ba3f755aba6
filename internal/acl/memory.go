package acl

import "sync"

// permissionKey uniquely identifies a user-project permission.
type permissionKey struct {
	projectID int64
	userID    int64
}

// MemoryStore is an in-memory implementation of the Store interface.
type MemoryStore struct {
	mu          sync.RWMutex
	permissions map[permissionKey]Role
}

// NewMemoryStore creates a new in-memory permission store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		permissions: make(map[permissionKey]Role),
	}
}

// Grant gives a user a specific role on a project.
func (m *MemoryStore) Grant(projectID, userID int64, role Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := permissionKey{projectID: projectID, userID: userID}
	m.permissions[key] = role

	return nil
}

// Revoke removes a user's permission on a project.
func (m *MemoryStore) Revoke(projectID, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := permissionKey{projectID: projectID, userID: userID}

	if _, exists := m.permissions[key]; !exists {
		return ErrPermissionNotFound
	}

	delete(m.permissions, key)

	return nil
}

// GetRole returns the user's role for a project.
func (m *MemoryStore) GetRole(projectID, userID int64) (Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := permissionKey{projectID: projectID, userID: userID}

	role, exists := m.permissions[key]
	if !exists {
		return 0, ErrPermissionNotFound
	}

	return role, nil
}

// ListPermissions returns all permissions for a project.
func (m *MemoryStore) ListPermissions(projectID int64) ([]Permission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Permission

	for key, role := range m.permissions {
		if key.projectID == projectID {
			result = append(result, Permission{
				ProjectID: key.projectID,
				UserID:    key.userID,
				Role:      role,
			})
		}
	}

	return result, nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
