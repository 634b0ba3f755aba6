package projects

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory implementation of the Store interface.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	projects map[int64]Project
}

// NewMemoryStore creates a new in-memory project store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		projects: make(map[int64]Project),
	}
}

// Create adds a project.
func (m *MemoryStore) Create(name, description string, ownerID int64) (Project, error) {
	if name == "" {
		return Project{}, ErrIllegalName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, project := range m.projects {
		if project.OwnerID == ownerID && project.Name == name {
			return Project{}, ErrDuplicateName
		}
	}

	project := Project{ID: m.nextID, Name: name, Description: description, OwnerID: ownerID}
	m.nextID++
	m.projects[project.ID] = project

	return project, nil
}

// Get returns a project by ID.
func (m *MemoryStore) Get(projectID int64) (Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	project, exists := m.projects[projectID]
	if !exists {
		return Project{}, ErrProjectNotFound
	}

	return project, nil
}

// Delete removes a project.
func (m *MemoryStore) Delete(projectID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.projects[projectID]; !exists {
		return ErrProjectNotFound
	}

	delete(m.projects, projectID)

	return nil
}

// ListByOwner returns all projects owned by a user, ordered by ID.
func (m *MemoryStore) ListByOwner(ownerID int64) ([]Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []Project

	for _, project := range m.projects {
		if project.OwnerID == ownerID {
			result = append(result, project)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
