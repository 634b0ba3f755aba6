package files

import (
	"sort"
	"sync"

	"github.com/codecollab/editor-server/internal/protocol"
)

// fileData holds one stored file and its content.
type fileData struct {
	file    File
	content string
}

// MemoryService is an in-memory implementation of Service.
// Useful for testing and development.
type MemoryService struct {
	mu     sync.RWMutex
	nextID int64
	files  map[int64]*fileData
}

// NewMemoryService creates a new in-memory file service.
func NewMemoryService() *MemoryService {
	return &MemoryService{
		nextID: 1,
		files:  make(map[int64]*fileData),
	}
}

// Create adds an empty file to a project.
func (m *MemoryService) Create(projectID int64, name string) (File, error) {
	if err := ValidateName(name); err != nil {
		return File{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, data := range m.files {
		if data.file.ProjectID == projectID && data.file.Name == name {
			return File{}, ErrDuplicateName
		}
	}

	file := File{ID: m.nextID, ProjectID: projectID, Name: name}
	m.nextID++
	m.files[file.ID] = &fileData{file: file}

	return file, nil
}

// Delete removes a file.
func (m *MemoryService) Delete(fileID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.files[fileID]; !exists {
		return ErrFileNotFound
	}

	delete(m.files, fileID)

	return nil
}

// GetContent returns the full content of a file.
func (m *MemoryService) GetContent(fileID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.files[fileID]
	if !exists {
		return "", ErrFileNotFound
	}

	return data.content, nil
}

// ApplyLineChange splices the replacement lines into the stored content.
func (m *MemoryService) ApplyLineChange(fileID int64, start, end protocol.Position, lines []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, exists := m.files[fileID]
	if !exists {
		return ErrFileNotFound
	}

	content, err := spliceLines(data.content, start, end, lines)
	if err != nil {
		return err
	}

	data.content = content

	return nil
}

// List returns all files of a project ordered by ID.
func (m *MemoryService) List(projectID int64) ([]File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []File

	for _, data := range m.files {
		if data.file.ProjectID == projectID {
			result = append(result, data.file)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Ensure MemoryService implements Service.
var _ Service = (*MemoryService)(nil)
