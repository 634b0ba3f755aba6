// Package projects manages project metadata: name, description, owner.
package projects

import "errors"

// Common errors.
var (
	ErrProjectNotFound = errors.New("project does not exist")
	ErrDuplicateName   = errors.New("owner already has a project with this name")
	ErrIllegalName     = errors.New("project name can't be empty")
)

// Project is one shared workspace of files.
type Project struct {
	ID          int64
	Name        string
	Description string
	OwnerID     int64
}

// Store defines the interface for persisting projects.
type Store interface {
	// Create adds a project. The name must be non-empty and unique per owner.
	Create(name, description string, ownerID int64) (Project, error)

	// Get returns a project by ID.
	// Returns ErrProjectNotFound if it does not exist.
	Get(projectID int64) (Project, error)

	// Delete removes a project.
	// Returns ErrProjectNotFound if it does not exist.
	Delete(projectID int64) error

	// ListByOwner returns all projects owned by a user, ordered by ID.
	ListByOwner(ownerID int64) ([]Project, error)
}
