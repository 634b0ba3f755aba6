package acl

import "errors"

// Common errors.
var (
	ErrPermissionNotFound = errors.New("permission not found")
	ErrAccessDenied       = errors.New("access denied")
)

// Store defines the interface for persisting project permissions.
type Store interface {
	// Grant gives a user a specific role on a project.
	// If the user already has a permission, it is replaced.
	Grant(projectID, userID int64, role Role) error

	// Revoke removes a user's permission on a project.
	// Returns ErrPermissionNotFound if no permission exists.
	Revoke(projectID, userID int64) error

	// GetRole returns the user's role for a project.
	// Returns ErrPermissionNotFound if no permission exists.
	GetRole(projectID, userID int64) (Role, error)

	// ListPermissions returns all permissions for a project.
	ListPermissions(projectID int64) ([]Permission, error)
}
