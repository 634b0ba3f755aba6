// Package acl decides who may observe and mutate a project. The hub
// never consults it directly: the connection entry point must confirm
// access before a session is allowed to join a room.
package acl

import "errors"

// Action represents an operation a user wants to perform on a project.
type Action int

const (
	ActionRead Action = iota
	ActionEdit
	ActionShare
	ActionDelete
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionEdit:
		return "edit"
	case ActionShare:
		return "share"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Checker validates user permissions for project operations.
type Checker struct {
	store Store
}

// NewChecker creates a new permission checker.
func NewChecker(store Store) *Checker {
	return &Checker{store: store}
}

// CanPerform checks if a user can perform an action on a project.
func (c *Checker) CanPerform(projectID, userID int64, action Action) (bool, error) {
	role, err := c.store.GetRole(projectID, userID)
	if err != nil {
		if errors.Is(err, ErrPermissionNotFound) {
			return false, nil
		}

		return false, err
	}

	switch action {
	case ActionRead:
		return role.CanRead(), nil
	case ActionEdit:
		return role.CanEdit(), nil
	case ActionShare:
		return role.CanShare(), nil
	case ActionDelete:
		return role.CanDelete(), nil
	default:
		return false, nil
	}
}

// CanEdit reports whether the user may join the project's room and
// mutate its files. Errors from the store deny access.
func (c *Checker) CanEdit(userID, projectID int64) bool {
	allowed, err := c.CanPerform(projectID, userID, ActionEdit)
	if err != nil {
		return false
	}

	return allowed
}

// RequirePermission checks permission and returns an error if denied.
func (c *Checker) RequirePermission(projectID, userID int64, action Action) error {
	allowed, err := c.CanPerform(projectID, userID, action)
	if err != nil {
		return err
	}

	if !allowed {
		return ErrAccessDenied
	}

	return nil
}
