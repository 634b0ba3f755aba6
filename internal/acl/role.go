package acl

// Role represents a user's access level for a project.
type Role int

const (
	// Viewer can only read project files.
	Viewer Role = iota
	// Editor can read and edit project files.
	Editor
	// Owner has full access: edit, share, and delete the project.
	Owner
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case Viewer:
		return "viewer"
	case Editor:
		return "editor"
	case Owner:
		return "owner"
	default:
		return "unknown"
	}
}

// CanRead returns true if the role allows reading project files.
func (r Role) CanRead() bool {
	return r >= Viewer
}

// CanEdit returns true if the role allows mutating project files.
func (r Role) CanEdit() bool {
	return r >= Editor
}

// CanShare returns true if the role allows granting or revoking access.
func (r Role) CanShare() bool {
	return r >= Owner
}

// CanDelete returns true if the role allows deleting the project.
func (r Role) CanDelete() bool {
	return r >= Owner
}

// Permission represents a user's access to a specific project.
type Permission struct {
	ProjectID int64
	UserID    int64
	Role      Role
}
