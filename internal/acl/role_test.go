package acl_test

import (
	"testing"

	"github.com/codecollab/editor-server/internal/acl"
)

func TestRole_Capabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role      acl.Role
		canRead   bool
		canEdit   bool
		canShare  bool
		canDelete bool
	}{
		{role: acl.Viewer, canRead: true, canEdit: false, canShare: false, canDelete: false},
		{role: acl.Editor, canRead: true, canEdit: true, canShare: false, canDelete: false},
		{role: acl.Owner, canRead: true, canEdit: true, canShare: true, canDelete: true},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			t.Parallel()

			if got := tt.role.CanRead(); got != tt.canRead {
				t.Errorf("CanRead: expected %v, got %v", tt.canRead, got)
			}

			if got := tt.role.CanEdit(); got != tt.canEdit {
				t.Errorf("CanEdit: expected %v, got %v", tt.canEdit, got)
			}

			if got := tt.role.CanShare(); got != tt.canShare {
				t.Errorf("CanShare: expected %v, got %v", tt.canShare, got)
			}

			if got := tt.role.CanDelete(); got != tt.canDelete {
				t.Errorf("CanDelete: expected %v, got %v", tt.canDelete, got)
			}
		})
	}
}

func TestRole_String(t *testing.T) {
	t.Parallel()

	if acl.Viewer.String() != "viewer" || acl.Editor.String() != "editor" || acl.Owner.String() != "owner" {
		t.Error("unexpected role names")
	}

	if acl.Role(42).String() != "unknown" {
		t.Error("expected unknown for out-of-range role")
	}
}
