package acl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codecollab/editor-server/internal/acl"
)

func TestChecker_CanPerform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		role    acl.Role
		action  acl.Action
		allowed bool
	}{
		{name: "viewer reads", role: acl.Viewer, action: acl.ActionRead, allowed: true},
		{name: "viewer can't edit", role: acl.Viewer, action: acl.ActionEdit, allowed: false},
		{name: "editor edits", role: acl.Editor, action: acl.ActionEdit, allowed: true},
		{name: "editor can't share", role: acl.Editor, action: acl.ActionShare, allowed: false},
		{name: "owner shares", role: acl.Owner, action: acl.ActionShare, allowed: true},
		{name: "owner deletes", role: acl.Owner, action: acl.ActionDelete, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := acl.NewMemoryStore()
			require.NoError(t, store.Grant(testProjectID, testUserID, tt.role))

			checker := acl.NewChecker(store)

			allowed, err := checker.CanPerform(testProjectID, testUserID, tt.action)
			require.NoError(t, err)

			if allowed != tt.allowed {
				t.Errorf("expected allowed=%v, got %v", tt.allowed, allowed)
			}
		})
	}
}

func TestChecker_CanPerform_NoPermission(t *testing.T) {
	t.Parallel()

	checker := acl.NewChecker(acl.NewMemoryStore())

	allowed, err := checker.CanPerform(testProjectID, testUserID, acl.ActionRead)
	require.NoError(t, err)

	if allowed {
		t.Error("expected no access without a permission entry")
	}
}

func TestChecker_CanEdit(t *testing.T) {
	t.Parallel()

	store := acl.NewMemoryStore()
	require.NoError(t, store.Grant(testProjectID, testUserID, acl.Editor))

	checker := acl.NewChecker(store)

	if !checker.CanEdit(testUserID, testProjectID) {
		t.Error("expected editor to pass the edit gate")
	}

	if checker.CanEdit(testUserID+1, testProjectID) {
		t.Error("expected stranger to fail the edit gate")
	}
}

func TestChecker_RequirePermission(t *testing.T) {
	t.Parallel()

	store := acl.NewMemoryStore()
	require.NoError(t, store.Grant(testProjectID, testUserID, acl.Viewer))

	checker := acl.NewChecker(store)

	require.NoError(t, checker.RequirePermission(testProjectID, testUserID, acl.ActionRead))

	err := checker.RequirePermission(testProjectID, testUserID, acl.ActionEdit)
	if !errors.Is(err, acl.ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
}
