package files_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codecollab/editor-server/internal/files"
	"github.com/codecollab/editor-server/internal/protocol"
)

const testProjectID = int64(1)

func TestMemoryService_Create(t *testing.T) {
	t.Parallel()

	svc := files.NewMemoryService()

	file, err := svc.Create(testProjectID, "main.go")
	require.NoError(t, err)

	if file.ID == 0 {
		t.Error("expected non-zero file id")
	}

	if file.Name != "main.go" {
		t.Errorf("expected name main.go, got %s", file.Name)
	}

	// Same name in another project is fine.
	_, err = svc.Create(2, "main.go")
	require.NoError(t, err)
}

func TestMemoryService_Create_Rejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{name: "empty name", filename: "", wantErr: files.ErrIllegalName},
		{name: "name with space", filename: "my file.go", wantErr: files.ErrIllegalName},
		{name: "name with tab", filename: "a\tb", wantErr: files.ErrIllegalName},
		{name: "duplicate name", filename: "taken.go", wantErr: files.ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := files.NewMemoryService()
			_, err := svc.Create(testProjectID, "taken.go")
			require.NoError(t, err)

			_, err = svc.Create(testProjectID, tt.filename)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMemoryService_Delete(t *testing.T) {
	t.Parallel()

	svc := files.NewMemoryService()

	file, err := svc.Create(testProjectID, "gone.go")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(file.ID))

	if err := svc.Delete(file.ID); !errors.Is(err, files.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound on second delete, got %v", err)
	}
}

func TestMemoryService_GetContent_UnknownFile(t *testing.T) {
	t.Parallel()

	svc := files.NewMemoryService()

	if _, err := svc.GetContent(99); !errors.Is(err, files.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestMemoryService_List(t *testing.T) {
	t.Parallel()

	svc := files.NewMemoryService()

	first, err := svc.Create(testProjectID, "a.go")
	require.NoError(t, err)
	second, err := svc.Create(testProjectID, "b.go")
	require.NoError(t, err)
	_, err = svc.Create(2, "other.go")
	require.NoError(t, err)

	listed, err := svc.List(testProjectID)
	require.NoError(t, err)
	require.Equal(t, []files.File{first, second}, listed)
}

func pos(row, col uint32) protocol.Position {
	return protocol.Position{Row: row, Col: col}
}

func TestMemoryService_ApplyLineChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial []applyArgs
		want    string
	}{
		{
			name: "first lines into empty file",
			initial: []applyArgs{
				{start: pos(0, 0), end: pos(0, 0), lines: []string{"package main", ""}},
			},
			want: "package main\n",
		},
		{
			name: "replace middle line",
			initial: []applyArgs{
				{start: pos(0, 0), end: pos(0, 0), lines: []string{"one", "two", "three"}},
				{start: pos(1, 0), end: pos(1, 3), lines: []string{"TWO"}},
			},
			want: "one\nTWO\nthree",
		},
		{
			name: "grow a single line into several",
			initial: []applyArgs{
				{start: pos(0, 0), end: pos(0, 0), lines: []string{"one", "three"}},
				{start: pos(1, 0), end: pos(1, 0), lines: []string{"two", "three"}},
			},
			want: "one\ntwo\nthree",
		},
		{
			name: "shrink a range to one line",
			initial: []applyArgs{
				{start: pos(0, 0), end: pos(0, 0), lines: []string{"a", "b", "c", "d"}},
				{start: pos(1, 0), end: pos(2, 1), lines: []string{"bc"}},
			},
			want: "a\nbc\nd",
		},
		{
			name: "append at end of file",
			initial: []applyArgs{
				{start: pos(0, 0), end: pos(0, 0), lines: []string{"only"}},
				{start: pos(1, 0), end: pos(1, 0), lines: []string{"appended"}},
			},
			want: "only\nappended",
		},
		{
			name: "end row past EOF is clamped",
			initial: []applyArgs{
				{start: pos(0, 0), end: pos(0, 0), lines: []string{"x", "y"}},
				{start: pos(0, 0), end: pos(99, 0), lines: []string{"all"}},
			},
			want: "all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := files.NewMemoryService()
			file, err := svc.Create(testProjectID, "edit.go")
			require.NoError(t, err)

			for _, change := range tt.initial {
				require.NoError(t, svc.ApplyLineChange(file.ID, change.start, change.end, change.lines))
			}

			content, err := svc.GetContent(file.ID)
			require.NoError(t, err)

			if content != tt.want {
				t.Errorf("expected %q, got %q", tt.want, content)
			}
		})
	}
}

type applyArgs struct {
	start protocol.Position
	end   protocol.Position
	lines []string
}

func TestMemoryService_ApplyLineChange_Errors(t *testing.T) {
	t.Parallel()

	svc := files.NewMemoryService()

	file, err := svc.Create(testProjectID, "edit.go")
	require.NoError(t, err)
	require.NoError(t, svc.ApplyLineChange(file.ID, pos(0, 0), pos(0, 0), []string{"line"}))

	if err := svc.ApplyLineChange(file.ID, pos(3, 0), pos(1, 0), []string{"x"}); !errors.Is(err, files.ErrBadLineRange) {
		t.Errorf("expected ErrBadLineRange for inverted range, got %v", err)
	}

	if err := svc.ApplyLineChange(file.ID, pos(5, 0), pos(5, 0), []string{"x"}); !errors.Is(err, files.ErrBadLineRange) {
		t.Errorf("expected ErrBadLineRange for start past EOF, got %v", err)
	}

	if err := svc.ApplyLineChange(404, pos(0, 0), pos(0, 0), []string{"x"}); !errors.Is(err, files.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}
