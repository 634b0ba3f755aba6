// Package files manages the file set of a project and the line-level
// content mutations the editor protocol carries.
package files

import (
	"errors"
	"strings"

	"github.com/codecollab/editor-server/internal/protocol"
)

// Common errors.
var (
	ErrFileNotFound  = errors.New("file does not exist")
	ErrDuplicateName = errors.New("file with this name already exists in project")
	ErrIllegalName   = errors.New("illegal file name")
	ErrBadLineRange  = errors.New("line range is invalid")
)

// File identifies one file inside a project. Content is kept separately.
type File struct {
	ID        int64
	ProjectID int64
	Name      string
}

// Service is the file backend the hub routes mutations through. Line
// changes must be applied atomically relative to other concurrent
// mutations of the same file; the hub additionally serializes calls
// per project room.
type Service interface {
	// Create adds an empty file to a project.
	// Returns ErrIllegalName or ErrDuplicateName on validation failure.
	Create(projectID int64, name string) (File, error)

	// Delete removes a file. Returns ErrFileNotFound if it does not exist.
	Delete(fileID int64) error

	// GetContent returns the full content of a file.
	GetContent(fileID int64) (string, error)

	// ApplyLineChange replaces the rows [start.Row, end.Row] of the file
	// with the given replacement lines.
	ApplyLineChange(fileID int64, start, end protocol.Position, lines []string) error

	// List returns all files of a project ordered by ID.
	List(projectID int64) ([]File, error)
}

// ValidateName rejects names the wire protocol cannot carry: file names
// travel as space-delimited fields, so whitespace is not allowed.
func ValidateName(name string) error {
	if name == "" {
		return ErrIllegalName
	}

	if strings.ContainsAny(name, " \t\n\r") {
		return ErrIllegalName
	}

	return nil
}

// spliceLines replaces the rows [start.Row, end.Row] of content with the
// replacement lines. Columns are carried for the peers applying the same
// edit to their local buffers; storage is line-granular, so they are not
// interpreted here. An end row past the last line is clamped.
func spliceLines(content string, start, end protocol.Position, lines []string) (string, error) {
	if start.Row > end.Row {
		return "", ErrBadLineRange
	}

	old := strings.Split(content, "\n")
	if content == "" {
		old = nil
	}

	// start.Row == len(old) appends at end of file.
	if int(start.Row) > len(old) {
		return "", ErrBadLineRange
	}

	tailStart := int(end.Row) + 1
	if tailStart > len(old) {
		tailStart = len(old)
	}

	result := make([]string, 0, int(start.Row)+len(lines)+len(old)-tailStart)
	result = append(result, old[:start.Row]...)
	result = append(result, lines...)
	result = append(result, old[tailStart:]...)

	return strings.Join(result, "\n"), nil
}
