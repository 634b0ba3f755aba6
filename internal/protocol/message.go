// Package protocol implements the single-character-prefixed text protocol
// spoken between editor clients and the server. The first byte of every
// frame is the message-type code; the rest is a code-specific payload.
package protocol

// Position locates a point in a file as a zero-based line/column pair.
type Position struct {
	Row uint32
	Col uint32
}

// IncomingMessage is a client-to-server request decoded from a frame.
type IncomingMessage interface {
	incoming()
}

// NewFile asks the server to create a file in the session's project.
type NewFile struct {
	Name string
}

// DeleteFile asks the server to delete a file.
type DeleteFile struct {
	FileID int64
}

// RenameFile asks the server to rename a file. It is accepted by the
// codec but not acted on by the server.
type RenameFile struct {
	FileID  int64
	NewName string
}

// GetFileContent asks the server for the full content of a file.
type GetFileContent struct {
	FileID int64
}

// ChatMessage carries a chat line for everyone editing the project.
type ChatMessage struct {
	Text string
}

// FileChange is a raw line-range edit: the rows [Start.Row, End.Row] of
// the file are replaced by Lines. LastAppliedChangeID is nil when the
// client has not yet applied any remote change.
type FileChange struct {
	FileID              int64
	Start               Position
	End                 Position
	LastAppliedChangeID *int
	Lines               []string
}

func (NewFile) incoming()        {}
func (DeleteFile) incoming()     {}
func (RenameFile) incoming()     {}
func (GetFileContent) incoming() {}
func (ChatMessage) incoming()    {}
func (FileChange) incoming()     {}

// OutgoingEvent is a server-to-client notification encoded onto the wire.
type OutgoingEvent interface {
	outgoing()
}

// FileCreated announces a newly created file to a project room.
type FileCreated struct {
	FileID int64
	Name   string
}

// FileDeleted announces a deleted file to a project room.
type FileDeleted struct {
	FileID int64
}

// FileContent answers a GetFileContent request. It is sent only to the
// requesting session, never broadcast.
type FileContent struct {
	FileID  int64
	Content string
}

// ChangeApplied relays an accepted FileChange to the other sessions in
// the room so each peer can apply the same edit locally.
type ChangeApplied struct {
	Change FileChange
}

// Chat relays a chat line to a project room.
type Chat struct {
	Text string
}

// ErrorNotice reports a failed request back to its originating session.
type ErrorNotice struct {
	Text string
}

// SnapshotProject is the project header inside a ProjectSnapshot.
type SnapshotProject struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SnapshotFile is one file entry inside a ProjectSnapshot.
type SnapshotFile struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProjectSnapshot is the initial project state sent to a session right
// after it joins a room. The payload is JSON.
type ProjectSnapshot struct {
	Project SnapshotProject `json:"project"`
	Files   []SnapshotFile  `json:"files"`
}

func (FileCreated) outgoing()     {}
func (FileDeleted) outgoing()     {}
func (FileContent) outgoing()     {}
func (ChangeApplied) outgoing()   {}
func (Chat) outgoing()            {}
func (ErrorNotice) outgoing()     {}
func (ProjectSnapshot) outgoing() {}
