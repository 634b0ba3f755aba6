package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Decode errors.
var (
	ErrEmptyFrame      = errors.New("frame has no payload")
	ErrUnknownCode     = errors.New("unknown message code")
	ErrMalformedField  = errors.New("malformed field")
	ErrWrongFieldCount = errors.New("wrong field count")
)

// Message-type codes. Incoming and outgoing codes are separate spaces:
// a reply mirrors its request code where natural, so `3` means "rename"
// on the way in but "file created" on the way out.
const (
	codeInNewFile    = '1'
	codeInDeleteFile = '2'
	codeInRenameFile = '3'
	codeInGetContent = '4'
	codeInFileChange = '5'
	codeInChat       = '6'

	codeOutFileCreated   = "3"
	codeOutFileDeleted   = "4"
	codeOutFileContent   = "5"
	codeOutChangeApplied = "6"
	codeOutChat          = "7"
	codeOutSnapshot      = "9"
	codeOutError         = "a"
)

// fileChangeFieldCount is the exact number of space-separated fields in a
// code-5 payload. The last field holds the space-joined line contents, so
// splitting must stop after six delimiters.
const fileChangeFieldCount = 7

// noChangeID is how an absent LastAppliedChangeID is written on the wire.
// It is deliberately unparseable as an integer so it decodes back to nil.
const noChangeID = "-"

// Decode parses one wire frame into a typed message. A failed decode
// never produces a reply; the caller logs and drops the frame.
func Decode(frame string) (IncomingMessage, error) {
	if len(frame) <= 1 {
		return nil, ErrEmptyFrame
	}

	payload := frame[1:]

	switch frame[0] {
	case codeInNewFile:
		return NewFile{Name: payload}, nil
	case codeInDeleteFile:
		fileID, err := parseFileID(payload)
		if err != nil {
			return nil, err
		}

		return DeleteFile{FileID: fileID}, nil
	case codeInRenameFile:
		return decodeRename(payload)
	case codeInGetContent:
		fileID, err := parseFileID(payload)
		if err != nil {
			return nil, err
		}

		return GetFileContent{FileID: fileID}, nil
	case codeInFileChange:
		return decodeFileChange(payload)
	case codeInChat:
		return ChatMessage{Text: payload}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCode, frame[0])
	}
}

// decodeRename parses "fileID newName".
func decodeRename(payload string) (IncomingMessage, error) {
	parts := strings.SplitN(payload, " ", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: rename needs 2 fields, got %d", ErrWrongFieldCount, len(parts))
	}

	fileID, err := parseFileID(parts[0])
	if err != nil {
		return nil, err
	}

	return RenameFile{FileID: fileID, NewName: parts[1]}, nil
}

// decodeFileChange parses
// "fileID startRow startCol endRow endCol lastAppliedChangeID lines...".
func decodeFileChange(payload string) (IncomingMessage, error) {
	parts := strings.SplitN(payload, " ", fileChangeFieldCount)
	if len(parts) != fileChangeFieldCount {
		return nil, fmt.Errorf("%w: change needs %d fields, got %d",
			ErrWrongFieldCount, fileChangeFieldCount, len(parts))
	}

	fileID, err := parseFileID(parts[0])
	if err != nil {
		return nil, err
	}

	start, err := parsePosition(parts[1], parts[2])
	if err != nil {
		return nil, err
	}

	end, err := parsePosition(parts[3], parts[4])
	if err != nil {
		return nil, err
	}

	// Optional field: anything unparseable means "no change applied yet",
	// not a protocol error.
	var lastApplied *int
	if id, err := strconv.Atoi(parts[5]); err == nil {
		lastApplied = &id
	}

	return FileChange{
		FileID:              fileID,
		Start:               start,
		End:                 end,
		LastAppliedChangeID: lastApplied,
		Lines:               strings.Split(parts[6], " "),
	}, nil
}

func parseFileID(field string) (int64, error) {
	fileID, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: file id %q", ErrMalformedField, field)
	}

	return fileID, nil
}

func parsePosition(rowField, colField string) (Position, error) {
	row, err := strconv.ParseUint(rowField, 10, 32)
	if err != nil {
		return Position{}, fmt.Errorf("%w: row %q", ErrMalformedField, rowField)
	}

	col, err := strconv.ParseUint(colField, 10, 32)
	if err != nil {
		return Position{}, fmt.Errorf("%w: column %q", ErrMalformedField, colField)
	}

	return Position{Row: uint32(row), Col: uint32(col)}, nil
}

// Encode renders an event as a one-line text frame. It is total: every
// OutgoingEvent has a wire form and encoding never fails.
func Encode(event OutgoingEvent) string {
	switch e := event.(type) {
	case FileCreated:
		return codeOutFileCreated + strconv.FormatInt(e.FileID, 10) + " " + e.Name
	case FileDeleted:
		return codeOutFileDeleted + strconv.FormatInt(e.FileID, 10)
	case FileContent:
		return codeOutFileContent + strconv.FormatInt(e.FileID, 10) + " " + e.Content
	case ChangeApplied:
		return codeOutChangeApplied + encodeChange(e.Change)
	case Chat:
		return codeOutChat + e.Text
	case ProjectSnapshot:
		return codeOutSnapshot + encodeSnapshot(e)
	case ErrorNotice:
		return codeOutError + e.Text
	default:
		// Unreachable for the closed OutgoingEvent set.
		return codeOutError + fmt.Sprintf("unencodable event %T", event)
	}
}

// encodeChange writes the change payload with the same field layout the
// decoder expects, so clients reuse one parser for both directions.
func encodeChange(change FileChange) string {
	lastApplied := noChangeID
	if change.LastAppliedChangeID != nil {
		lastApplied = strconv.Itoa(*change.LastAppliedChangeID)
	}

	fields := []string{
		strconv.FormatInt(change.FileID, 10),
		strconv.FormatUint(uint64(change.Start.Row), 10),
		strconv.FormatUint(uint64(change.Start.Col), 10),
		strconv.FormatUint(uint64(change.End.Row), 10),
		strconv.FormatUint(uint64(change.End.Col), 10),
		lastApplied,
		strings.Join(change.Lines, " "),
	}

	return strings.Join(fields, " ")
}

func encodeSnapshot(snapshot ProjectSnapshot) string {
	if snapshot.Files == nil {
		snapshot.Files = []SnapshotFile{}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		// Marshal of these plain structs cannot fail.
		return "{}"
	}

	return string(data)
}
