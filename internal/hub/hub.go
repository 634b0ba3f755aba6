// Package hub is the central authority for project rooms: it tracks every
// connected session, groups them by project, routes file mutations to the
// file service, and broadcasts the resulting events back to the room.
package hub

import (
	"fmt"
	"log"
	"sync"

	"github.com/codecollab/editor-server/internal/files"
	"github.com/codecollab/editor-server/internal/projects"
	"github.com/codecollab/editor-server/internal/protocol"
)

// SessionID identifies one live connection. IDs are process-unique and
// never reused while the server runs.
type SessionID int64

// Peer is the hub's handle to a connected session. Deliver must be safe
// for concurrent use; a returned error means the transport is dead and the
// hub treats it as an implicit Leave.
type Peer interface {
	Deliver(event protocol.OutgoingEvent) error
}

// ProjectDirectory provides project metadata for join snapshots.
type ProjectDirectory interface {
	Get(projectID int64) (projects.Project, error)
}

// member is one session's entry in the registry. The hub holds only this
// handle; the session's private state stays with the connection task.
type member struct {
	id        SessionID
	userID    int64
	projectID int64
	peer      Peer
}

// room is the set of sessions editing one project. members is guarded by
// the hub's registry lock; commandMu serializes every routed command for
// this project, including the file service call it makes, so all members
// observe mutations and broadcasts in one total order. Commands for
// different rooms run concurrently.
type room struct {
	commandMu sync.Mutex
	members   map[SessionID]*member
}

// Config holds the hub's collaborators.
type Config struct {
	Files    files.Service
	Projects ProjectDirectory
}

// Hub routes commands between peer sessions and the file service.
type Hub struct {
	files    files.Service
	projects ProjectDirectory

	mu       sync.RWMutex
	nextID   SessionID
	rooms    map[int64]*room
	sessions map[SessionID]*member
}

// New creates a hub with no rooms.
func New(cfg Config) *Hub {
	return &Hub{
		files:    cfg.Files,
		projects: cfg.Projects,
		rooms:    make(map[int64]*room),
		sessions: make(map[SessionID]*member),
	}
}

// Join registers a peer in the room for projectID, creating the room if
// absent, and returns the freshly allocated SessionID. The initial project
// snapshot is delivered to the joining peer before Join returns.
func (h *Hub) Join(peer Peer, projectID, userID int64) (SessionID, error) {
	h.mu.Lock()

	h.nextID++
	m := &member{id: h.nextID, userID: userID, projectID: projectID, peer: peer}

	r, exists := h.rooms[projectID]
	if !exists {
		r = &room{members: make(map[SessionID]*member)}
		h.rooms[projectID] = r
	}

	r.members[m.id] = m
	h.sessions[m.id] = m

	h.mu.Unlock()

	log.Printf("session %d joined project %d (user %d)", m.id, projectID, userID)
	h.deliverSnapshot(m)

	return m.id, nil
}

// deliverSnapshot sends the initial project state to a newly joined peer.
func (h *Hub) deliverSnapshot(m *member) {
	project, err := h.projects.Get(m.projectID)
	if err != nil {
		log.Printf("failed to load project %d for snapshot: %v", m.projectID, err)
		h.deliverTo(m, protocol.ErrorNotice{Text: "failed to load project"})

		return
	}

	fileList, err := h.files.List(m.projectID)
	if err != nil {
		log.Printf("failed to list files of project %d for snapshot: %v", m.projectID, err)
		h.deliverTo(m, protocol.ErrorNotice{Text: "failed to load project files"})

		return
	}

	snapshot := protocol.ProjectSnapshot{
		Project: protocol.SnapshotProject{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
		},
		Files: make([]protocol.SnapshotFile, 0, len(fileList)),
	}

	for _, file := range fileList {
		snapshot.Files = append(snapshot.Files, protocol.SnapshotFile{ID: file.ID, Name: file.Name})
	}

	h.deliverTo(m, snapshot)
}

// Leave removes a session from its room, dropping the room when it becomes
// empty. Unknown session IDs are a no-op: a session may legitimately race
// its own disconnect against an in-flight command.
func (h *Hub) Leave(id SessionID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, exists := h.sessions[id]
	if !exists {
		return
	}

	delete(h.sessions, id)

	if r, ok := h.rooms[m.projectID]; ok {
		delete(r.members, id)

		if len(r.members) == 0 {
			delete(h.rooms, m.projectID)
		}
	}

	log.Printf("session %d left project %d", id, m.projectID)
}

// RouteNewFile creates a file in the session's project and announces it to
// the whole room, requester included.
func (h *Hub) RouteNewFile(id SessionID, name string) {
	m, r := h.lookup(id)
	if m == nil {
		return
	}

	r.commandMu.Lock()
	defer r.commandMu.Unlock()

	file, err := h.files.Create(m.projectID, name)
	if err != nil {
		log.Printf("session %d failed to create file %q: %v", id, name, err)
		h.deliverTo(m, protocol.ErrorNotice{Text: fmt.Sprintf("can't create file %s: %v", name, err)})

		return
	}

	h.broadcast(m.projectID, protocol.FileCreated{FileID: file.ID, Name: file.Name}, nil)
}

// RouteDeleteFile deletes a file and announces the deletion to the whole
// room, requester included.
func (h *Hub) RouteDeleteFile(id SessionID, fileID int64) {
	m, r := h.lookup(id)
	if m == nil {
		return
	}

	r.commandMu.Lock()
	defer r.commandMu.Unlock()

	if err := h.files.Delete(fileID); err != nil {
		log.Printf("session %d failed to delete file %d: %v", id, fileID, err)
		h.deliverTo(m, protocol.ErrorNotice{Text: fmt.Sprintf("can't delete file %d: %v", fileID, err)})

		return
	}

	h.broadcast(m.projectID, protocol.FileDeleted{FileID: fileID}, nil)
}

// RouteRenameFile is accepted but not acted on; the backend has no rename
// operation yet. Kept so the dispatch stays exhaustive over the protocol.
func (h *Hub) RouteRenameFile(id SessionID, fileID int64, newName string) {
	log.Printf("session %d requested rename of file %d to %q: not supported", id, fileID, newName)
}

// RouteGetContent fetches file content and replies to the requesting
// session only. Content replies are per-viewer, never broadcast.
func (h *Hub) RouteGetContent(id SessionID, fileID int64) {
	m, r := h.lookup(id)
	if m == nil {
		return
	}

	r.commandMu.Lock()
	defer r.commandMu.Unlock()

	content, err := h.files.GetContent(fileID)
	if err != nil {
		log.Printf("session %d failed to read file %d: %v", id, fileID, err)
		h.deliverTo(m, protocol.ErrorNotice{Text: fmt.Sprintf("can't read file %d: %v", fileID, err)})

		return
	}

	h.deliverTo(m, protocol.FileContent{FileID: fileID, Content: content})
}

// RouteChange applies a line-range edit and relays it to every other
// session in the room. The originator already holds the edit locally and
// must not re-apply it.
func (h *Hub) RouteChange(id SessionID, change protocol.FileChange) {
	m, r := h.lookup(id)
	if m == nil {
		return
	}

	r.commandMu.Lock()
	defer r.commandMu.Unlock()

	err := h.files.ApplyLineChange(change.FileID, change.Start, change.End, change.Lines)
	if err != nil {
		log.Printf("session %d failed to change file %d: %v", id, change.FileID, err)
		h.deliverTo(m, protocol.ErrorNotice{Text: fmt.Sprintf("can't apply change to file %d: %v", change.FileID, err)})

		return
	}

	exclude := m.id
	h.broadcast(m.projectID, protocol.ChangeApplied{Change: change}, &exclude)
}

// RouteChat relays a chat line to the whole room, sender included.
func (h *Hub) RouteChat(id SessionID, text string) {
	m, r := h.lookup(id)
	if m == nil {
		return
	}

	r.commandMu.Lock()
	defer r.commandMu.Unlock()

	h.broadcast(m.projectID, protocol.Chat{Text: text}, nil)
}

// lookup resolves a session to its member entry and room. Both are nil
// when the session is unknown (already left).
func (h *Hub) lookup(id SessionID) (*member, *room) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	m, exists := h.sessions[id]
	if !exists {
		log.Printf("dropping command for unknown session %d", id)

		return nil, nil
	}

	return m, h.rooms[m.projectID]
}

// broadcast delivers an event to every member of the project's room except
// the excluded one. A failed delivery never blocks the rest: the dead
// session is logged and lazily removed, equivalent to an implicit Leave.
func (h *Hub) broadcast(projectID int64, event protocol.OutgoingEvent, exclude *SessionID) {
	h.mu.RLock()

	r, exists := h.rooms[projectID]
	if !exists {
		h.mu.RUnlock()

		return
	}

	targets := make([]*member, 0, len(r.members))

	for _, m := range r.members {
		if exclude != nil && m.id == *exclude {
			continue
		}

		targets = append(targets, m)
	}

	h.mu.RUnlock()

	var dead []SessionID

	for _, m := range targets {
		if err := m.peer.Deliver(event); err != nil {
			log.Printf("failed to deliver to session %d: %v", m.id, err)
			dead = append(dead, m.id)
		}
	}

	for _, id := range dead {
		h.Leave(id)
	}
}

// deliverTo sends an event to one member, removing it on delivery failure.
func (h *Hub) deliverTo(m *member, event protocol.OutgoingEvent) {
	if err := m.peer.Deliver(event); err != nil {
		log.Printf("failed to deliver to session %d: %v", m.id, err)
		h.Leave(m.id)
	}
}

// RoomCount returns the number of active rooms.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms)
}

// SessionCount returns the number of sessions in a project's room.
func (h *Hub) SessionCount(projectID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if r, exists := h.rooms[projectID]; exists {
		return len(r.members)
	}

	return 0
}
