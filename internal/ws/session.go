package ws

import (
	"log"
	"sync"
	"time"

	"github.com/codecollab/editor-server/internal/hub"
	"github.com/codecollab/editor-server/internal/protocol"
)

// Heartbeat defaults: the session pings on every interval regardless of
// inbound traffic and drops the connection when no liveness signal has
// arrived within the timeout.
const (
	DefaultPingInterval  = 5 * time.Second
	DefaultClientTimeout = 10 * time.Second
)

// Hub is the session's view of the room registry and router.
type Hub interface {
	Join(peer hub.Peer, projectID, userID int64) (hub.SessionID, error)
	Leave(id hub.SessionID)
	RouteNewFile(id hub.SessionID, name string)
	RouteDeleteFile(id hub.SessionID, fileID int64)
	RouteRenameFile(id hub.SessionID, fileID int64, newName string)
	RouteGetContent(id hub.SessionID, fileID int64)
	RouteChange(id hub.SessionID, change protocol.FileChange)
	RouteChat(id hub.SessionID, text string)
}

// SessionConfig holds everything a session needs before it starts.
type SessionConfig struct {
	Conn          Conn
	Hub           Hub
	ProjectID     int64
	UserID        int64
	PingInterval  time.Duration
	ClientTimeout time.Duration
}

// Session owns one client connection for the lifetime of the stream. The
// transport task that calls Run is the only owner of the session's private
// state; the hub holds just the Deliver handle.
type Session struct {
	conn      Conn
	hub       Hub
	projectID int64
	userID    int64

	pingInterval  time.Duration
	clientTimeout time.Duration

	id hub.SessionID

	writeMu sync.Mutex

	beatMu   sync.Mutex
	lastBeat time.Time

	done      chan struct{}
	closeOnce sync.Once
}

// NewSession creates a session for an established, authorized connection.
func NewSession(cfg SessionConfig) *Session {
	pingInterval := cfg.PingInterval
	if pingInterval == 0 {
		pingInterval = DefaultPingInterval
	}

	clientTimeout := cfg.ClientTimeout
	if clientTimeout == 0 {
		clientTimeout = DefaultClientTimeout
	}

	return &Session{
		conn:          cfg.Conn,
		hub:           cfg.Hub,
		projectID:     cfg.ProjectID,
		userID:        cfg.UserID,
		pingInterval:  pingInterval,
		clientTimeout: clientTimeout,
		done:          make(chan struct{}),
	}
}

// ID returns the hub-assigned session identity. Valid after Run has
// joined the hub.
func (s *Session) ID() hub.SessionID {
	return s.id
}

// Run drives the session until the stream ends: join the hub, arm the
// heartbeat, then read frames. It returns once the session has
// terminated and the hub has been notified.
func (s *Session) Run() {
	id, err := s.hub.Join(s, s.projectID, s.userID)
	if err != nil {
		log.Printf("join failed for user %d on project %d: %v", s.userID, s.projectID, err)
		_ = s.conn.Close()

		return
	}

	s.id = id
	s.touch()
	s.conn.SetLivenessHandler(s.touch)

	go s.heartbeat()

	s.readLoop()
	s.terminate()
}

// Deliver encodes a hub event and writes it to the client. A write
// failure is a transport failure: the connection is closed so the read
// loop unwinds and the hub reaps the session.
func (s *Session) Deliver(event protocol.OutgoingEvent) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.WriteFrame(protocol.Encode(event)); err != nil {
		_ = s.conn.Close()

		return err
	}

	return nil
}

// readLoop decodes and dispatches inbound frames until the stream errors.
// Malformed frames are logged and dropped; they never produce a reply and
// never end the session.
func (s *Session) readLoop() {
	for {
		frame, err := s.conn.ReadFrame()
		if err != nil {
			log.Printf("session %d read ended: %v", s.id, err)

			return
		}

		message, err := protocol.Decode(frame)
		if err != nil {
			log.Printf("session %d sent bad frame: %v", s.id, err)

			continue
		}

		s.dispatch(message)
	}
}

// dispatch forwards one decoded request to the hub, tagged with this
// session's identity.
func (s *Session) dispatch(message protocol.IncomingMessage) {
	switch m := message.(type) {
	case protocol.NewFile:
		s.hub.RouteNewFile(s.id, m.Name)
	case protocol.DeleteFile:
		s.hub.RouteDeleteFile(s.id, m.FileID)
	case protocol.RenameFile:
		s.hub.RouteRenameFile(s.id, m.FileID, m.NewName)
	case protocol.GetFileContent:
		s.hub.RouteGetContent(s.id, m.FileID)
	case protocol.FileChange:
		s.hub.RouteChange(s.id, m)
	case protocol.ChatMessage:
		s.hub.RouteChat(s.id, m.Text)
	}
}

// heartbeat pings the client on a fixed cadence and terminates the
// session when no ping or pong has arrived within the timeout. This is
// the session's own responsibility; it never involves the hub or blocks
// other sessions.
func (s *Session) heartbeat() {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if time.Since(s.lastSignal()) >= s.clientTimeout {
				log.Printf("session %d heartbeat timed out, disconnecting", s.id)
				s.terminate()

				return
			}

			s.writeMu.Lock()
			err := s.conn.WritePing()
			s.writeMu.Unlock()

			if err != nil {
				log.Printf("session %d ping failed: %v", s.id, err)
				s.terminate()

				return
			}
		}
	}
}

// touch records a liveness signal.
func (s *Session) touch() {
	s.beatMu.Lock()
	defer s.beatMu.Unlock()

	s.lastBeat = time.Now()
}

func (s *Session) lastSignal() time.Time {
	s.beatMu.Lock()
	defer s.beatMu.Unlock()

	return s.lastBeat
}

// terminate closes the transport and notifies the hub exactly once, even
// when a heartbeat timeout races the stream closing under it.
func (s *Session) terminate() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
		s.hub.Leave(s.id)
	})
}

// Ensure Session satisfies the hub's peer handle.
var _ hub.Peer = (*Session)(nil)
