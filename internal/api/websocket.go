package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/codecollab/editor-server/internal/ws"
)

// handleWebSocket handles GET /ws?projectId={id}. Access is checked
// before the upgrade so an unauthorized client gets a plain 403 instead
// of a connection that dies immediately.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return
	}

	projectID, err := strconv.ParseInt(r.URL.Query().Get("projectId"), 10, 64)
	if err != nil {
		http.Error(w, "projectId query parameter is required", http.StatusBadRequest)

		return
	}

	userID := UserIDFromContext(r.Context())

	if !s.checker.CanEdit(userID, projectID) {
		http.Error(w, "access denied", http.StatusForbidden)

		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)

		return
	}

	session := ws.NewSession(ws.SessionConfig{
		Conn:          ws.NewGorillaConn(conn),
		Hub:           s.hub,
		ProjectID:     projectID,
		UserID:        userID,
		PingInterval:  s.pingInterval,
		ClientTimeout: s.clientTimeout,
	})

	session.Run()
}
