package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/codecollab/editor-server/internal/acl"
	"github.com/codecollab/editor-server/internal/projects"
)

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectResponse is the JSON shape of a project.
type ProjectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     int64  `json:"ownerId"`
}

// AccessRequest is the request body for granting or revoking access.
type AccessRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// handleProjects routes GET and POST requests for /projects.
func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListProjects(w, r)
	case http.MethodPost:
		s.handleCreateProject(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleProjectByID routes /projects/{id} and /projects/{id}/access.
func (s *Server) handleProjectByID(w http.ResponseWriter, r *http.Request) {
	projectID, rest, ok := parseProjectPath(r.URL.Path)
	if !ok {
		http.Error(w, "invalid project id", http.StatusBadRequest)

		return
	}

	switch {
	case rest == "" && r.Method == http.MethodDelete:
		s.handleDeleteProject(w, r, projectID)
	case rest == "access" && r.Method == http.MethodPost:
		s.handleGrantAccess(w, r, projectID)
	case rest == "access" && r.Method == http.MethodDelete:
		s.handleRevokeAccess(w, r, projectID)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleListProjects handles GET /projects.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	owned, err := s.projects.ListByOwner(userID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	response := make([]ProjectResponse, 0, len(owned))
	for _, project := range owned {
		response = append(response, toProjectResponse(project))
	}

	writeJSON(w, http.StatusOK, response)
}

// handleCreateProject handles POST /projects. The creator becomes the
// project's owner in the access table.
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)

		return
	}

	userID := UserIDFromContext(r.Context())

	project, err := s.projects.Create(req.Name, req.Description, userID)
	if err != nil {
		switch {
		case errors.Is(err, projects.ErrDuplicateName):
			http.Error(w, "project name already taken", http.StatusConflict)
		case errors.Is(err, projects.ErrIllegalName):
			http.Error(w, "project name is required", http.StatusBadRequest)
		default:
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}

		return
	}

	if err := s.access.Grant(project.ID, userID, acl.Owner); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

// handleDeleteProject handles DELETE /projects/{id}.
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request, projectID int64) {
	userID := UserIDFromContext(r.Context())

	if !s.requireProjectAction(w, projectID, userID, acl.ActionDelete) {
		return
	}

	if err := s.projects.Delete(projectID); err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)

			return
		}

		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGrantAccess handles POST /projects/{id}/access.
func (s *Server) handleGrantAccess(w http.ResponseWriter, r *http.Request, projectID int64) {
	userID := UserIDFromContext(r.Context())

	if !s.requireProjectAction(w, projectID, userID, acl.ActionShare) {
		return
	}

	var req AccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)

		return
	}

	role, ok := parseRole(req.Role)
	if !ok {
		http.Error(w, "role must be viewer or editor", http.StatusBadRequest)

		return
	}

	if err := s.access.Grant(projectID, req.UserID, role); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleRevokeAccess handles DELETE /projects/{id}/access.
func (s *Server) handleRevokeAccess(w http.ResponseWriter, r *http.Request, projectID int64) {
	userID := UserIDFromContext(r.Context())

	if !s.requireProjectAction(w, projectID, userID, acl.ActionShare) {
		return
	}

	var req AccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)

		return
	}

	if err := s.access.Revoke(projectID, req.UserID); err != nil {
		if errors.Is(err, acl.ErrPermissionNotFound) {
			http.Error(w, "permission not found", http.StatusNotFound)

			return
		}

		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireProjectAction writes the error response and returns false when
// the user may not perform the action.
func (s *Server) requireProjectAction(
	w http.ResponseWriter, projectID, userID int64, action acl.Action,
) bool {
	if err := s.checker.RequirePermission(projectID, userID, action); err != nil {
		if errors.Is(err, acl.ErrAccessDenied) {
			http.Error(w, "access denied", http.StatusForbidden)
		} else {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}

		return false
	}

	return true
}

// parseProjectPath splits "/projects/{id}[/rest]" into the ID and the
// remaining path segment.
func parseProjectPath(path string) (int64, string, bool) {
	trimmed := strings.TrimPrefix(path, "/projects/")

	idPart, rest, _ := strings.Cut(trimmed, "/")

	projectID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, "", false
	}

	return projectID, rest, true
}

func parseRole(role string) (acl.Role, bool) {
	switch role {
	case "viewer":
		return acl.Viewer, true
	case "editor":
		return acl.Editor, true
	default:
		return 0, false
	}
}

func toProjectResponse(project projects.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
	}
}
