package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/codecollab/editor-server/internal/users"
)

// CredentialsRequest is the request body for register and login.
type CredentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UserResponse is the response body for register and login.
type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// handleRegister handles POST /register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return
	}

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	hash, err := users.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	user, err := s.users.Create(req.Name, hash)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrDuplicateName):
			http.Error(w, "username already taken", http.StatusConflict)
		case errors.Is(err, users.ErrIllegalName):
			http.Error(w, "illegal username", http.StatusBadRequest)
		default:
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}

		return
	}

	s.startSession(w, user)
	writeJSON(w, http.StatusCreated, UserResponse{ID: user.ID, Name: user.Name})
}

// handleLogin handles POST /login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return
	}

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := s.users.GetByName(req.Name)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)

			return
		}

		http.Error(w, "internal server error", http.StatusInternalServerError)

		return
	}

	if !users.VerifyPassword(user.PasswordHash, req.Password) {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)

		return
	}

	s.startSession(w, user)
	writeJSON(w, http.StatusOK, UserResponse{ID: user.ID, Name: user.Name})
}

// handleLogout handles POST /logout.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.tokens.Revoke(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	w.WriteHeader(http.StatusNoContent)
}

// startSession issues a token and sets the session cookie.
func (s *Server) startSession(w http.ResponseWriter, user users.User) {
	token := s.tokens.Issue(user.ID)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)

		return CredentialsRequest{}, false
	}

	if req.Name == "" || req.Password == "" {
		http.Error(w, "name and password are required", http.StatusBadRequest)

		return CredentialsRequest{}, false
	}

	return req, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
