package api

import "net/http"

const sessionCookie = "session"

// authMiddleware resolves the session cookie to a user ID and adds it
// to the request context. Requests without a live session are rejected.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			http.Error(w, "missing session cookie", http.StatusUnauthorized)

			return
		}

		userID, err := s.tokens.Resolve(cookie.Value)
		if err != nil {
			http.Error(w, "invalid or expired session", http.StatusUnauthorized)

			return
		}

		ctx := withUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
