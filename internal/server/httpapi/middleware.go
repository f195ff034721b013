package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/mzaytsev/passguard/internal/server/auth"
)

type ctxKey string

const (
	userIDKey    ctxKey = "userID"
	sessionIDKey ctxKey = "sessionID"
	masterKey    ctxKey = "master"
)

// withToken authenticates the request by its Bearer token and puts the user
// and session IDs on the context. It does not require the session to still
// hold the master secret.
func (s *Server) withToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, r, errMissingToken)
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, sessionIDKey, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withSession additionally resolves the server-side session and puts the
// master secret on the context. Runs after withToken.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, _ := r.Context().Value(sessionIDKey).(string)

		userID, master, err := s.sessions.Get(sessionID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if tokenUserID, _ := r.Context().Value(userIDKey).(int64); tokenUserID != userID {
			s.writeError(w, r, errMissingToken)
			return
		}

		ctx := context.WithValue(r.Context(), masterKey, master)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestUserID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}

func requestSessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDKey).(string)
	return id
}

func requestMaster(r *http.Request) string {
	m, _ := r.Context().Value(masterKey).(string)
	return m
}
