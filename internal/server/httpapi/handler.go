package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mzaytsev/passguard/internal/common"
)

var errMissingToken = errors.New("missing token")

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps sentinel errors to status codes. The reason string in the
// body is short and machine-checkable; diagnostic detail goes to the log
// only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var code int
	var reason string

	switch {
	case errors.Is(err, common.ErrorEmptyPassword):
		code, reason = http.StatusBadRequest, common.ErrorEmptyPassword.Error()
	case errors.Is(err, common.ErrorInvalidInput):
		code, reason = http.StatusBadRequest, common.ErrorInvalidInput.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		code, reason = http.StatusConflict, common.ErrorAlreadyExists.Error()
	case errors.Is(err, common.ErrorNotFound):
		code, reason = http.StatusNotFound, common.ErrorNotFound.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		code, reason = http.StatusUnauthorized, common.ErrorUnauthorized.Error()
	case errors.Is(err, errMissingToken):
		code, reason = http.StatusUnauthorized, errMissingToken.Error()
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		code, reason = http.StatusUnauthorized, common.ErrInvalidToken.Error()
	case errors.Is(err, common.ErrorSessionExpired):
		code, reason = http.StatusUnauthorized, common.ErrorSessionExpired.Error()
	case errors.Is(err, common.ErrorSecretUnavailable):
		code, reason = http.StatusUnauthorized, common.ErrorSecretUnavailable.Error()
	default:
		code, reason = http.StatusInternalServerError, common.ErrorInternal.Error()
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}

	s.writeJSON(w, code, errorResponse{Error: reason})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "error encoding response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(v); err != nil {
		return common.ErrorInvalidInput
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registration request", "username", req.Username)

	result, err := s.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", result.User.Username)
	s.writeJSON(w, http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.users.Logout(r.Context(), requestSessionID(r))
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type refreshRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleRefreshSession(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	err := s.users.RefreshSession(r.Context(), requestUserID(r), requestSessionID(r), req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// handleDeleteAccount requires the master password in the body as an
// explicit confirmation rather than trusting the session secret.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	err := s.users.DeleteAccount(r.Context(), requestUserID(r), requestSessionID(r), req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "account deleted"})
}

type savePasswordRequest struct {
	Password string  `json:"password"`
	Website  string  `json:"website"`
	Label    string  `json:"label"`
	Score    int     `json:"score"`
	Entropy  float64 `json:"entropy"`
}

func (s *Server) handleSavePassword(w http.ResponseWriter, r *http.Request) {
	var req savePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	cred, err := s.vault.Save(r.Context(), requestUserID(r), requestMaster(r),
		req.Password, req.Website, req.Label, req.Score, req.Entropy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, cred)
}

func (s *Server) handleListPasswords(w http.ResponseWriter, r *http.Request) {
	items, err := s.vault.List(r.Context(), requestUserID(r), requestMaster(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"passwords": items})
}

func (s *Server) handleGetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, r, common.ErrorInvalidInput)
		return
	}

	item, err := s.vault.Get(r.Context(), requestUserID(r), id, requestMaster(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeletePassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, r, common.ErrorInvalidInput)
		return
	}

	if err := s.vault.Delete(r.Context(), requestUserID(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
