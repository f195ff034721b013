// Package httpapi exposes the analyzer and the credential vault over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mzaytsev/passguard/internal/analyzer"
	"github.com/mzaytsev/passguard/internal/logging"
	"github.com/mzaytsev/passguard/internal/server/models"
	"github.com/mzaytsev/passguard/internal/server/services"
	"github.com/mzaytsev/passguard/internal/session"
)

// PasswordAnalyzer produces a full analysis report for one password.
type PasswordAnalyzer interface {
	Analyze(ctx context.Context, password string) (*analyzer.Report, error)
}

// UserProvider is the account surface the handlers need.
type UserProvider interface {
	Register(ctx context.Context, username, email, master string) (*services.AuthResult, error)
	Login(ctx context.Context, username, master string) (*services.AuthResult, error)
	Logout(ctx context.Context, sessionID string)
	RefreshSession(ctx context.Context, userID int64, sessionID, master string) error
	DeleteAccount(ctx context.Context, userID int64, sessionID, master string) error
}

// VaultProvider is the credential-storage surface the handlers need.
type VaultProvider interface {
	Save(ctx context.Context, userID int64, master, password, website, label string, score int, entropy float64) (*models.Credential, error)
	List(ctx context.Context, userID int64, master string) ([]*services.DecryptedCredential, error)
	Get(ctx context.Context, userID, id int64, master string) (*services.DecryptedCredential, error)
	Delete(ctx context.Context, userID, id int64) error
}

type Server struct {
	address   string
	logger    logging.Logger
	analyzer  PasswordAnalyzer
	users     UserProvider
	vault     VaultProvider
	sessions  *session.Store
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, a PasswordAnalyzer, us UserProvider, vs VaultProvider, sessions *session.Store, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		analyzer:  a,
		users:     us,
		vault:     vs,
		sessions:  sessions,
		jwtSecret: []byte(secretKey),
	}
}

// Routes builds the API router. Analysis needs no account; the vault and
// session endpoints require a token, and the vault additionally a live
// session holding the master secret.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/api/healthz", s.handleHealthz)
	r.Post("/api/analyze", s.handleAnalyze)
	r.Post("/api/register", s.handleRegister)
	r.Post("/api/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.withToken)
		r.Post("/api/logout", s.handleLogout)
		r.Post("/api/session/refresh", s.handleRefreshSession)
		r.Delete("/api/account", s.handleDeleteAccount)

		r.Group(func(r chi.Router) {
			r.Use(s.withSession)
			r.Post("/api/passwords", s.handleSavePassword)
			r.Get("/api/passwords", s.handleListPasswords)
			r.Get("/api/passwords/{id}", s.handleGetPassword)
			r.Delete("/api/passwords/{id}", s.handleDeletePassword)
		})
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
