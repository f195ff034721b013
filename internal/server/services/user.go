// Package services contains server-side business logic. This file implements
// UserService: registration, login, logout, and session refresh.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mzaytsev/passguard/internal/common"
	"github.com/mzaytsev/passguard/internal/dbx"
	"github.com/mzaytsev/passguard/internal/server/auth"
	"github.com/mzaytsev/passguard/internal/server/config"
	"github.com/mzaytsev/passguard/internal/server/models"
	"github.com/mzaytsev/passguard/internal/server/repositories/repomanager"
	"github.com/mzaytsev/passguard/internal/session"
	"github.com/mzaytsev/passguard/internal/vault"
)

// AuthResult is what a successful registration or login returns: the account
// and the access token bound to a fresh server-side session holding the
// master password.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService handles accounts and their sessions. The master password only
// lives in the session store; the database sees its PBKDF2 hash.
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	sessions        *session.Store
	jwtSecret       []byte
	sessionLifetime time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, sessions *session.Store, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		sessions:        sessions,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionLifetime: cfg.SessionLifetime,
	}
}

// Register creates a new account. Username and email must be unused; the
// master password is hashed with a fresh salt before it touches the
// database.
func (s *UserService) Register(ctx context.Context, username, email, master string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email required", common.ErrorInvalidInput)
	}
	if master == "" {
		return nil, common.ErrorEmptyPassword
	}

	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByUsername(ctx, username); !errors.Is(err, common.ErrorNotFound) {
			if err == nil {
				return common.ErrorAlreadyExists
			}
			return err
		}
		if _, err := repo.GetByEmail(ctx, email); !errors.Is(err, common.ErrorNotFound) {
			if err == nil {
				return common.ErrorAlreadyExists
			}
			return err
		}

		salt := vault.GenerateSalt()
		var err error
		user, err = repo.Create(ctx, &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: vault.HashMaster(master, salt),
			Salt:         salt,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.openSession(user, master)
}

// Login verifies the master password and opens a new session.
func (s *UserService) Login(ctx context.Context, username, master string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !vault.Verify(master, user.Salt, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	if err := repo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, common.ErrorInternal
	}

	return s.openSession(user, master)
}

// Logout drops the session; its master secret is wiped by the store.
func (s *UserService) Logout(_ context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

// RefreshSession re-verifies the master password and re-arms the session,
// restoring the master secret even after the session itself aged out
// server-side.
func (s *UserService) RefreshSession(ctx context.Context, userID int64, sessionID, master string) error {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}

	if !vault.Verify(master, user.Salt, user.PasswordHash) {
		return common.ErrorUnauthorized
	}

	s.sessions.Refresh(sessionID, user.ID, master)
	return nil
}

// DeleteAccount removes the account after re-verifying the master password.
// Stored credentials go with it, and the session is dropped.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64, sessionID, master string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}

	if !vault.Verify(master, user.Salt, user.PasswordHash) {
		return common.ErrorUnauthorized
	}

	if err := repo.Delete(ctx, userID); err != nil {
		return common.ErrorInternal
	}

	s.sessions.Delete(sessionID)
	return nil
}

func (s *UserService) openSession(user *models.User, master string) (*AuthResult, error) {
	sessionID := s.sessions.Create(user.ID, master)

	token, err := auth.GenerateToken(user.ID, sessionID, s.jwtSecret, s.sessionLifetime)
	if err != nil {
		s.sessions.Delete(sessionID)
		return nil, common.ErrorInternal
	}

	return &AuthResult{User: user, Token: token}, nil
}
