package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mzaytsev/passguard/internal/common"
	"github.com/mzaytsev/passguard/internal/logging"
	"github.com/mzaytsev/passguard/internal/server/models"
	"github.com/mzaytsev/passguard/internal/server/repositories/repomanager"
	"github.com/mzaytsev/passguard/internal/vault"
)

// DecryptedCredential pairs a stored credential with its recovered
// plaintext. DecryptFailed marks items that could not be recovered with the
// current master secret; they are reported, never silently dropped.
type DecryptedCredential struct {
	*models.Credential
	Plaintext     string `json:"password"`
	DecryptFailed bool   `json:"decrypt_failed,omitempty"`
}

// VaultService stores and retrieves encrypted credentials. Encryption keys
// are derived per call from the session's master secret and the user's salt;
// the service itself keeps no key material.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *VaultService {
	return &VaultService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "vault-service"),
	}
}

// Save encrypts and stores one credential. Score and entropy are snapshots
// supplied by the caller from the analysis report.
func (s *VaultService) Save(ctx context.Context, userID int64, master, password, website, label string, score int, entropy float64) (*models.Credential, error) {
	if password == "" {
		return nil, common.ErrorEmptyPassword
	}
	if label == "" {
		label = "Unnamed Password"
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	encrypted, err := vault.Encrypt(password, master, user.Salt)
	if err != nil {
		if errors.Is(err, common.ErrorSecretUnavailable) {
			return nil, common.ErrorSecretUnavailable
		}
		return nil, common.ErrorInternal
	}

	cred, err := s.repomanager.Credentials(s.db).Create(ctx, &models.Credential{
		UserID:    userID,
		Encrypted: encrypted,
		Website:   website,
		Label:     label,
		Score:     score,
		Entropy:   entropy,
	})
	if err != nil {
		return nil, fmt.Errorf("error saving credential: %w", err)
	}

	return cred, nil
}

// List returns all of the user's credentials, each decrypted with the
// session master secret. A credential that fails to decrypt is returned
// with DecryptFailed set so one bad row cannot hide the rest.
func (s *VaultService) List(ctx context.Context, userID int64, master string) ([]*DecryptedCredential, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	creds, err := s.repomanager.Credentials(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing credentials: %w", err)
	}

	result := make([]*DecryptedCredential, 0, len(creds))
	for _, cred := range creds {
		result = append(result, s.decrypt(ctx, cred, master, user.Salt))
	}
	return result, nil
}

// Get returns one decrypted credential. Unknown IDs and someone else's IDs
// both yield ErrorNotFound.
func (s *VaultService) Get(ctx context.Context, userID, id int64, master string) (*DecryptedCredential, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	cred, err := s.repomanager.Credentials(s.db).GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading credential: %w", err)
	}

	return s.decrypt(ctx, cred, master, user.Salt), nil
}

// Delete removes one credential of the user.
func (s *VaultService) Delete(ctx context.Context, userID, id int64) error {
	err := s.repomanager.Credentials(s.db).Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting credential: %w", err)
	}
	return nil
}

func (s *VaultService) decrypt(ctx context.Context, cred *models.Credential, master, salt string) *DecryptedCredential {
	plain, err := vault.Decrypt(cred.Encrypted, master, salt)
	if err != nil {
		s.log.Warn(ctx, "credential decryption failed", "credential_id", cred.ID)
		return &DecryptedCredential{Credential: cred, DecryptFailed: true}
	}
	return &DecryptedCredential{Credential: cred, Plaintext: plain}
}
