package credentials

import (
	"context"

	"github.com/mzaytsev/passguard/internal/server/models"
)

// Repository accesses stored credentials. Every operation is scoped to the
// owning user: an ID belonging to another user behaves as if it did not
// exist.
type Repository interface {
	Create(ctx context.Context, cred *models.Credential) (*models.Credential, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Credential, error)
	GetByID(ctx context.Context, userID, id int64) (*models.Credential, error)
	Delete(ctx context.Context, userID, id int64) error
}
