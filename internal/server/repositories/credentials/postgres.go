package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mzaytsev/passguard/internal/common"
	"github.com/mzaytsev/passguard/internal/dbx"
	"github.com/mzaytsev/passguard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, cred *models.Credential) (*models.Credential, error) {

	query :=
		`INSERT INTO credentials (user_id, encrypted_password, website, label, score, entropy)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, last_updated
		 `

	err := r.db.QueryRowContext(ctx, query,
		cred.UserID, cred.Encrypted, cred.Website, cred.Label, cred.Score, cred.Entropy).
		Scan(&cred.ID, &cred.CreatedAt, &cred.LastUpdated)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Credential, error) {
	query :=
		`SELECT id, user_id, encrypted_password, website, label, score, entropy, created_at, last_updated
		 FROM credentials
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var creds []*models.Credential
	for rows.Next() {
		cred := &models.Credential{}
		err := rows.Scan(&cred.ID, &cred.UserID, &cred.Encrypted, &cred.Website,
			&cred.Label, &cred.Score, &cred.Entropy, &cred.CreatedAt, &cred.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return creds, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id int64) (*models.Credential, error) {
	query :=
		`SELECT id, user_id, encrypted_password, website, label, score, entropy, created_at, last_updated
		 FROM credentials
		 WHERE id = $1 AND user_id = $2
		 `

	cred := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&cred.ID, &cred.UserID, &cred.Encrypted, &cred.Website,
			&cred.Label, &cred.Score, &cred.Entropy, &cred.CreatedAt, &cred.LastUpdated)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	query :=
		`DELETE FROM credentials
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
