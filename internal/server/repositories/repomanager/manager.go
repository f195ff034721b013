package repomanager

import (
	"context"
	"database/sql"

	"github.com/mzaytsev/passguard/internal/dbx"
	"github.com/mzaytsev/passguard/internal/server/repositories/credentials"
	"github.com/mzaytsev/passguard/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Credentials(db dbx.DBTX) credentials.Repository
}
