package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mzaytsev/passguard/internal/common"
	"github.com/mzaytsev/passguard/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const userColumns = "id, username, email, password_hash, salt, created_at, last_login"

func userRows(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "salt", "created_at", "last_login"}).
		AddRow(id, "alice", "alice@example.com", "hash", "salt", time.Now(), nil)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*password_hash,\s*salt\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at\s*$`

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), time.Now())
	mock.ExpectQuery(q).
		WithArgs("alice", "alice@example.com", "hash", "salt").
		WillReturnRows(rows)

	u := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Salt: "salt"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 || got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WithArgs("alice", "alice@example.com", "hash", "salt").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Salt: "salt"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + userColumns + `\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("alice").
		WillReturnRows(userRows(7))

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != 7 || got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.LastLogin.Valid {
		t.Fatalf("expected null last_login, got %+v", got.LastLogin)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+` + userColumns + `\s+FROM\s+users\s+WHERE\s+username`).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+` + userColumns + `\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("alice@example.com").
		WillReturnRows(userRows(7))

	got, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+` + userColumns + `\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestUpdateLastLogin(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+last_login\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s*$`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(q).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
		if err := repo.UpdateLastLogin(context.Background(), 7); err != nil {
			t.Fatalf("UpdateLastLogin error: %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		mock.ExpectExec(q).WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
		err := repo.UpdateLastLogin(context.Background(), 99)
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("expected common.ErrorNotFound, got %v", err)
		}
	})
}

func TestDeleteUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(q).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
		if err := repo.Delete(context.Background(), 7); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		mock.ExpectExec(q).WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
		err := repo.Delete(context.Background(), 99)
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("expected common.ErrorNotFound, got %v", err)
		}
	})
}
