package credentials

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

const credColumns = `id, user_id, encrypted_password, website, label, score, entropy, created_at, last_updated`

func credRow(id, userID int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "user_id", "encrypted_password", "website", "label", "score", "entropy", "created_at", "last_updated"}).
		AddRow(id, userID, "ZW5jcnlwdGVk", "example.com", "mail", 55, 41.5, now, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+credentials\s*\(user_id,\s*encrypted_password,\s*website,\s*label,\s*score,\s*entropy\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*RETURNING\s+id,\s*created_at,\s*last_updated\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "last_updated"}).AddRow(int64(3), now, now)
	mock.ExpectQuery(q).
		WithArgs(int64(7), "ZW5jcnlwdGVk", "example.com", "mail", 55, 41.5).
		WillReturnRows(rows)

	cred := &models.Credential{UserID: 7, Encrypted: "ZW5jcnlwdGVk", Website: "example.com", Label: "mail", Score: 55, Entropy: 41.5}
	got, err := repo.Create(context.Background(), cred)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 3 {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+credentials`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Credential{UserID: 7})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + credColumns + `\s+FROM\s+credentials\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s*$`

	t.Run("rows", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "user_id", "encrypted_password", "website", "label", "score", "entropy", "created_at", "last_updated"}).
			AddRow(int64(2), int64(7), "enc2", "b.com", "b", 80, 70.0, now, now).
			AddRow(int64(1), int64(7), "enc1", "a.com", "a", 30, 25.0, now, now)
		mock.ExpectQuery(q).WithArgs(int64(7)).WillReturnRows(rows)

		got, err := repo.ListByUser(context.Background(), 7)
		if err != nil {
			t.Fatalf("ListByUser error: %v", err)
		}
		if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
			t.Fatalf("unexpected credentials: %+v", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "user_id", "encrypted_password", "website", "label", "score", "entropy", "created_at", "last_updated"})
		mock.ExpectQuery(q).WithArgs(int64(8)).WillReturnRows(rows)

		got, err := repo.ListByUser(context.Background(), 8)
		if err != nil {
			t.Fatalf("ListByUser error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no credentials, got %+v", got)
		}
	})
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + credColumns + `\s+FROM\s+credentials\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs(int64(3), int64(7)).WillReturnRows(credRow(3, 7))

		got, err := repo.GetByID(context.Background(), 7, 3)
		if err != nil {
			t.Fatalf("GetByID error: %v", err)
		}
		if got.ID != 3 || got.UserID != 7 {
			t.Fatalf("unexpected credential: %+v", got)
		}
	})

	t.Run("wrong owner behaves as missing", func(t *testing.T) {
		mock.ExpectQuery(q).WithArgs(int64(3), int64(8)).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 8, 3)
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("expected common.ErrorNotFound, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+credentials\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(q).WithArgs(int64(3), int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
		if err := repo.Delete(context.Background(), 7, 3); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(q).WithArgs(int64(4), int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
		err := repo.Delete(context.Background(), 7, 4)
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("expected common.ErrorNotFound, got %v", err)
		}
	})
}
