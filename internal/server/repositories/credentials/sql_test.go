package credentials

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkadlec/passvault/internal/common"
	"github.com/mkadlec/passvault/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db), mock, db
}

const insertQuery = `(?s)^INSERT\s+INTO\s+credentials\s*\(user_id,\s*site,\s*username,\s*password_encrypted,\s*note\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now())
	mock.ExpectQuery(insertQuery).
		WithArgs(int64(10), "example.com", "alice_site", "ciphertext", "").
		WillReturnRows(rows)

	c := &models.Credential{UserID: 10, Site: "example.com", SiteUsername: "alice_site", SecretEncrypted: "ciphertext"}
	got, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestCreate_DuplicateTriple(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs(int64(10), "example.com", "alice_site", "ciphertext", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_user_site_username"})

	_, err := repo.Create(context.Background(), &models.Credential{
		UserID: 10, Site: "example.com", SiteUsername: "alice_site", SecretEncrypted: "ciphertext",
	})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want common.ErrConflict, got %v", err)
	}
}

const listQuery = `(?s)^SELECT\s+id,\s*site,\s*username\s+FROM\s+credentials\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "site", "username"}).
		AddRow(int64(1), "example.com", "alice_site").
		AddRow(int64(2), "other.org", "alice2")
	mock.ExpectQuery(listQuery).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].Site != "other.org" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestListByOwner_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "site", "username"}))

	got, err := repo.ListByOwner(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

const getQuery = `(?s)^SELECT\s+id,\s*user_id,\s*site,\s*username,\s*password_encrypted,\s*note,\s*created_at\s+FROM\s+credentials\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

func TestGetByIDAndOwner_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "site", "username", "password_encrypted", "note", "created_at"}).
		AddRow(int64(1), int64(10), "example.com", "alice_site", "ciphertext", "", time.Now())
	mock.ExpectQuery(getQuery).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(rows)

	got, err := repo.GetByIDAndOwner(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("GetByIDAndOwner error: %v", err)
	}
	if got.SecretEncrypted != "ciphertext" {
		t.Fatalf("unexpected credential: %+v", got)
	}
}

func TestGetByIDAndOwner_OtherOwnerIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// the row exists for owner 10; owner 11 asking by the same id gets no row
	mock.ExpectQuery(getQuery).
		WithArgs(int64(1), int64(11)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIDAndOwner(context.Background(), 1, 11)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

const updateQuery = `(?s)^UPDATE\s+credentials\s+SET\s+site\s*=\s*\$1,\s*username\s*=\s*\$2,\s*password_encrypted\s*=\s*\$3,\s*note\s*=\s*\$4\s+WHERE\s+id\s*=\s*\$5\s+AND\s+user_id\s*=\s*\$6\s*$`

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).
		WithArgs("example.com", "alice_site", "new-ciphertext", "", int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Credential{
		ID: 1, UserID: 10, Site: "example.com", SiteUsername: "alice_site", SecretEncrypted: "new-ciphertext",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NoRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).
		WithArgs("example.com", "alice_site", "ciphertext", "", int64(1), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Credential{
		ID: 1, UserID: 11, Site: "example.com", SiteUsername: "alice_site", SecretEncrypted: "ciphertext",
	})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

const deleteQuery = `(?s)^DELETE\s+FROM\s+credentials\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).
		WithArgs(int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1, 10); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NoRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).
		WithArgs(int64(1), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 1, 11)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
