package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/famly-app/identity/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	repo, err := NewPostgresRepository(db)
	if err != nil {
		t.Fatalf("NewPostgresRepository error: %v", err)
	}
	return repo, mock, db
}

const (
	insertPattern    = `(?s)^INSERT\s+INTO\s+accounts\s*\(id,\s*email,\s*name,\s*secret_digest\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at\s*$`
	selectByEmailPat = `(?s)^SELECT\s+id,\s*email,\s*name,\s*secret_digest,\s*created_at\s+FROM\s+accounts\s+WHERE\s+email\s*=\s*\$1\s*$`
	selectByIDPat    = `(?s)^SELECT\s+id,\s*email,\s*name,\s*secret_digest,\s*created_at\s+FROM\s+accounts\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(created)
	mock.ExpectQuery(insertPattern).
		WithArgs("id-1", "a@x.com", "A", "digest").
		WillReturnRows(rows)

	account := &Account{ID: "id-1", Email: "a@x.com", Name: "A", SecretDigest: "digest"}
	got, err := repo.Create(context.Background(), account)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected CreatedAt: %v", got.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestPostgresCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertPattern).
		WithArgs("id-1", "a@x.com", "A", "digest").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	_, err := repo.Create(context.Background(), &Account{ID: "id-1", Email: "a@x.com", Name: "A", SecretDigest: "digest"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want common.ErrAlreadyExists, got %v", err)
	}
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertPattern).
		WithArgs("id-1", "a@x.com", "A", "digest").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &Account{ID: "id-1", Email: "a@x.com", Name: "A", SecretDigest: "digest"})
	if err == nil || errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected a wrapped db error, got %v", err)
	}
}

func TestPostgresGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "name", "secret_digest", "created_at"}).
		AddRow("id-1", "a@x.com", "A", "digest", time.Now())
	mock.ExpectQuery(selectByEmailPat).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "id-1" || got.SecretDigest != "digest" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestPostgresGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailPat).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestPostgresGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "name", "secret_digest", "created_at"}).
		AddRow("id-2", "b@x.com", "B", "digest", time.Now())
	mock.ExpectQuery(selectByIDPat).
		WithArgs("id-2").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "id-2")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Email != "b@x.com" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByIDPat).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
