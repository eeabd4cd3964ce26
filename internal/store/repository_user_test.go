package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/migrations"
	"github.com/MKhiriev/go-auth-hub/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return newDB(conn, migrations.DialectPostgres, NewPostgresErrorClassifier(), logger.Nop()), mock
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &userRepository{db: db}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	user := models.User{
		Email:     "john@example.com",
		Password:  "hash",
		FirstName: "John",
		Role:      models.RoleUser,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO users \(.+\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7\) RETURNING user_id`).
		WithArgs(user.Email, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

// TestCreateUser_RetriesTransientError verifies that a serialization failure
// is retried and the second attempt's result is returned.
func TestCreateUser_RetriesTransientError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(5)))

	created, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 5 {
		t.Errorf("expected UserID=5, got %d", created.UserID)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectQuery(`SELECT user_id, email, .+ FROM users WHERE email = \$1`).
		WithArgs("john@example.com").
		WillReturnRows(userRows().AddRow(int64(1), "john@example.com", "hash", "John", "Doe", "admin", true, now))

	found, err := repo.FindUserByEmail(context.Background(), "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 1 || found.Role != models.RoleAdmin || !found.IsActive || !found.CreatedAt.Equal(now) {
		t.Errorf("unexpected user: %+v", found)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "john@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByID_EmptyResult(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(`SELECT user_id, .+ FROM users WHERE user_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(userRows())

	_, err := repo.FindUserByID(context.Background(), 3)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByID_UnexpectedError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("SELECT user_id").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByID(context.Background(), 3)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestUpdateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	user := models.User{UserID: 7, Email: "john@example.com", Password: "new", Role: models.RoleUser, IsActive: true}
	created := time.Now().UTC().Truncate(time.Second)

	mock.ExpectExec(`UPDATE users SET .+ WHERE user_id = \$7`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT user_id").
		WithArgs(int64(7)).
		WillReturnRows(userRows().AddRow(int64(7), user.Email, "new", "", "", "user", true, created))

	updated, err := repo.UpdateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.CreatedAt.Equal(created) || updated.Password != "new" {
		t.Errorf("unexpected user: %+v", updated)
	}
}

func TestUpdateUser_NoRowsAffected(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateUser(context.Background(), models.User{UserID: 7})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
