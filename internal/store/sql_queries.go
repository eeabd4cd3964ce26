package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-auth-hub/models"
)

var (
	usersTable = models.User{}.TableName()
	otpsTable  = models.OneTimeCode{}.TableName()

	userColumns = []string{"user_id", "email", "password", "first_name", "last_name", "role", "is_active", "created_at"}
	otpColumns  = []string{"email", "code", "created_at"}
)

// userScanDest lists the scan targets matching userColumns.
func userScanDest(u *models.User) []any {
	return []any{&u.UserID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.CreatedAt}
}

func otpScanDest(o *models.OneTimeCode) []any {
	return []any{&o.Email, &o.Code, &o.CreatedAt}
}

func findUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).From(usersTable).Where(where).ToSql()
}

func insertUserQuery(b sq.StatementBuilderType, u models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("email", "password", "first_name", "last_name", "role", "is_active", "created_at").
		Values(u.Email, u.Password, u.FirstName, u.LastName, u.Role, u.IsActive, u.CreatedAt.UTC()).
		Suffix("RETURNING user_id").
		ToSql()
}

func updateUserQuery(b sq.StatementBuilderType, u models.User) (string, []any, error) {
	return b.Update(usersTable).
		SetMap(map[string]any{
			"email":      u.Email,
			"password":   u.Password,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"role":       u.Role,
			"is_active":  u.IsActive,
		}).
		Where(sq.Eq{"user_id": u.UserID}).
		ToSql()
}

func findOTPQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(otpColumns...).From(otpsTable).Where(sq.Eq{"email": email}).ToSql()
}

func deleteOTPQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Delete(otpsTable).Where(sq.Eq{"email": email}).ToSql()
}

// insertOTPQuery upserts so that a concurrent replace of the same email that
// slipped in between our DELETE and INSERT is overwritten instead of failing.
func insertOTPQuery(b sq.StatementBuilderType, o models.OneTimeCode) (string, []any, error) {
	return b.Insert(otpsTable).
		Columns(otpColumns...).
		Values(o.Email, o.Code, o.CreatedAt.UTC()).
		Suffix("ON CONFLICT (email) DO UPDATE SET code = excluded.code, created_at = excluded.created_at").
		ToSql()
}

// deleteOTPIfMatchQuery deletes the row only while it still holds o.
func deleteOTPIfMatchQuery(b sq.StatementBuilderType, o models.OneTimeCode) (string, []any, error) {
	return b.Delete(otpsTable).
		Where(sq.Eq{"email": o.Email, "code": o.Code, "created_at": o.CreatedAt}).
		ToSql()
}

func deleteExpiredOTPsQuery(b sq.StatementBuilderType, cutoff time.Time) (string, []any, error) {
	return b.Delete(otpsTable).Where(sq.Lt{"created_at": cutoff.UTC()}).ToSql()
}
