package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/models"
)

// otpRepository is the SQL implementation of [OTPRepository] against the
// "temp_user_otps" table.
type otpRepository struct {
	db *DB
}

func NewOTPRepository(db *DB, logger *logger.Logger) OTPRepository {
	logger.Debug().Msg("creating otp repository")
	return &otpRepository{db: db}
}

func (r *otpRepository) FindOTPByEmail(ctx context.Context, email string) (models.OneTimeCode, error) {
	query, args, err := findOTPQuery(r.db.builder, email)
	if err != nil {
		return models.OneTimeCode{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var otp models.OneTimeCode
	err = r.db.withRetry(ctx, func() error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(otpScanDest(&otp)...)
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.OneTimeCode{}, ErrOTPNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*otpRepository.FindOTPByEmail").Msg("error finding code")
		return models.OneTimeCode{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return otp, nil
}

// ReplaceOTP deletes the stored code and inserts otp in one transaction, so
// readers observe either the old code or the new one and never both.
func (r *otpRepository) ReplaceOTP(ctx context.Context, otp models.OneTimeCode) error {
	deleteQuery, deleteArgs, err := deleteOTPQuery(r.db.builder, otp.Email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	insertQuery, insertArgs, err := insertOTPQuery(r.db.builder, otp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		return r.db.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			return nil
		})
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*otpRepository.ReplaceOTP").Msg("error replacing code")
		return err
	}

	return nil
}

func (r *otpRepository) DeleteOTPByEmail(ctx context.Context, email string) error {
	query, args, err := deleteOTPQuery(r.db.builder, email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*otpRepository.DeleteOTPByEmail").Msg("error deleting code")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *otpRepository) DeleteOTPIfMatch(ctx context.Context, otp models.OneTimeCode) (bool, error) {
	query, args, err := deleteOTPIfMatchQuery(r.db.builder, otp)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var removed int64
	err = r.db.withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*otpRepository.DeleteOTPIfMatch").Msg("error deleting code")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return removed > 0, nil
}

func (r *otpRepository) DeleteExpiredOTPs(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := deleteExpiredOTPsQuery(r.db.builder, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}
