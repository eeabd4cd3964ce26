package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-auth-hub/models"
)

// memoryUserRepository is an in-process [UserRepository] for development
// runs without a DSN and for tests. Emails are compared exactly; callers
// normalize them.
type memoryUserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]models.User
	byEmail map[string]int64
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		nextID:  1,
		byID:    make(map[int64]models.User),
		byEmail: make(map[string]int64),
	}
}

func (r *memoryUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *memoryUserRepository) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return models.User{}, ErrEmailAlreadyExists
	}

	user.UserID = r.nextID
	r.nextID++
	r.byID[user.UserID] = user
	r.byEmail[user.Email] = user.UserID

	return user, nil
}

func (r *memoryUserRepository) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.UserID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	if id, taken := r.byEmail[user.Email]; taken && id != user.UserID {
		return models.User{}, ErrEmailAlreadyExists
	}

	delete(r.byEmail, stored.Email)
	user.CreatedAt = stored.CreatedAt
	r.byID[user.UserID] = user
	r.byEmail[user.Email] = user.UserID

	return user, nil
}

// memoryOTPRepository is an in-process [OTPRepository].
type memoryOTPRepository struct {
	mu    sync.Mutex
	codes map[string]models.OneTimeCode
}

func NewMemoryOTPRepository() OTPRepository {
	return &memoryOTPRepository{codes: make(map[string]models.OneTimeCode)}
}

func (r *memoryOTPRepository) FindOTPByEmail(_ context.Context, email string) (models.OneTimeCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	otp, ok := r.codes[email]
	if !ok {
		return models.OneTimeCode{}, ErrOTPNotFound
	}
	return otp, nil
}

func (r *memoryOTPRepository) ReplaceOTP(_ context.Context, otp models.OneTimeCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codes[otp.Email] = otp
	return nil
}

func (r *memoryOTPRepository) DeleteOTPByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.codes, email)
	return nil
}

func (r *memoryOTPRepository) DeleteOTPIfMatch(_ context.Context, otp models.OneTimeCode) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.codes[otp.Email]
	if !ok || current.Code != otp.Code || !current.CreatedAt.Equal(otp.CreatedAt) {
		return false, nil
	}
	delete(r.codes, otp.Email)
	return true, nil
}

func (r *memoryOTPRepository) DeleteExpiredOTPs(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for email, otp := range r.codes {
		if otp.CreatedAt.Before(cutoff) {
			delete(r.codes, email)
			removed++
		}
	}
	return removed, nil
}
