package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext secrets into stored credentials and checks
// them back. Implementations must be safe for concurrent use.
type PasswordHasher interface {
	// Hash returns a salted credential for secret. Two calls with the same
	// secret yield different credentials.
	Hash(ctx context.Context, secret string) (string, error)

	// Verify reports whether secret matches credential. A malformed
	// credential is reported as a mismatch, not as an error. The error is
	// non-nil only when ctx ends before the comparison completes.
	Verify(ctx context.Context, secret, credential string) (bool, error)
}
