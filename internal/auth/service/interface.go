package service

import (
	"context"
	"time"
)

// JWTService issues and verifies signed bearer tokens.
type JWTService interface {
	// Generate builds a signed token for the subject carrying the given
	// authority snapshot, expiring after the configured lifetime.
	Generate(subject string, authorities []string) (string, error)

	// Decode verifies the token signature and expiry and returns its claims.
	Decode(token string) (*Claims, error)

	// DecodeAllowingExpired verifies the token signature but tolerates a past
	// expiry. Used only by the refresh path.
	DecodeAllowingExpired(token string) (*Claims, error)

	// IsExpired reports whether the claims' expiry has passed at the given time.
	IsExpired(claims *Claims, now time.Time) bool
}

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash returns a one-way salted hash of the plain password.
	Hash(plainPassword string) (string, error)

	// Compare performs a constant-time comparison between a plain password and
	// its hash. It never errors outward; any mismatch or malformed hash yields false.
	Compare(plainPassword string, hashedPassword string) bool
}

// SigningKeyService resolves the JWT signing secret at process start.
type SigningKeyService interface {
	// Resolve returns the signing secret bytes, decrypting through the
	// configured KMS keeper when a ciphertext is configured.
	Resolve(ctx context.Context) ([]byte, error)
}
