// Package service provides authentication-related services for token signing
// and password hashing.
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/proxym/collabmanager/internal/auth/domain"
	apperrors "github.com/proxym/collabmanager/internal/errors"
)

// Claims represents the JWT payload carried by issued tokens. The authorities
// list is a snapshot taken at issuance; request-time authorization always
// re-derives authorities from the stored role.
type Claims struct {
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

// jwtService implements JWTService using HS256 with a single shared secret.
type jwtService struct {
	secret     []byte
	expiration time.Duration
}

// NewJWTService creates a JWTService signing with the given secret and
// issuing tokens with the given lifetime.
func NewJWTService(secret []byte, expiration time.Duration) JWTService {
	return &jwtService{
		secret:     secret,
		expiration: expiration,
	}
}

// Generate builds a signed token whose payload contains the subject, the
// authority snapshot, issued-at = now and expiry = now + lifetime.
func (j *jwtService) Generate(subject string, authorities []string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "token subject is required")
	}

	now := time.Now().UTC()
	claims := Claims{
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Decode verifies the token signature and expiry and returns its claims.
// Returns ErrTokenExpired for a valid signature past its expiry, ErrInvalidToken
// for a bad signature or malformed input.
func (j *jwtService) Decode(token string) (*Claims, error) {
	claims, err := j.parse(token, false)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// DecodeAllowingExpired verifies the token signature but tolerates a past
// expiry. Still fails with ErrInvalidToken on a bad signature or malformed input.
func (j *jwtService) DecodeAllowingExpired(token string) (*Claims, error) {
	return j.parse(token, true)
}

// IsExpired reports whether the claims' expiry has passed at the given time.
// Claims without an expiry are treated as expired.
func (j *jwtService) IsExpired(claims *Claims, now time.Time) bool {
	if claims == nil || claims.ExpiresAt == nil {
		return true
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// parse verifies the token and extracts its claims. When allowExpired is set,
// registered-claims validation (expiry included) is skipped; the signature
// check is never skipped.
func (j *jwtService) parse(token string, allowExpired bool) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, authDomain.ErrInvalidToken
	}

	var opts []jwt.ParserOption
	if allowExpired {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, authDomain.ErrInvalidToken
		}
		return j.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authDomain.ErrTokenExpired
		}
		return nil, authDomain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, authDomain.ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, authDomain.ErrInvalidToken
	}
	return claims, nil
}
