package service

import (
	"context"
	"encoding/base64"

	"gocloud.dev/secrets"

	"github.com/proxym/collabmanager/internal/config"
	apperrors "github.com/proxym/collabmanager/internal/errors"

	// Register KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// signingKeyService implements SigningKeyService. The secret comes either from
// JWT_SECRET directly, or from JWT_SECRET_CIPHERTEXT decrypted once through
// the keeper at KMS_KEY_URI.
type signingKeyService struct {
	cfg *config.Config
}

// NewSigningKeyService creates a SigningKeyService backed by the configuration.
func NewSigningKeyService(cfg *config.Config) SigningKeyService {
	return &signingKeyService{cfg: cfg}
}

// Resolve returns the JWT signing secret bytes.
// Supported keeper URIs: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (s *signingKeyService) Resolve(ctx context.Context) ([]byte, error) {
	if s.cfg.JWTSecretCiphertext != "" {
		if s.cfg.KMSKeyURI == "" {
			return nil, apperrors.New("JWT_SECRET_CIPHERTEXT is set but KMS_KEY_URI is not")
		}

		keeper, err := secrets.OpenKeeper(ctx, s.cfg.KMSKeyURI)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to open KMS keeper")
		}
		defer keeper.Close()

		ciphertext, err := base64.StdEncoding.DecodeString(s.cfg.JWTSecretCiphertext)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to decode JWT secret ciphertext")
		}

		plaintext, err := keeper.Decrypt(ctx, ciphertext)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to decrypt JWT secret")
		}
		return plaintext, nil
	}

	if s.cfg.JWTSecret == "" {
		return nil, apperrors.New("JWT_SECRET is not configured")
	}
	return []byte(s.cfg.JWTSecret), nil
}
