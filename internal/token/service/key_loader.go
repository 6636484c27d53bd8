package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
)

// KeyRingConfig is the subset of configuration needed to build a key ring.
type KeyRingConfig struct {
	// Keys is the BRANCA_KEYS value: "id:encoded[,id:encoded...]".
	Keys string
	// ActiveKeyID selects the key used to encode new tokens.
	ActiveKeyID string
	// KMSProvider is informational; the scheme of KMSKeyURI selects the driver.
	KMSProvider string
	// KMSKeyURI enables KMS mode when set: every entry of Keys is then a
	// base64 KMS ciphertext of the 32-byte key.
	KMSKeyURI string
}

// Base62KeyDecoder decodes a plain base62 key entry.
func Base62KeyDecoder(_ context.Context, _ string, encoded string) ([]byte, error) {
	return Base62Decode(encoded)
}

// NewKMSKeyDecoder returns a decoder that unwraps base64 KMS ciphertexts with keeper.
func NewKMSKeyDecoder(keeper KMSKeeper) tokenDomain.KeyDecoder {
	return func(ctx context.Context, id, encoded string) ([]byte, error) {
		ciphertext, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("key %s: invalid base64 KMS ciphertext: %w", id, err)
		}
		material, err := keeper.Decrypt(ctx, ciphertext)
		if err != nil {
			return nil, fmt.Errorf("key %s: KMS decrypt failed: %w", id, err)
		}
		return material, nil
	}
}

// LoadKeyRing builds the key ring described by cfg. In KMS mode the keeper is
// opened for the duration of the load and closed before returning.
func LoadKeyRing(
	ctx context.Context,
	cfg KeyRingConfig,
	kmsService KMSService,
	logger *slog.Logger,
) (*tokenDomain.KeyRing, error) {
	if cfg.KMSKeyURI == "" {
		keyRing, err := tokenDomain.ParseKeyRing(ctx, cfg.Keys, cfg.ActiveKeyID, Base62KeyDecoder)
		if err != nil {
			return nil, err
		}
		logger.Info("key ring loaded",
			slog.Int("key_count", keyRing.Len()),
			slog.String("active_key_id", keyRing.ActiveKeyID()),
		)
		return keyRing, nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	keyRing, err := tokenDomain.ParseKeyRing(ctx, cfg.Keys, cfg.ActiveKeyID, NewKMSKeyDecoder(keeper))
	if err != nil {
		return nil, err
	}

	logger.Info("key ring loaded",
		slog.String("kms_provider", cfg.KMSProvider),
		slog.Int("key_count", keyRing.Len()),
		slog.String("active_key_id", keyRing.ActiveKeyID()),
	)
	return keyRing, nil
}

// WrapKey encrypts key material with the keeper for keyURI and returns the
// base64 ciphertext in the form LoadKeyRing expects.
func WrapKey(ctx context.Context, kmsService KMSService, keyURI string, material []byte) (string, error) {
	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() { _ = keeper.Close() }()

	ciphertext, err := keeper.Encrypt(ctx, material)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt key with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
