package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"time"

	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

// RunCreateKey generates a random 32-byte key and writes the environment
// variables that configure it as the active key.
//
// Without kmsKeyURI the key is printed in base62 (plain mode). With it the key
// is encrypted by the KMS keeper and printed as base64 ciphertext, and the
// KMS_PROVIDER/KMS_KEY_URI lines are printed too. For local development use
// kmsProvider="localsecrets" with kmsKeyURI="base64key://...".
//
// If keyID is empty it defaults to "branca-key-YYYY-MM-DD". Key material is
// zeroed before returning.
func RunCreateKey(
	ctx context.Context,
	kmsService tokenService.KMSService,
	logger *slog.Logger,
	w io.Writer,
	keyID string,
	kmsProvider string,
	kmsKeyURI string,
) error {
	if keyID == "" {
		keyID = fmt.Sprintf("branca-key-%s", time.Now().UTC().Format("2006-01-02"))
	}

	key := make([]byte, tokenDomain.KeySize)
	defer tokenDomain.Zero(key)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	if kmsKeyURI == "" {
		encoded := tokenService.Base62Encode(key)
		logger.Info("key created", slog.String("key_id", keyID), slog.String("mode", "plain"))

		_, err := fmt.Fprintf(w,
			"# Branca Key Configuration\n"+
				"# Copy these environment variables to your .env file or secrets manager\n\n"+
				"BRANCA_KEYS=\"%s:%s\"\n"+
				"ACTIVE_BRANCA_KEY_ID=\"%s\"\n\n"+
				"# For key rotation, append the new key and switch the active id:\n"+
				"# BRANCA_KEYS=\"%s:%s,new-key:<base62-key>\"\n",
			keyID, encoded, keyID, keyID, encoded,
		)
		return err
	}

	encoded, err := tokenService.WrapKey(ctx, kmsService, kmsKeyURI, key)
	if err != nil {
		return err
	}
	logger.Info("key created",
		slog.String("key_id", keyID),
		slog.String("mode", "kms"),
		slog.String("kms_provider", kmsProvider),
	)

	_, err = fmt.Fprintf(w,
		"# Branca Key Configuration (KMS Mode)\n"+
			"# Copy these environment variables to your .env file or secrets manager\n\n"+
			"KMS_PROVIDER=\"%s\"\n"+
			"KMS_KEY_URI=\"%s\"\n"+
			"BRANCA_KEYS=\"%s:%s\"\n"+
			"ACTIVE_BRANCA_KEY_ID=\"%s\"\n",
		kmsProvider, kmsKeyURI, keyID, encoded, keyID,
	)
	return err
}
