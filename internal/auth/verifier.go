package auth

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"codecraftgo/internal/logger"
)

// TokenVerifier resolves a bearer credential to a stable user id.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier validates Firebase ID tokens against the identity
// provider. The subject UID embedded in the token is the sole notion of
// user identity; it is never looked up or cached elsewhere.
type FirebaseVerifier struct {
	client *auth.Client
	log    *logger.Logger
}

func NewFirebaseVerifier(client *auth.Client, log *logger.Logger) *FirebaseVerifier {
	return &FirebaseVerifier{client: client, log: log}
}

// Verify checks the signed token and returns the subject UID. Invalid,
// expired, and unparseable tokens all fail the same way; the underlying
// error is kept only as a diagnostic.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		v.log.Debug("id token verification failed", "error", err)
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return decoded.UID, nil
}
