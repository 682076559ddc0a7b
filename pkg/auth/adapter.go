package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
)

const ProviderGoogle = "google"

// ProviderProfile is the identity a provider vouches for after a successful
// code exchange. Only the identifier and email matter downstream; the
// platform keeps no credentials of its own.
type ProviderProfile struct {
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
	AvatarURL      string
}

// ProviderAdapter abstracts one OAuth identity provider behind the two calls
// the login flow needs.
type ProviderAdapter interface {
	// ProviderID names the provider for storage and logs.
	ProviderID() string
	// AuthURL builds the authorization URL carrying the CSRF state token.
	AuthURL(state string) (string, error)
	// ResolveProfile exchanges the callback code for the user's profile.
	ResolveProfile(ctx context.Context, code string) (ProviderProfile, error)
}

// GenerateState produces a random CSRF state token for one login attempt.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", ErrStateGeneration
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
