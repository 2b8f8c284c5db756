// Package identity maps identities verified by an external provider onto
// internal user records.
package identity

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidToken is returned by verifiers for missing, malformed or expired tokens.
var ErrInvalidToken = errors.New("invalid identity token")

// Profile is what the identity provider tells us about the authenticated principal.
type Profile struct {
	ExternalID string
	FirstName  string
	LastName   string
	Username   string // optional; derived from Email when empty
	Email      string
	ImageURL   string
}

// Verifier turns a bearer token into a verified Profile.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Profile, error)
}

// splitName breaks a display name into first and last name on the first space.
func splitName(display string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(display), " ")
	return first, strings.TrimSpace(last)
}

// emailLocalPart returns the part of an address before '@'.
func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
