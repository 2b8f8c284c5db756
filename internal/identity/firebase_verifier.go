package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// idTokenVerifier is the slice of *auth.Client the verifier needs.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens and reads the profile from their claims.
type FirebaseVerifier struct {
	client idTokenVerifier
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claim := func(key string) string {
		if s, ok := decoded.Claims[key].(string); ok {
			return s
		}
		return ""
	}

	first, last := splitName(claim("name"))
	return &Profile{
		ExternalID: decoded.UID,
		FirstName:  first,
		LastName:   last,
		Email:      claim("email"),
		ImageURL:   claim("picture"),
	}, nil
}
