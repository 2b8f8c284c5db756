package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DevClaims is the HS256 token shape accepted when no Firebase project is configured.
type DevClaims struct {
	GivenName         string `json:"given_name,omitempty"`
	FamilyName        string `json:"family_name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
	Email             string `json:"email"`
	Picture           string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (*Profile, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims := &DevClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Profile{
		ExternalID: claims.Subject,
		FirstName:  claims.GivenName,
		LastName:   claims.FamilyName,
		Username:   claims.PreferredUsername,
		Email:      claims.Email,
		ImageURL:   claims.Picture,
	}, nil
}

// IssueDevToken signs a token for p that JWTVerifier with the same secret accepts.
func IssueDevToken(secret string, p Profile, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := DevClaims{
		GivenName:         p.FirstName,
		FamilyName:        p.LastName,
		PreferredUsername: p.Username,
		Email:             p.Email,
		Picture:           p.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ExternalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
