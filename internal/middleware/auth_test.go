package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/socially/internal/identity"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, authHeader string, h echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := Authenticate(identity.NewJWTVerifier("k"))(h)(c)
	return rec, err
}

func TestAuthenticate_NoHeaderPassesThroughAnonymous(t *testing.T) {
	called := false
	_, err := serve(t, "", func(c echo.Context) error {
		called = true
		assert.Nil(t, ProfileFrom(c))
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthenticate_StoresVerifiedProfile(t *testing.T) {
	tok, err := identity.IssueDevToken("k", identity.Profile{ExternalID: "u-1", Email: "u@example.com"}, time.Hour)
	require.NoError(t, err)

	_, err = serve(t, "Bearer "+tok, func(c echo.Context) error {
		p := ProfileFrom(c)
		require.NotNil(t, p)
		assert.Equal(t, "u-1", p.ExternalID)
		return nil
	})
	require.NoError(t, err)
}

func TestAuthenticate_RejectsBadHeaders(t *testing.T) {
	next := func(echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	}
	for _, header := range []string{"Token abc", "Bearer", "Bearer not-a-jwt"} {
		_, err := serve(t, header, next)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he, header)
		assert.Equal(t, http.StatusUnauthorized, he.Code, header)
	}
}

func TestRequireProfile(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())

	err := RequireProfile(func(echo.Context) error { return nil })(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)

	c.Set(profileKey, &identity.Profile{ExternalID: "x"})
	assert.NoError(t, RequireProfile(func(echo.Context) error { return nil })(c))
}
