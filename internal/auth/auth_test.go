package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthasastry/notes-app/internal/identity"
)

func TestSignVerify(t *testing.T) {
	j := NewJWT("s3cret")

	token, err := j.Sign("alice@example.com")
	require.NoError(t, err)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "alice@example.com", claims["cognito:username"])

	_, err = j.Sign("")
	assert.Error(t, err)
}

func TestVerifyRejects(t *testing.T) {
	j := NewJWT("s3cret")
	good, err := j.Sign("alice@example.com")
	require.NoError(t, err)

	other, err := NewJWT("different").Sign("alice@example.com")
	require.NoError(t, err)

	expiredSigner := NewJWT("s3cret")
	expiredSigner.now = func() time.Time { return time.Now().Add(-30 * 24 * time.Hour) }
	expired, err := expiredSigner.Sign("alice@example.com")
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@example.com"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"email": "a@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": other,
		"expired":      expired,
		"no expiry":    noExp,
		"other alg":    hs512,
		"garbage":      "not.a.token",
		"tampered":     good + "x",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := j.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	j := NewJWT("s3cret")
	token, err := j.Sign("alice@example.com")
	require.NoError(t, err)

	var seen identity.Authorizer
	var reached bool
	h := RequireAuth(j)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seen, _ = AuthorizerFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("valid token", func(t *testing.T) {
		reached, seen = false, nil
		req := httptest.NewRequest(http.MethodGet, "/notes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.True(t, reached)
		owner, err := identity.Resolve(seen)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", owner)
	})

	t.Run("preflight passes through", func(t *testing.T) {
		reached, seen = false, nil
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/notes", nil))
		assert.True(t, reached)
		assert.Nil(t, seen)
	})

	for name, header := range map[string]string{
		"missing":   "",
		"no bearer": token,
		"invalid":   "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized", body["error"])
		})
	}
}
