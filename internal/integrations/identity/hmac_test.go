package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestHMACVerifier_IssueAndVerify(t *testing.T) {
	v := NewHMACVerifier(HMACOptions{Secret: testSecret, Issuer: "carwash-dev", Audience: "carwash-api"})

	token, err := v.Issue("user-1", "jane@example.org", true, time.Hour)
	require.NoError(t, err)

	ident, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", ident.UID)
	assert.Equal(t, "jane@example.org", ident.Email)
	assert.True(t, ident.Admin)
}

func TestHMACVerifier_Rejects(t *testing.T) {
	v := NewHMACVerifier(HMACOptions{Secret: testSecret, Issuer: "carwash-dev"})
	other := NewHMACVerifier(HMACOptions{Secret: "another-secret-another-secret-00", Issuer: "carwash-dev"})

	expired, err := v.Issue("user-1", "", false, -2*time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue("user-1", "", false, time.Hour)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "carwash-dev",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	wrongIssuer, err := NewHMACVerifier(HMACOptions{Secret: testSecret, Issuer: "elsewhere"}).
		Issue("user-1", "", false, time.Hour)
	require.NoError(t, err)

	noSubject, err := v.Issue("", "", false, time.Hour)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"foreign":      foreign,
		"alg none":     noneAlg,
		"wrong issuer": wrongIssuer,
		"no subject":   noSubject,
		"garbage":      "not.a.token",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
