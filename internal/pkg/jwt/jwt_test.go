package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

func TestIssueAndVerify(t *testing.T) {
	svc := New(testSecret, time.Hour)

	token, err := svc.Issue("user-42")
	require.NoError(t, err)

	session, ok := svc.Verify(token)
	require.True(t, ok)
	assert.Equal(t, "user-42", session.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
}

func TestDefaultTTLIsSevenDays(t *testing.T) {
	svc := New(testSecret, 0)
	assert.Equal(t, 7*24*time.Hour, svc.TTL())
}

func TestVerify_ExpiredTokenWithValidSignature(t *testing.T) {
	svc := New(testSecret, time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.Issue("user-42")
	require.NoError(t, err)

	svc.now = time.Now
	session, ok := svc.Verify(token)
	assert.False(t, ok)
	assert.Nil(t, session)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := New("another-secret-0123456789abcdef0123", time.Hour).Issue("user-42")
	require.NoError(t, err)

	_, ok := New(testSecret, time.Hour).Verify(token)
	assert.False(t, ok)
}

func TestVerify_Malformed(t *testing.T) {
	svc := New(testSecret, time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		_, ok := svc.Verify(raw)
		assert.False(t, ok, raw)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwtlib.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, ok := New(testSecret, time.Hour).Verify(token)
	assert.False(t, ok)
}

func TestVerify_RequiresExpiry(t *testing.T) {
	claims := jwtlib.RegisteredClaims{Subject: "user-42"}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, ok := New(testSecret, time.Hour).Verify(token)
	assert.False(t, ok)
}
