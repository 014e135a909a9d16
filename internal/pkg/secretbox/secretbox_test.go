package secretbox

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat(string(rune(b)), 32)))
}

func TestSealOpen(t *testing.T) {
	ring, err := NewKeyring("k1", testKey('a'))
	require.NoError(t, err)

	ct, keyID, err := ring.Seal("hunter2", "access-1")
	require.NoError(t, err)
	assert.Equal(t, "k1", keyID)
	assert.NotContains(t, ct, "hunter2")

	plain, err := ring.Open(ct, keyID, "access-1")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)
}

func TestOpen_WrongAdditionalData(t *testing.T) {
	ring, err := NewKeyring("k1", testKey('a'))
	require.NoError(t, err)

	ct, keyID, err := ring.Seal("hunter2", "access-1")
	require.NoError(t, err)

	_, err = ring.Open(ct, keyID, "access-2")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRotation(t *testing.T) {
	old, err := NewKeyring("k1", testKey('a'))
	require.NoError(t, err)
	ct, keyID, err := old.Seal("hunter2", "row")
	require.NoError(t, err)

	ring, err := NewKeyring("k2", testKey('b'))
	require.NoError(t, err)
	_, err = ring.Open(ct, keyID, "row")
	assert.ErrorIs(t, err, ErrUnknownKey)

	require.NoError(t, ring.AddKey("k1", testKey('a')))
	plain, err := ring.Open(ct, keyID, "row")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)
}

func TestNewKeyring_RejectsShortKey(t *testing.T) {
	_, err := NewKeyring("k1", base64.StdEncoding.EncodeToString([]byte("short")))
	assert.Error(t, err)
}
