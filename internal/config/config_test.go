package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agencyops/internal/pkg/secretbox"
)

const goodSecret = "0123456789abcdef0123456789abcdef"

var key32 = base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))

func setBaseEnv(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("SESSION_SECRET", goodSecret)
	t.Setenv("SESSION_TTL", "")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("CREDENTIALS_KEY", "")
	t.Setenv("CREDENTIALS_KEY_ID", "")
	t.Setenv("CREDENTIALS_OLD_KEYS", "")
	t.Setenv("MAIL_CC", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MAIL_CC", " pm@agency.test, ,ops@agency.test ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "agency_session", cfg.CookieName)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, []string{"pm@agency.test", "ops@agency.test"}, cfg.Mail.CC)
	assert.False(t, cfg.Agent.Configured())
}

func TestLoad_RequiresSessionSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProdRequiresSecureCookie(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("COOKIE_SECURE", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
}

func TestLoad_CredentialsKeyLength(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CREDENTIALS_KEY", base64.StdEncoding.EncodeToString([]byte("too-short")))
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CREDENTIALS_KEY", base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32))))
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_RetiredCredentialKeys(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CREDENTIALS_KEY", key32)
	t.Setenv("CREDENTIALS_KEY_ID", "k2")
	t.Setenv("CREDENTIALS_OLD_KEYS", "k1:"+key32+", k0:"+key32)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []RetiredKey{{ID: "k1", Key: key32}, {ID: "k0", Key: key32}}, cfg.CredentialsOldKeys)
}

func TestLoad_RejectsBadRetiredKeys(t *testing.T) {
	cases := map[string]string{
		"missing separator": "k1" + key32,
		"short key":         "k1:" + base64.StdEncoding.EncodeToString([]byte("short")),
		"current id":        "k2:" + key32,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv("CREDENTIALS_KEY", key32)
			t.Setenv("CREDENTIALS_KEY_ID", "k2")
			t.Setenv("CREDENTIALS_OLD_KEYS", raw)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestCredentialsKeyring_OpensRetiredKeys(t *testing.T) {
	oldKey := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("o", 32)))
	before, err := secretbox.NewKeyring("k1", oldKey)
	require.NoError(t, err)
	sealed, keyID, err := before.Seal("hunter2", "access-1")
	require.NoError(t, err)

	setBaseEnv(t)
	t.Setenv("CREDENTIALS_KEY", key32)
	t.Setenv("CREDENTIALS_KEY_ID", "k2")
	t.Setenv("CREDENTIALS_OLD_KEYS", "k1:"+oldKey)
	cfg, err := Load()
	require.NoError(t, err)

	keys, err := cfg.CredentialsKeyring()
	require.NoError(t, err)
	require.NotNil(t, keys)

	plain, err := keys.Open(sealed, keyID, "access-1")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)

	_, current, err := keys.Seal("new", "access-2")
	require.NoError(t, err)
	assert.Equal(t, "k2", current)
}

func TestCredentialsKeyring_NilWithoutKey(t *testing.T) {
	setBaseEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	keys, err := cfg.CredentialsKeyring()
	require.NoError(t, err)
	assert.Nil(t, keys)
}
