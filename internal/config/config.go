package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"agencyops/internal/pkg/secretbox"
)

const (
	defaultPort         = "8080"
	defaultSessionTTL   = "168h"
	defaultCookieName   = "agency_session"
	defaultCookieSecure = "false"
	defaultCredKeyID    = "k1"
	minSecretLength     = 32
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	SessionSecret string
	SessionTTL    time.Duration
	CookieName    string
	CookieSecure  bool

	Mail  MailConfig
	Agent AgentConfig

	CredentialsKey     string
	CredentialsKeyID   string
	CredentialsOldKeys []RetiredKey

	SeedDefaultPassword string
	CORSAllowedOrigins  []string
}

// RetiredKey is one "id:base64" entry of CREDENTIALS_OLD_KEYS.
type RetiredKey struct {
	ID  string
	Key string
}

type MailConfig struct {
	From         string
	ResendAPIKey string
	CC           []string
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
}

func (m MailConfig) Configured() bool {
	return m.From != "" && (m.ResendAPIKey != "" || m.SMTPHost != "")
}

type AgentConfig struct {
	URL   string
	Token string
}

func (a AgentConfig) Configured() bool {
	return a.URL != ""
}

// Load reads the environment. Missing DATABASE_URL or SESSION_SECRET is an
// error: the signing secret never falls back to a built-in value.
func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.SessionSecret = strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	cfg.CookieName = strings.TrimSpace(getEnv("SESSION_COOKIE", defaultCookieName))
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)

	var err error
	cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}

	cfg.Mail = MailConfig{
		From:         strings.TrimSpace(os.Getenv("MAIL_FROM")),
		ResendAPIKey: strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		CC:           parseListEnv("MAIL_CC"),
		SMTPHost:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		SMTPPort:     strings.TrimSpace(getEnv("SMTP_PORT", "587")),
		SMTPUser:     strings.TrimSpace(os.Getenv("SMTP_USER")),
		SMTPPass:     os.Getenv("SMTP_PASS"),
	}
	cfg.Agent = AgentConfig{
		URL:   strings.TrimSpace(os.Getenv("AGENT_URL")),
		Token: strings.TrimSpace(os.Getenv("AGENT_TOKEN")),
	}

	cfg.CredentialsKey = strings.TrimSpace(os.Getenv("CREDENTIALS_KEY"))
	cfg.CredentialsKeyID = strings.TrimSpace(getEnv("CREDENTIALS_KEY_ID", defaultCredKeyID))
	cfg.CredentialsOldKeys, err = parseRetiredKeys(os.Getenv("CREDENTIALS_OLD_KEYS"))
	if err != nil {
		return nil, err
	}
	cfg.SeedDefaultPassword = os.Getenv("SEED_DEFAULT_PASSWORD")
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s port=%s cookie_secure=%t mail=%t agent=%t credentials_key=%t",
		cfg.AppEnv, cfg.Port, cfg.CookieSecure, cfg.Mail.Configured(), cfg.Agent.Configured(), cfg.CredentialsKey != "")

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must be set")
	}
	if len(cfg.SessionSecret) < minSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSecretLength)
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	if cfg.CredentialsKey != "" && !validKey(cfg.CredentialsKey) {
		return fmt.Errorf("CREDENTIALS_KEY must be a base64-encoded 32-byte key")
	}
	if len(cfg.CredentialsOldKeys) > 0 && cfg.CredentialsKey == "" {
		return fmt.Errorf("CREDENTIALS_OLD_KEYS requires CREDENTIALS_KEY")
	}
	for _, k := range cfg.CredentialsOldKeys {
		if k.ID == cfg.CredentialsKeyID {
			return fmt.Errorf("CREDENTIALS_OLD_KEYS reuses the current key id %q", k.ID)
		}
		if !validKey(k.Key) {
			return fmt.Errorf("CREDENTIALS_OLD_KEYS entry %q must be a base64-encoded 32-byte key", k.ID)
		}
	}

	if isProdLike(cfg.AppEnv) && !cfg.CookieSecure {
		return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
	}

	return nil
}

// CredentialsKeyring seals with the current key and still opens rows sealed
// with retired ones. It is nil when no key is configured.
func (c *Config) CredentialsKeyring() (*secretbox.Keyring, error) {
	if c.CredentialsKey == "" {
		return nil, nil
	}
	keys, err := secretbox.NewKeyring(c.CredentialsKeyID, c.CredentialsKey)
	if err != nil {
		return nil, err
	}
	for _, old := range c.CredentialsOldKeys {
		if err := keys.AddKey(old.ID, old.Key); err != nil {
			return nil, fmt.Errorf("credentials key %s: %w", old.ID, err)
		}
	}
	return keys, nil
}

func validKey(encoded string) bool {
	key, err := base64.StdEncoding.DecodeString(encoded)
	return err == nil && len(key) == 32
}

// parseRetiredKeys reads "id:base64,id:base64".
func parseRetiredKeys(raw string) ([]RetiredKey, error) {
	var out []RetiredKey
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, key, ok := strings.Cut(entry, ":")
		id, key = strings.TrimSpace(id), strings.TrimSpace(key)
		if !ok || id == "" || key == "" {
			return nil, fmt.Errorf("invalid CREDENTIALS_OLD_KEYS entry %q, want id:base64key", entry)
		}
		out = append(out, RetiredKey{ID: id, Key: key})
	}
	return out, nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
