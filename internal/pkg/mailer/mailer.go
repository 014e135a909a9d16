package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/smtp"
	"strings"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

var ErrNotConfigured = errors.New("mail provider not configured")

type Message struct {
	To      []string
	CC      []string
	Subject string
	HTML    string
}

// Sender delivers one message. Implementations do not retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	From         string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
}

// New picks Resend when an API key is set, SMTP when a host is set, and
// returns nil when neither is configured.
func New(cfg Config) Sender {
	if cfg.From == "" {
		return nil
	}
	if cfg.ResendAPIKey != "" {
		return &ResendSender{
			From:     cfg.From,
			APIKey:   cfg.ResendAPIKey,
			Endpoint: resendEndpoint,
			Client:   &http.Client{Timeout: 15 * time.Second},
		}
	}
	if cfg.SMTPHost != "" {
		port := cfg.SMTPPort
		if port == "" {
			port = "587"
		}
		return &SMTPSender{From: cfg.From, Host: cfg.SMTPHost, Port: port, User: cfg.SMTPUser, Pass: cfg.SMTPPass}
	}
	return nil
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// ResendSender posts to the Resend HTTP API.
type ResendSender struct {
	From     string
	APIKey   string
	Endpoint string
	Client   *http.Client
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	if s.APIKey == "" || s.From == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(resendRequest{
		From:    s.From,
		To:      msg.To,
		CC:      msg.CC,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

// SMTPSender sends through a plain SMTP relay.
type SMTPSender struct {
	From string
	Host string
	Port string
	User string
	Pass string
}

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	if s.Host == "" || s.From == "" {
		return ErrNotConfigured
	}

	raw := buildMessage(s.From, msg)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	rcpt := append(append([]string{}, msg.To...), msg.CC...)
	if err := smtp.SendMail(s.Host+":"+s.Port, auth, s.From, rcpt, raw); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// headerValue keeps a value on one header line.
func headerValue(v string) string {
	return strings.TrimSpace(headerBreaks.Replace(v))
}

func headerList(values []string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, headerValue(v))
	}
	return strings.Join(out, ", ")
}

// buildMessage renders the RFC 5322 message. The subject is encoded as a
// UTF-8 encoded-word when it is not plain ASCII.
func buildMessage(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + headerValue(from) + "\r\n")
	b.WriteString("To: " + headerList(msg.To) + "\r\n")
	if len(msg.CC) > 0 {
		b.WriteString("Cc: " + headerList(msg.CC) + "\r\n")
	}
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", headerValue(msg.Subject)) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
