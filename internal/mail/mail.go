// Package mail relays contact-form messages through an external SMTP
// provider, authenticating with short-lived OAuth2 access tokens minted from
// a stored refresh token.
package mail

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	netmail "net/mail"
	"strings"

	gomail "github.com/wneessen/go-mail"
	"golang.org/x/oauth2"
)

const defaultSMTPPort = 587

// Message is one contact-form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"message"`
}

// Validate checks that every field is present and the sender address is
// parseable. All fields are required; there is no partial submission.
func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return fmt.Errorf("%w: name", ErrInvalidMessage)
	case strings.TrimSpace(m.Email) == "":
		return fmt.Errorf("%w: email", ErrInvalidMessage)
	case strings.TrimSpace(m.Subject) == "":
		return fmt.Errorf("%w: subject", ErrInvalidMessage)
	case strings.TrimSpace(m.Body) == "":
		return fmt.Errorf("%w: message", ErrInvalidMessage)
	}
	if _, err := netmail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("%w: email %q", ErrInvalidMessage, m.Email)
	}
	return nil
}

// Key is a stable content hash used to spot double submissions.
func (m Message) Key() string {
	sum := sha256.Sum256([]byte(m.Email + "\x00" + m.Subject + "\x00" + m.Body))
	return hex.EncodeToString(sum[:])
}

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Option applies a configuration option to the SMTPMailer.
type Option func(*SMTPMailer)

// WithHost sets the SMTP server host.
func WithHost(host string) Option {
	return func(m *SMTPMailer) {
		if host != "" {
			m.host = host
		}
	}
}

// WithPort sets the SMTP server port.
func WithPort(port int) Option {
	return func(m *SMTPMailer) {
		if port > 0 {
			m.port = port
		}
	}
}

// WithAccount sets the sending account, used both as the SMTP username and
// the From address.
func WithAccount(address string) Option {
	return func(m *SMTPMailer) {
		if address != "" {
			m.account = address
		}
	}
}

// WithRecipient sets the address messages are relayed to.
func WithRecipient(address string) Option {
	return func(m *SMTPMailer) {
		if address != "" {
			m.recipient = address
		}
	}
}

// WithTokenSource sets the OAuth2 token source used for XOAUTH2 auth.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(m *SMTPMailer) {
		if ts != nil {
			m.tokens = ts
		}
	}
}

// SMTPMailer sends messages over SMTP with XOAUTH2 authentication.
type SMTPMailer struct {
	host      string
	port      int
	account   string
	recipient string
	tokens    oauth2.TokenSource
}

// NewSMTPMailer creates an SMTP mailer with configuration options.
func NewSMTPMailer(opts ...Option) *SMTPMailer {
	m := &SMTPMailer{
		port: defaultSMTPPort,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send relays msg to the configured recipient. A fresh access token is
// requested from the token source per delivery; the source caches and
// refreshes underneath.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.host == "" || m.account == "" || m.recipient == "" || m.tokens == nil {
		return ErrNotConfigured
	}
	token, err := m.tokens.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenRefresh, err)
	}

	out := gomail.NewMsg()
	if err := out.From(m.account); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	if err := out.To(m.recipient); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextPlain,
		fmt.Sprintf("From: %s <%s>\n%s", msg.Name, msg.Email, msg.Body))

	client, err := gomail.NewClient(m.host,
		gomail.WithPort(m.port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthXOAUTH2),
		gomail.WithUsername(m.account),
		gomail.WithPassword(token.AccessToken),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}

// TokenSource builds a refresh-token-backed OAuth2 source for tokenURL.
// Returned tokens are cached until expiry and renewed automatically.
func TokenSource(ctx context.Context, clientID, clientSecret, refreshToken, tokenURL string) oauth2.TokenSource {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}
	return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
}

// Suppressed is a Mailer that accepts everything and sends nothing. It
// stands in when relay credentials are absent, e.g. local development.
type Suppressed struct{}

// Send validates nothing and delivers nothing.
func (Suppressed) Send(_ context.Context, _ Message) error { return nil }
