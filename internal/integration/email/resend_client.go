// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
	domainerror "github.com/consultorio/dashboard-backend/internal/domain/error"
)

// permanentPatterns mark provider errors that retrying cannot fix:
// 401, 403 and 422 responses. Rate limits and 5xx are retried.
var permanentPatterns = []string{
	"401",
	"403",
	"422",
	"unauthorized",
	"forbidden",
	"validation",
	"invalid",
	"bad request",
}

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client  *resend.Client
	from    string
	replyTo string
}

// NewResendClient creates a new Resend client. replyTo may be empty.
func NewResendClient(apiKey, fromName, fromEmail, replyTo string) *ResendClient {
	return &ResendClient{
		client:  resend.NewClient(apiKey),
		from:    fmt.Sprintf("%s <%s>", fromName, fromEmail),
		replyTo: replyTo,
	}
}

// WithBaseURL points the client at another Resend-compatible endpoint.
func (c *ResendClient) WithBaseURL(raw string) (*ResendClient, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid resend base url: %w", err)
	}
	c.client.BaseURL = u
	return c, nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
		ReplyTo: c.replyTo,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{
		ProviderID: resp.Id,
	}, nil
}

func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, pattern := range permanentPatterns {
		if strings.Contains(msg, pattern) {
			return domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				err,
			)
		}
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"temporary email failure",
		err,
	)
}

// LogSender writes emails to the log instead of delivering them. It is used
// when no provider API key is configured.
type LogSender struct{}

// Send logs the email and reports success.
func (LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	slog.Info("Email delivery disabled, logging instead",
		"to", input.To,
		"subject", input.Subject,
	)
	return &adapter.SendEmailResult{ProviderID: "log"}, nil
}

// MockEmailSender records sent emails for tests.
type MockEmailSender struct {
	mu          sync.Mutex
	sent        []adapter.SendEmailInput
	failErr     error
	isPermanent bool
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// Send implements the adapter.EmailSender interface for testing.
func (m *MockEmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.isPermanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "mock failure", m.failErr)
	}

	m.sent = append(m.sent, input)
	return &adapter.SendEmailResult{
		ProviderID: fmt.Sprintf("mock-%d", len(m.sent)),
	}, nil
}

// Sent returns a copy of the emails sent so far.
func (m *MockEmailSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), m.sent...)
}

// SetFailure configures the mock to fail with the given error.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	m.isPermanent = permanent
}

// Reset clears all sent emails and failure configuration.
func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
	m.failErr = nil
	m.isPermanent = false
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = LogSender{}
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)
