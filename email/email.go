package email

import (
	"context"
	"os"
)

// Message is one outbound email
type Message struct {
	To      string
	Subject string
	HTML    string
	ReplyTo string // optional
}

// SendResult reports the outcome of a delivery attempt. Simulated deliveries
// (test mode, unverified sending domain) count as success for status
// transitions but carry different operator-facing wording.
type SendResult struct {
	ID        string
	Simulated bool
	Message   string
}

// Mailer delivers transactional email
type Mailer interface {
	Send(ctx context.Context, msg Message) (*SendResult, error)
}

// NewMailerFromEnv creates a mailer from environment variables.
// Without RESEND_API_KEY (or with the literal value "test") every send is
// simulated, so development setups work without a provider account.
func NewMailerFromEnv() Mailer {
	apiKey := os.Getenv("RESEND_API_KEY")
	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		from = "Secure Finance <onboarding@resend.dev>"
	}

	return NewResendMailer(apiKey, from)
}
