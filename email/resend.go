package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const resendAPI = "https://api.resend.com/emails"

// ResendMailer implements Mailer against the Resend HTTP API
type ResendMailer struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
}

// NewResendMailer creates a new Resend mailer
func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendAPI,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send delivers a message through the Resend API.
// Without an API key (or with the literal "test" key) the send is simulated.
// A "domain not verified" provider rejection is downgraded to a simulated
// success so half-configured accounts keep working during onboarding.
func (m *ResendMailer) Send(ctx context.Context, msg Message) (*SendResult, error) {
	if m.apiKey == "" || m.apiKey == "test" {
		log.Printf("[TEST MODE] Email would be sent to %s, subject: %s", msg.To, msg.Subject)
		return &SendResult{
			Simulated: true,
			Message:   "Test-modus: email niet echt verstuurd",
		}, nil
	}

	payload := resendRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("email send failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read email response: %w", err)
	}

	var apiResp resendResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		apiResp = resendResponse{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if strings.Contains(apiResp.Message, "testing emails") || strings.Contains(apiResp.Message, "verify a domain") {
			log.Printf("[TEST FALLBACK] Domain not verified, simulating send to %s", msg.To)
			return &SendResult{
				Simulated: true,
				Message:   "Domein nog niet geverifieerd - email gesimuleerd",
			}, nil
		}
		if apiResp.Message != "" {
			return nil, fmt.Errorf("email send failed: %s", apiResp.Message)
		}
		return nil, fmt.Errorf("email send failed: status %d", resp.StatusCode)
	}

	return &SendResult{ID: apiResp.ID}, nil
}
