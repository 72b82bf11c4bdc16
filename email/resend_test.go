package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendWithoutAPIKeySimulates(t *testing.T) {
	for _, key := range []string{"", "test"} {
		m := NewResendMailer(key, "Secure Finance <onboarding@resend.dev>")
		result, err := m.Send(context.Background(), Message{
			To:      "piet@jansen.nl",
			Subject: "Aan te leveren documenten",
			HTML:    "<p>Test</p>",
		})
		if err != nil {
			t.Fatalf("key %q: unexpected error: %v", key, err)
		}
		if !result.Simulated {
			t.Errorf("key %q: expected simulated send", key)
		}
		if !strings.Contains(result.Message, "Test-modus") {
			t.Errorf("key %q: expected test-mode wording, got %q", key, result.Message)
		}
	}
}

func TestSendDeliversThroughAPI(t *testing.T) {
	var captured resendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer re_secret" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(resendResponse{ID: "email-123"})
	}))
	defer server.Close()

	m := NewResendMailer("re_secret", "Secure Finance <onboarding@resend.dev>")
	m.endpoint = server.URL

	result, err := m.Send(context.Background(), Message{
		To:      "piet@jansen.nl",
		Subject: "Aan te leveren documenten",
		HTML:    "<p>Documenten</p>",
		ReplyTo: "kantoor@securefinance.nl",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Simulated {
		t.Error("real delivery must not be simulated")
	}
	if result.ID != "email-123" {
		t.Errorf("expected provider id, got %q", result.ID)
	}
	if len(captured.To) != 1 || captured.To[0] != "piet@jansen.nl" {
		t.Errorf("unexpected recipients: %v", captured.To)
	}
	if captured.ReplyTo != "kantoor@securefinance.nl" {
		t.Errorf("unexpected reply_to: %q", captured.ReplyTo)
	}
}

func TestSendUnverifiedDomainFallsBackToSimulated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(resendResponse{
			Message: "You can only send testing emails to your own address. Please verify a domain first.",
		})
	}))
	defer server.Close()

	m := NewResendMailer("re_secret", "Secure Finance <onboarding@resend.dev>")
	m.endpoint = server.URL

	result, err := m.Send(context.Background(), Message{To: "piet@jansen.nl", Subject: "x", HTML: "x"})
	if err != nil {
		t.Fatalf("unverified domain must not fail, got %v", err)
	}
	if !result.Simulated {
		t.Error("expected simulated fallback")
	}
	if !strings.Contains(result.Message, "Domein nog niet geverifieerd") {
		t.Errorf("expected fallback wording, got %q", result.Message)
	}
}

func TestSendProviderErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(resendResponse{Message: "Invalid `to` field"})
	}))
	defer server.Close()

	m := NewResendMailer("re_secret", "Secure Finance <onboarding@resend.dev>")
	m.endpoint = server.URL

	_, err := m.Send(context.Background(), Message{To: "not-an-address", Subject: "x", HTML: "x"})
	if err == nil {
		t.Fatal("expected error from provider rejection")
	}
	if !strings.Contains(err.Error(), "Invalid `to` field") {
		t.Errorf("provider message should surface, got %v", err)
	}
}
