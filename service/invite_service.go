package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"html"
	"log"
	"math/big"

	"securefinance-backend/email"
	"securefinance-backend/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken    = errors.New("dit emailadres heeft al een account")
	ErrInviteNoEmail = errors.New("geen emailadres voor uitnodiging")
)

// UserStore persists portal users
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// ClientLinker links a created user to its client record
type ClientLinker interface {
	SetUserID(ctx context.Context, id, userID uuid.UUID) error
}

// InviteService creates portal logins for clients and mails the credentials
type InviteService struct {
	users   UserStore
	clients ClientLinker
	mailer  email.Mailer
}

// InviteServiceOption is a functional option for InviteService
type InviteServiceOption func(*InviteService)

// InviteWithUserStore sets the user store
func InviteWithUserStore(users UserStore) InviteServiceOption {
	return func(s *InviteService) {
		s.users = users
	}
}

// InviteWithClientLinker sets the client store
func InviteWithClientLinker(clients ClientLinker) InviteServiceOption {
	return func(s *InviteService) {
		s.clients = clients
	}
}

// InviteWithMailer sets the mailer
func InviteWithMailer(mailer email.Mailer) InviteServiceOption {
	return func(s *InviteService) {
		s.mailer = mailer
	}
}

// NewInviteService creates a new invite service
func NewInviteService(opts ...InviteServiceOption) *InviteService {
	s := &InviteService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InviteClientRequest represents a request to invite a client to the portal
type InviteClientRequest struct {
	Client *models.Client
}

// InviteClientResult carries the generated credentials for operator display
type InviteClientResult struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	TempPassword string    `json:"temp_password"`
	Simulated    bool      `json:"simulated"`
}

// InviteClient creates a client-role login with a temporary password, links
// it to the client record and mails the credentials. The temp password is
// also returned so the accountant can hand it over out of band. A failing
// invitation mail does not undo the created account.
func (s *InviteService) InviteClient(ctx context.Context, req InviteClientRequest) (*InviteClientResult, error) {
	if s.users == nil {
		return nil, errors.New("user store not set")
	}
	if s.clients == nil {
		return nil, errors.New("client store not set")
	}

	client := req.Client
	if !client.HasContactEmail() {
		return nil, ErrInviteNoEmail
	}
	address := *client.Email

	if _, err := s.users.GetByEmail(ctx, address); err == nil {
		return nil, ErrEmailTaken
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        address,
		PasswordHash: string(hashed),
		Role:         models.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.clients.SetUserID(ctx, client.ID, user.ID); err != nil {
		return nil, err
	}

	result := &InviteClientResult{
		UserID:       user.ID,
		Email:        address,
		TempPassword: tempPassword,
	}

	if s.mailer != nil {
		sendResult, err := s.mailer.Send(ctx, email.Message{
			To:      address,
			Subject: "Uw toegang tot het Secure Finance klantportaal",
			HTML:    renderInviteHTML(client.ContactPerson, address, tempPassword),
		})
		if err != nil {
			log.Printf("Failed to send invite email to %s: %v", address, err)
		} else {
			result.Simulated = sendResult.Simulated
		}
	}

	return result, nil
}

const tempPasswordChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// generateTempPassword returns a password of the form SF-xxxxxxxx!
func generateTempPassword() (string, error) {
	buf := make([]byte, 8)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tempPasswordChars))))
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordChars[n.Int64()]
	}
	return "SF-" + string(buf) + "!", nil
}

func renderInviteHTML(contactPerson, address, tempPassword string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px;">`+
		"<p>Beste %s,</p>"+
		"<p>Er is een account voor u aangemaakt in het Secure Finance klantportaal.</p>"+
		"<p>Inloggegevens:<br>Email: %s<br>Tijdelijk wachtwoord: %s</p>"+
		"<p>Wijzig uw wachtwoord na de eerste keer inloggen.</p>"+
		"<p>Met vriendelijke groet,<br>Secure Finance</p>"+
		"</div>",
		html.EscapeString(contactPerson),
		html.EscapeString(address),
		html.EscapeString(tempPassword),
	)
}
