package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domainuser "findmeroom/internal/domain/user"
)

var ErrInvalidCredentials = errors.New("auth: invalid email or password")

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer mints bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
}

// Service handles registration and login.
type Service struct {
	Users  domainuser.Repository
	Hasher PasswordHasher
	Tokens TokenIssuer
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Email    string
	Name     string
	Phone    string
	Password string
}

// Session pairs a user with a freshly issued token.
type Session struct {
	User      *domainuser.User
	Token     string
	ExpiresAt time.Time
}

// Register creates an account. Email and phone must both be unused; the
// phone number is normalized to digits before the uniqueness check so the
// same number cannot be registered twice under different formatting.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := domainuser.NormalizeEmail(in.Email)
	if email == "" {
		return nil, domainuser.ErrEmailRequired
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domainuser.ErrNameRequired
	}
	phone, err := domainuser.NormalizePhone(in.Phone)
	if err != nil {
		return nil, err
	}

	if _, err := s.Users.ByEmail(ctx, email); err == nil {
		return nil, domainuser.ErrEmailAlreadyUsed
	} else if !errors.Is(err, domainuser.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Users.ByPhone(ctx, phone); err == nil {
		return nil, domainuser.ErrPhoneAlreadyUsed
	} else if !errors.Is(err, domainuser.ErrNotFound) {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	account := &domainuser.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Users.Save(ctx, account); err != nil {
		return nil, err
	}
	return s.newSession(account)
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.Users.ByEmail(ctx, domainuser.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.Hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.newSession(account)
}

func (s *Service) newSession(account *domainuser.User) (*Session, error) {
	token, expiresAt, err := s.Tokens.Issue(account.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: account, Token: token, ExpiresAt: expiresAt}, nil
}
