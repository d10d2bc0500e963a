package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainuser "findmeroom/internal/domain/user"
	"findmeroom/internal/infra/storage/memory"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type staticTokens struct{}

func (staticTokens) Issue(userID string) (string, time.Time, error) {
	return "token-for-" + userID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), nil
}

func newAuthService() (*Service, *memory.UserRepository) {
	users := memory.NewUserRepository()
	return &Service{Users: users, Hasher: plainHasher{}, Tokens: staticTokens{}}, users
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	service, users := newAuthService()

	session, err := service.Register(ctx, RegisterInput{
		Email:    "  Alice@Example.COM ",
		Name:     " Alice ",
		Phone:    "+91 98765-43210",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotNil(t, session.User)

	assert.Equal(t, "alice@example.com", session.User.Email)
	assert.Equal(t, "Alice", session.User.Name)
	assert.Equal(t, "919876543210", session.User.Phone)
	assert.Equal(t, "hash:s3cret", session.User.PasswordHash)
	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "token-for-"+session.User.ID, session.Token)

	stored, err := users.ByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, stored.ID)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService()

	_, err := service.Register(ctx, RegisterInput{Name: "Alice", Phone: "9876543210", Password: "x"})
	assert.ErrorIs(t, err, domainuser.ErrEmailRequired)

	_, err = service.Register(ctx, RegisterInput{Email: "a@b.com", Phone: "9876543210", Password: "x"})
	assert.ErrorIs(t, err, domainuser.ErrNameRequired)

	_, err = service.Register(ctx, RegisterInput{Email: "a@b.com", Name: "Alice", Phone: "12345", Password: "x"})
	assert.ErrorIs(t, err, domainuser.ErrInvalidPhone)

	_, err = service.Register(ctx, RegisterInput{Email: "a@b.com", Name: "Alice", Phone: "1234567890123456", Password: "x"})
	assert.ErrorIs(t, err, domainuser.ErrInvalidPhone)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService()

	_, err := service.Register(ctx, RegisterInput{
		Email: "alice@example.com", Name: "Alice", Phone: "9876543210", Password: "x",
	})
	require.NoError(t, err)

	// same email under different casing
	_, err = service.Register(ctx, RegisterInput{
		Email: "ALICE@example.com", Name: "Alice 2", Phone: "9876543211", Password: "x",
	})
	assert.ErrorIs(t, err, domainuser.ErrEmailAlreadyUsed)

	// same phone under different formatting
	_, err = service.Register(ctx, RegisterInput{
		Email: "alice2@example.com", Name: "Alice 2", Phone: "(987) 654-3210", Password: "x",
	})
	assert.ErrorIs(t, err, domainuser.ErrPhoneAlreadyUsed)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService()

	registered, err := service.Register(ctx, RegisterInput{
		Email: "alice@example.com", Name: "Alice", Phone: "9876543210", Password: "s3cret",
	})
	require.NoError(t, err)

	session, err := service.Login(ctx, "Alice@Example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)
	assert.Equal(t, "token-for-"+registered.User.ID, session.Token)

	_, err = service.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
