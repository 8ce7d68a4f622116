// Package auth registers users and logs them in against the store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/schema"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// Authentication errors.
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid registration input")
)

// registration carries the validation rules of a new account.
type registration struct {
	Email    string         `validate:"required,email"`
	Password string         `validate:"min=8"`
	Name     string         `validate:"required"`
	Service  schema.Service `validate:"oneof=education hhrr marketing"`
}

var validate = validator.New()

// validateRegistration reports the first failing field as ErrInvalidInput.
func validateRegistration(r registration) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	switch fieldErrs[0].Field() {
	case "Email":
		return fmt.Errorf("%w: email %q is not valid", ErrInvalidInput, r.Email)
	case "Password":
		return fmt.Errorf("%w: password needs at least %d characters", ErrInvalidInput, MinPasswordLength)
	case "Name":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	default:
		return fmt.Errorf("%w: service must be one of education, hhrr, marketing", ErrInvalidInput)
	}
}

// Service registers and authenticates users.
type Service struct {
	Store  contract.Store
	Params HashParams
	Now    func() time.Time
}

// NewService returns a Service with the default hash parameters.
func NewService(store contract.Store) *Service {
	return &Service{Store: store, Params: DefaultHashParams, Now: time.Now}
}

// Register validates the input, hashes the password and stores a new user.
func (s *Service) Register(ctx context.Context, email, password, name string, service schema.Service) (schema.UserRecord, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if err := validateRegistration(registration{Email: email, Password: password, Name: name, Service: service}); err != nil {
		return schema.UserRecord{}, err
	}

	_, err := s.Store.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return schema.UserRecord{}, ErrEmailTaken
	case !errors.Is(err, contract.ErrNotFound):
		return schema.UserRecord{}, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := HashPassword(password, s.Params)
	if err != nil {
		return schema.UserRecord{}, err
	}

	user := schema.UserRecord{
		Email:        email,
		Name:         name,
		Service:      service,
		PasswordHash: hash,
		CreatedAt:    s.Now(),
	}
	user.ID, err = s.Store.CreateUser(ctx, user)
	if errors.Is(err, contract.ErrDuplicate) {
		// Lost a race with a concurrent registration for the same email
		return schema.UserRecord{}, ErrEmailTaken
	}
	if err != nil {
		return schema.UserRecord{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and opens a session.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (schema.Session, error) {
	user, err := s.Store.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, contract.ErrNotFound) {
		return schema.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return schema.Session{}, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return schema.Session{}, fmt.Errorf("failed to verify password of user %d: %w", user.ID, err)
	}
	if !ok {
		return schema.Session{}, ErrInvalidCredentials
	}

	return schema.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Service:   user.Service,
		CreatedAt: s.Now(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
