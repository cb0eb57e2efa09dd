package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"user-gate/internal/repository"
	gate_errors "user-gate/pkg/errors"

	"github.com/goccy/go-json"
)

// FieldError is one {field: reason} entry of a validation failure.
type FieldError struct {
	Field  string
	Reason string
}

func (f FieldError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{f.Field: f.Reason})
}

// ValidationErrors is the ordered list returned to the client with 422.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (v ValidationErrors) Unwrap() error {
	return gate_errors.ErrInvalidInput
}

const (
	ReasonEmailTaken       = "email must be unique"
	ReasonPasswordMismatch = "passwords do not match"
	ReasonEmailMissing     = "email does not exist"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	Email string
}

// Register validates a registration. The user file is only read: an accepted
// registration is not stored. A store failure is returned as is and is not a
// validation error.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	exists, err := s.userRepo.Exists(ctx, in.Email)
	if err != nil {
		return err
	}

	var verrs ValidationErrors
	if exists {
		verrs = append(verrs, FieldError{Field: "email", Reason: ReasonEmailTaken})
	}
	if in.Password != in.ConfirmPassword {
		verrs = append(verrs, FieldError{Field: "password", Reason: ReasonPasswordMismatch})
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// Login checks that the email is known. A store failure does not abort the
// check; its message becomes part of the validation list.
func (s *AuthService) Login(ctx context.Context, in LoginInput) error {
	var verrs ValidationErrors

	emails, err := s.userRepo.Emails(ctx)
	if err != nil {
		verrs = append(verrs, FieldError{Field: "error", Reason: err.Error()})
	}
	if !slices.Contains(emails, in.Email) {
		verrs = append(verrs, FieldError{Field: "error", Reason: ReasonEmailMissing})
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// AsValidation extracts the validation list from err.
func AsValidation(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
