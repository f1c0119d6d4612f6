package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"pt-scheduler-go/internal/auth"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := validateRegister(input); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		Email:        strings.TrimSpace(input.Email),
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credential pair. Missing user and wrong password collapse
// into the same error so usernames cannot be probed.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if !emailRe.MatchString(email) {
			return nil, &ValidationError{Field: "email", Reason: "invalid email format"}
		}
		u.Email = email
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		u.Name = name
	}
	if input.PhoneNumber != nil {
		u.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

func validateRegister(input RegisterInput) error {
	username := strings.TrimSpace(input.Username)
	if len(username) < 3 || len(username) > 20 {
		return &ValidationError{Field: "username", Reason: "must be 3-20 characters"}
	}
	if !emailRe.MatchString(strings.TrimSpace(input.Email)) {
		return &ValidationError{Field: "email", Reason: "invalid email format"}
	}
	if err := validateName(strings.TrimSpace(input.Name)); err != nil {
		return err
	}
	if err := validatePassword(input.Password); err != nil {
		return err
	}
	if !input.Role.Valid() {
		return &ValidationError{Field: "role", Reason: "must be MEMBER or TRAINER"}
	}
	return nil
}

func validateName(name string) error {
	if n := len([]rune(name)); n < 1 || n > 50 {
		return &ValidationError{Field: "name", Reason: "must be 1-50 characters"}
	}
	return nil
}

// Passwords need at least 8 characters with one letter and one digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return &ValidationError{Field: "password", Reason: "must contain at least one letter and one digit"}
	}
	return nil
}
