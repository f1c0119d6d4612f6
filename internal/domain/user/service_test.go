package user

import (
	"context"
	"errors"
	"testing"

	"pt-scheduler-go/internal/auth"
)

type fakeUserRepo struct {
	byID       map[string]*User
	byUsername map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[string]*User),
		byUsername: make(map[string]*User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byUsername[u.Username]; ok {
		return ErrUsernameTaken
	}
	copied := *u
	r.byID[u.ID] = &copied
	r.byUsername[u.Username] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *User) error {
	stored, ok := r.byID[u.ID]
	if !ok {
		return ErrUserNotFound
	}
	delete(r.byUsername, stored.Username)
	copied := *u
	r.byID[u.ID] = &copied
	r.byUsername[u.Username] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	u, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	delete(r.byUsername, u.Username)
	delete(r.byID, id)
	return true, nil
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username: "jihoon",
		Password: "passw0rd",
		Email:    "jihoon@example.com",
		Name:     "Jihoon Kim",
		Role:     RoleMember,
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	u, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated id")
	}
	if u.PasswordHash == "passw0rd" {
		t.Fatal("password stored in plaintext")
	}
	if !auth.CheckPassword(u.PasswordHash, "passw0rd") {
		t.Fatal("stored hash does not verify original password")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
	}{
		{"short username", func(in *RegisterInput) { in.Username = "ab" }, "username"},
		{"long username", func(in *RegisterInput) { in.Username = "abcdefghijklmnopqrstu" }, "username"},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"empty name", func(in *RegisterInput) { in.Name = " " }, "name"},
		{"short password", func(in *RegisterInput) { in.Password = "a1" }, "password"},
		{"password without digit", func(in *RegisterInput) { in.Password = "abcdefgh" }, "password"},
		{"password without letter", func(in *RegisterInput) { in.Password = "12345678" }, "password"},
		{"bad role", func(in *RegisterInput) { in.Role = "ADMIN" }, "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	if _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	input := validRegisterInput()
	input.Email = "other@example.com"
	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	registered, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.Login(context.Background(), "jihoon", "passw0rd")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.ID != registered.ID {
		t.Fatalf("expected user %s, got %s", registered.ID, u.ID)
	}

	if _, err := svc.Login(context.Background(), "jihoon", "wrongpw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "passw0rd"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestUpdateKeepsRole(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	registered, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	name := "New Name"
	updated, err := svc.Update(context.Background(), registered.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if updated.Role != RoleMember {
		t.Fatalf("role must be immutable, got %s", updated.Role)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	registered, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Delete(context.Background(), registered.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), registered.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
