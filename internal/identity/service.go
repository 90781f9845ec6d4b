package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUsernameTaken indicates a signup conflict on the username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken indicates a signup conflict on the email.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service manages account lifecycle: signup, login and the daily bonus clock.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Signup creates a new user with a bcrypt password hash. Username and email
// must both be unique; a conflict performs no mutation.
func (s *Service) Signup(ctx context.Context, creds Credentials) (User, error) {
	username := strings.TrimSpace(creds.Username)
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	if username == "" || email == "" || creds.Password == "" {
		return User{}, errors.New("username, email and password are required")
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies email and password against the stored hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// RecordLogin updates the user's last-login timestamp and reports whether the
// daily bonus is due: once per calendar day, keyed on the day changing since
// the previous login. The swap is atomic, so of two concurrent logins on a
// new day only one sees the stale day and collects.
func (s *Service) RecordLogin(ctx context.Context, user User, now time.Time) (bool, error) {
	prev, err := s.repo.SwapLastLogin(ctx, user.ID, now)
	if err != nil {
		return false, err
	}
	return prev.IsZero() || !sameCalendarDay(prev, now), nil
}

// MarkVerified records that the external auth provider confirmed the email.
func (s *Service) MarkVerified(ctx context.Context, id string) error {
	return s.repo.SetVerified(ctx, id, true)
}

// Get fetches a user by id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
