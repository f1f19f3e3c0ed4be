// Package staff handles back-office authentication for cashiers and
// managers.
package staff

import (
	"context"
	"errors"
	"strings"
	"time"

	"maqha/internal/domain"
	staffrepo "maqha/internal/repository/staff"
	tokenrepo "maqha/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when username/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles staff login and token validation.
type Service struct {
	repo        staffrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo staffrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		accessTTL:   12 * time.Hour,
		passwordMin: 8,
	}
}

// Login validates credentials and returns an issued access token plus the
// account.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.StaffUser, string, error) {
	username = strings.TrimSpace(username)
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	return u, access, nil
}

// LookupByToken returns the staff account bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.StaffUser, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, meta.StaffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// CreateUser registers a back-office account. Used by the seeder and by
// managers adding cashiers.
func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*domain.StaffUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username required")
	}
	if len(strings.TrimSpace(password)) < s.passwordMin {
		return nil, errors.New("password too short")
	}
	if role == "" {
		role = "cashier"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.StaffUser{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         role,
	})
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}
