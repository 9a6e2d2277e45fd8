// Package service contains application services for accounts and owned resources.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/resumebuilder/server/internal/crypto"
	"github.com/resumebuilder/server/internal/errs"
	"github.com/resumebuilder/server/internal/limiter"
	"github.com/resumebuilder/server/internal/model"
	"github.com/resumebuilder/server/internal/repository"
)

// minPasswordLen is the registration password policy.
const minPasswordLen = 6

// AuthService defines account registration, login and profile operations.
type AuthService interface {
	// Register creates a new account with secure password hashing.
	Register(ctx context.Context, email, password string) (*model.Account, error)
	// LoginWithIP applies rate-limiting and authenticates the account.
	LoginWithIP(ctx context.Context, email, password, ip string) (*model.Account, error)
	// GetProfile returns the profile view for an account.
	GetProfile(ctx context.Context, id uuid.UUID) (model.ProfileView, error)
	// UpdateProfile merges the non-nil fields of upd into the stored profile.
	UpdateProfile(ctx context.Context, id uuid.UUID, upd model.ProfileUpdate) (model.ProfileView, error)
}

type AuthServiceImpl struct {
	accounts repository.AccountRepository
	lim      limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(accounts repository.AccountRepository, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{accounts: accounts, lim: lim}
}

// NormalizeEmail lowercases and trims an email address. All storage and
// lookups go through this, which is what makes uniqueness case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account record.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*model.Account, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", errs.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", errs.ErrInvalidInput, minPasswordLen)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	hash, err := pkgcrypto.HashPassword([]byte(password))
	if err != nil {
		return nil, err
	}

	a := &model.Account{ID: id, Email: email, PwdHash: hash}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip). Unknown email
// and wrong password produce the same error.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (*model.Account, error) {
	email = NormalizeEmail(email)
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errs.ErrRateLimited
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), a.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return nil, errs.ErrRateLimited
		}
		// a lookup failure and a wrong password are indistinguishable
		return nil, errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email, ipHash)
	return a, nil
}

// GetProfile returns the merged profile + email for an account.
func (s *AuthServiceImpl) GetProfile(ctx context.Context, id uuid.UUID) (model.ProfileView, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return model.ProfileView{}, err
	}
	return a.View(), nil
}

// UpdateProfile merges upd into the stored profile, leaving email and
// credentials untouched.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, id uuid.UUID, upd model.ProfileUpdate) (model.ProfileView, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return model.ProfileView{}, err
	}
	p := a.Profile
	upd.Apply(&p)
	a, err = s.accounts.UpdateProfile(ctx, id, p)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.ProfileView{}, errs.ErrNotFound
		}
		return model.ProfileView{}, err
	}
	return a.View(), nil
}
