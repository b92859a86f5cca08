// Package service implements the application logic between the HTTP layer
// and the catalog and store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shelfmarkapp/shelfmark-server/internal/auth"
	"github.com/shelfmarkapp/shelfmark-server/internal/date"
	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	domainerrors "github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/id"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
	"github.com/shelfmarkapp/shelfmark-server/internal/validation"
)

// loginMemberSince is the membership date stamped on identities minted by
// Login. Accounts created through Register get the current date instead.
var loginMemberSince = date.New(2024, time.January, 15)

// AuthService handles member sign-in, registration, and token verification.
// Authentication is demo-grade: any password is accepted and signing in with
// an unknown email mints a member on the spot.
type AuthService struct {
	store        *store.Store
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store *store.Store,
	tokenService *auth.TokenService,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		validator:    validator,
		logger:       logger,
	}
}

// LoginRequest contains member credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest contains member registration data.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the access token and member data.
type AuthResponse struct {
	User        *domain.Identity `json:"user"`
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// Login signs a member in. The password is not checked; an unknown email
// creates a new identity whose display name is the email's local part.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("lookup user: %w", err)
		}

		user, err = s.createIdentity(ctx, displayNameFromEmail(req.Email), req.Email, loginMemberSince)
		if err != nil {
			return nil, err
		}

		if s.logger != nil {
			s.logger.Info("Minted member on first login",
				"user_id", user.ID,
				"email", user.Email,
			)
		}
	}

	return s.issueToken(user)
}

// Register creates a new member account with today's date as the membership
// date. An email already tied to an account is rejected.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.createIdentity(ctx, req.Name, req.Email, date.Today())
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Member registered",
			"user_id", user.ID,
			"email", user.Email,
		)
	}

	return s.issueToken(user)
}

// Logout ends the member's session. The identity and its entire loan ledger
// are removed, so a token minted before logout stops verifying.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	removed, err := s.store.DeleteUserLoans(ctx, userID)
	if err != nil {
		return fmt.Errorf("clear loans: %w", err)
	}

	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Member logged out",
			"user_id", userID,
			"loans_cleared", removed,
		)
	}

	return nil
}

// Profile returns the member's identity.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.Identity, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domainerrors.NotFoundf("user %q not found", userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// VerifyAccessToken validates a token and returns the associated member.
// Used by authentication middleware. A token for a member that no longer
// exists (logged out) fails verification.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.Identity, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid token: %w", err)
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil, errors.New("user not found")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	return user, claims, nil
}

func (s *AuthService) createIdentity(ctx context.Context, name, email string, memberSince date.Date) (*domain.Identity, error) {
	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.Identity{
		ID:          userID,
		Name:        name,
		Email:       email,
		MemberSince: memberSince,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, domainerrors.Validation("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) issueToken(user *domain.Identity) (*AuthResponse, error) {
	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokenService.AccessTokenDuration()),
	}, nil
}

// displayNameFromEmail derives a display name from the email's local part.
func displayNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}
