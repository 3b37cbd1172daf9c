package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/erosmarket/storefront/internal/api/metrics"
	"github.com/erosmarket/storefront/internal/core/domain"
	"github.com/erosmarket/storefront/internal/core/ports"
	"github.com/erosmarket/storefront/internal/pkg/digest"
	"github.com/erosmarket/storefront/internal/token"
)

// IdentityService orchestrates registration, login and profile updates.
// It owns no credential state itself: hashing is delegated to the Hasher,
// token minting to the Issuer, persistence to the UserRepository.
type IdentityService struct {
	repo   ports.UserRepository
	hasher digest.Hasher
	issuer *token.Issuer
	logger zerolog.Logger
}

func NewIdentityService(repo ports.UserRepository, hasher digest.Hasher, issuer *token.Issuer, logger zerolog.Logger) *IdentityService {
	return &IdentityService{repo: repo, hasher: hasher, issuer: issuer, logger: logger}
}

// Register creates a new Guest account. The email uniqueness check is
// case-sensitive, matching the reference system.
func (s *IdentityService) Register(ctx context.Context, username, email, secret, avatar string) (*domain.User, error) {
	if username == "" || email == "" || secret == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}

	if avatar == "" {
		avatar = domain.DefaultAvatar
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleGuest,
		Avatar:       avatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong secret are reported identically so the caller cannot learn
// which accounts exist.
func (s *IdentityService) Login(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
	if email == "" || secret == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(secret, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")

	return &ports.LoginResult{
		Token:    signed,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Avatar:   user.Avatar,
	}, nil
}

// UpdateProfile overwrites the mutable display fields. A blank avatar
// keeps the current one. The existing token is neither re-issued nor
// invalidated: its stale claims remain valid until natural expiry.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID, username, email, avatar string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Username = username
	user.Email = email
	if avatar != "" {
		user.Avatar = avatar
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("profile updated")
	return nil
}
