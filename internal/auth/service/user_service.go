package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/RochKDev/warranty-manager/config"
	"github.com/RochKDev/warranty-manager/internal/auth/domain"
	"github.com/RochKDev/warranty-manager/internal/auth/dto"
	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/RochKDev/warranty-manager/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo             domain.UserRepository
	attempts         domain.LoginAttemptStore
	tokenService     TokenGenerator
	loginMaxAttempts int
	compare          func(hash, password []byte) error
}

// dummyHash is compared against when the email is unknown so that both
// failure paths pay for one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("unknown-user-placeholder"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// NewUserService builds the service. A nil attempts store disables the
// login lockout.
func NewUserService(repo domain.UserRepository, attempts domain.LoginAttemptStore, tokenService TokenGenerator, cfg *config.Config) *UserService {
	if attempts == nil {
		attempts = noopAttemptStore{}
	}
	return &UserService{
		repo:             repo,
		attempts:         attempts,
		tokenService:     tokenService,
		loginMaxAttempts: cfg.LoginMaxAttempts,
		compare:          bcrypt.CompareHashAndPassword,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		slog.WarnContext(ctx, "registration rejected, email already in use", "email", email)
		return nil, apperror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	email := normalizeEmail(input.Email)

	if s.loginMaxAttempts > 0 {
		failed, err := s.attempts.FailedAttempts(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check login attempts: %w", err)
		}
		if failed >= s.loginMaxAttempts {
			return nil, apperror.ErrTooManyLoginAttempts
		}
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	hash := dummyHash()
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if err := s.compare(hash, []byte(input.Password)); user == nil || err != nil {
		if _, err := s.attempts.RecordFailure(ctx, email); err != nil {
			slog.WarnContext(ctx, "failed to record login failure", "email", email, "error", err)
		}
		slog.InfoContext(ctx, "login failed", "email", email, "ip", input.IPAddress)
		return nil, apperror.ErrInvalidCredentials
	}

	token, _, err := s.tokenService.Generate(user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.attempts.Clear(ctx, email); err != nil {
		slog.WarnContext(ctx, "failed to clear login failures", "email", email, "error", err)
	}

	return &dto.TokenResponse{
		Token:     token,
		TokenType: constant.DefaultTokenType,
		ExpiresIn: int(s.tokenService.GetAccessTokenExpiry().Seconds()),
	}, nil
}

// Me resolves the authenticated email back to its user row.
func (s *UserService) Me(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}
	return user, nil
}

type noopAttemptStore struct{}

func (noopAttemptStore) FailedAttempts(context.Context, string) (int, error) { return 0, nil }

func (noopAttemptStore) RecordFailure(context.Context, string) (int, error) { return 0, nil }

func (noopAttemptStore) Clear(context.Context, string) error { return nil }
