package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/RochKDev/warranty-manager/internal/auth/domain UserRepository,LoginAttemptStore

import "context"

// UserRepository returns (nil, nil) from the getters when no user matches.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *User) error
}

// LoginAttemptStore counts failed logins per email inside a sliding window.
type LoginAttemptStore interface {
	FailedAttempts(ctx context.Context, email string) (int, error)
	RecordFailure(ctx context.Context, email string) (int, error)
	Clear(ctx context.Context, email string) error
}
