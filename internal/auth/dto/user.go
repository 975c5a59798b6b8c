package dto

import (
	"time"

	"github.com/RochKDev/warranty-manager/internal/auth/domain"
)

type UserOutput struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
