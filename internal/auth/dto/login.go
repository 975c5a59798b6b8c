package dto

type LoginInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"type"`
	ExpiresIn int    `json:"expires_in"`
}
