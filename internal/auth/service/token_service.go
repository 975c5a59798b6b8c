package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/RochKDev/warranty-manager/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	Generate(email string) (string, time.Time, error)
	Validate(tokenString string) bool
	IdentityOf(tokenString string) (string, error)
	GetAccessTokenExpiry() time.Duration
}

type TokenService struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	now               func() time.Time
}

func NewTokenService(accessSecret string, accessMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret: accessSecret,
		AccessTokenExpiry: time.Duration(accessMinutes) * time.Minute,
		now:               time.Now,
	}
}

// Generate signs an HS256 token whose subject is the user's email.
func (ts *TokenService) Generate(email string) (string, time.Time, error) {
	now := ts.now()
	expiresAt := now.Add(ts.AccessTokenExpiry)

	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

// Validate fails closed: any parse, signature or expiry problem yields false.
func (ts *TokenService) Validate(tokenString string) bool {
	_, err := ts.verify(tokenString)
	return err == nil
}

func (ts *TokenService) IdentityOf(tokenString string) (string, error) {
	claims, err := ts.verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (ts *TokenService) verify(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.AccessTokenSecret), nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(ts.now))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}
