package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/autoservice-backend/internal/modules/user"
	"github.com/georgemunganga/autoservice-backend/internal/platform/apperr"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

type service struct {
	userRepo user.Repository
	jwtKey   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewService creates a new auth service signing HS256 tokens with secret.
func NewService(userRepo user.Repository, secret string, ttl time.Duration) Service {
	return &service{userRepo: userRepo, jwtKey: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *service) Login(ctx context.Context, email, password string) (*Token, error) {
	u, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expirationTime := s.now().Add(s.ttl)
	claims := &jwt.StandardClaims{
		Subject:   u.ID.String(),
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expirationTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Token{AccessToken: tokenString, TokenType: "Bearer", ExpiresAt: expirationTime}, nil
}

func (s *service) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
