package service

import (
	"errors"
	"fmt"

	"drawer/internal/dto"
	"drawer/pkg/auth"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid password")

// AuthService gates the whole API behind a single shared password. The
// plaintext from config is hashed once at startup and only the hash is kept.
type AuthService struct {
	passwordHash string
	jwtManager   *auth.JWTManager
	logger       *zap.Logger
}

func NewAuthService(password string, jwtManager *auth.JWTManager, logger *zap.Logger) (*AuthService, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash access password: %w", err)
	}
	return &AuthService{
		passwordHash: hash,
		jwtManager:   jwtManager,
		logger:       logger,
	}, nil
}

func (s *AuthService) Login(password string) (*dto.LoginResponse, error) {
	if !auth.CheckPasswordHash(password, s.passwordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateToken()
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtManager.GetTokenDuration().Seconds()),
	}, nil
}
