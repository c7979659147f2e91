package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/talentwire/taxonomy-backend/internal/config"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// Session is the successful login payload.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Service authenticates the single configured admin credential.
type Service struct {
	cfg config.AuthConfig
	jwt *JWTManager
	log *slog.Logger
}

// NewService creates a new auth service.
func NewService(log *slog.Logger, cfg config.AuthConfig, jwt *JWTManager) *Service {
	return &Service{
		cfg: cfg,
		jwt: jwt,
		log: log.With("service", "auth"),
	}
}

// Login checks the credential against the configured admin username and
// bcrypt hash and issues an access token. Returns domain.ErrUnauthorized on
// any mismatch; the reason is not distinguished to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password))
	if !usernameOK || passwordErr != nil {
		s.log.WarnContext(ctx, "login rejected", "username", username)
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(s.cfg.AdminUsername)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	s.log.InfoContext(ctx, "login succeeded", "username", s.cfg.AdminUsername)

	return &Session{
		Token:     token,
		Username:  s.cfg.AdminUsername,
		ExpiresAt: expiresAt,
	}, nil
}
