package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"krishiCMS/domain"
	"krishiCMS/pkg/logger"
	"krishiCMS/pkg/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AdminRepository contract interface
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.AdminUser, error)
	FindByID(ctx context.Context, id uint64) (domain.AdminUser, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *domain.AdminUser) error
}

// TokenStore keeps live sessions so logout can revoke a token early.
type TokenStore interface {
	StoreToken(ctx context.Context, token string, session domain.Session, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	RevokeToken(ctx context.Context, token string) error
}

// Client describes where a login came from.
type Client struct {
	IP        string
	UserAgent string
}

type authService struct {
	adminRepo AdminRepository
	jwt       *utils.JWT
	tokens    TokenStore
}

// NewAuthService builds the admin session service. tokens may be nil, in
// which case tokens are trusted until they expire.
func NewAuthService(adminRepo AdminRepository, jwt *utils.JWT, tokens TokenStore) *authService {
	return &authService{
		adminRepo: adminRepo,
		jwt:       jwt,
		tokens:    tokens,
	}
}

func (s *authService) TTL() time.Duration {
	return s.jwt.TTL()
}

func (s *authService) Login(ctx context.Context, email, password string, client Client) (string, domain.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.AdminUser{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.adminRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.AdminUser{}, ErrInvalidCredentials
		}
		logger.Error("Failed to find admin", err)
		return "", domain.AdminUser{}, err
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Warn("Rejected admin login", "email", user.Email, "ip", client.IP)
		return "", domain.AdminUser{}, ErrInvalidCredentials
	}

	userID := strconv.FormatUint(user.ID, 10)
	token, err := s.jwt.Generate(userID, domain.RoleAdmin)
	if err != nil {
		logger.Error("Failed to sign token", err)
		return "", domain.AdminUser{}, fmt.Errorf("failed to sign token: %w", err)
	}

	if s.tokens != nil {
		now := time.Now()
		session := domain.Session{
			UserID:    userID,
			Role:      domain.RoleAdmin,
			IssuedAt:  now,
			ExpiresAt: now.Add(s.jwt.TTL()),
			IPAddress: client.IP,
			UserAgent: client.UserAgent,
		}
		if err := s.tokens.StoreToken(ctx, token, session, s.jwt.TTL()); err != nil {
			logger.Error("Failed to store session", err)
			return "", domain.AdminUser{}, err
		}
	}

	return token, user, nil
}

// Authenticate verifies the signature, expiry and, with a token store, that
// the session was not revoked.
func (s *authService) Authenticate(ctx context.Context, token string) (*utils.Claims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	if s.tokens != nil {
		userID, err := s.tokens.ValidateToken(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		if userID != claims.UserID {
			logger.Error("UserID mismatch between token and session")
			return nil, ErrUnauthorized
		}
	}

	return claims, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if s.tokens == nil || token == "" {
		return nil
	}

	if err := s.tokens.RevokeToken(ctx, token); err != nil {
		logger.Error("Failed to revoke token", err)
		return err
	}

	return nil
}

func (s *authService) Me(ctx context.Context, userID uint64) (domain.AdminUser, error) {
	if err := ctx.Err(); err != nil {
		return domain.AdminUser{}, fmt.Errorf("context error: %w", err)
	}

	return s.adminRepo.FindByID(ctx, userID)
}

// SeedAdmin creates the first admin when the table holds none.
func (s *authService) SeedAdmin(ctx context.Context, email, password, fullName string) error {
	if email == "" || password == "" {
		return nil
	}

	n, err := s.adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.AdminUser{
		FullName: fullName,
		Email:    email,
		Password: string(hash),
	}
	if err := s.adminRepo.Create(ctx, &user); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	logger.Info("Seeded admin user", "email", email)
	return nil
}
