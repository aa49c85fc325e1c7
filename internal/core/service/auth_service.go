package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/devsquad/devlog-api/internal/core/domain"
	"github.com/devsquad/devlog-api/internal/core/ports"
)

// AuthService implements registration and login on top of the user store
// and the token issuer.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a member account and issues a session token.
// Returns domain.ErrEmailTaken when the normalized email already exists.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.UserView, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        domain.NormalizeEmail(input.Email),
		PasswordHash: string(hash),
		Team:         "",
		Role:         domain.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Email)
	if err != nil {
		return "", nil, err
	}
	return token, created.View(), nil
}

// Login authenticates by email and password. Both an unknown email and a
// wrong password yield domain.ErrInvalidCredentials so the response never
// reveals which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.UserView, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user.View(), nil
}
