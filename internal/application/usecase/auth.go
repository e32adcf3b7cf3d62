package usecase

import (
	"context"
	"errors"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/infrastructure/security"

	"github.com/google/uuid"
)

type AuthUseCase struct {
	users  UserRepository
	hasher *security.PasswordHasher
	tokens *security.TokenManager
}

func NewAuthUseCase(users UserRepository, h *security.PasswordHasher, tm *security.TokenManager) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		hasher: h,
		tokens: tm,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return "", err
	}

	return uc.tokens.Generate(user.ID, user.Email)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return uc.tokens.Generate(user.ID, user.Email)
}

func (uc *AuthUseCase) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}
