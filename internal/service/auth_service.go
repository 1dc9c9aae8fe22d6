package service

import (
	"context"
	"errors"
	"fmt"

	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/models"
	"songcalendar/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var loginMessages = map[string]string{
	"username.required": "Username and password are required",
	"password.required": "Username and password are required",
}

type AuthService struct {
	users storage.UserStorage
	cost  int
}

func NewAuthService(users storage.UserStorage) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

// WithBcryptCost changes the work factor of newly hashed passwords.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.cost = cost
	return s
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	utils.Logger.Debug("AuthService.Login", zap.String("username", req.Username))

	if err := validateRequest(req, loginMessages); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		utils.Logger.Error("AuthService.Login - users.GetByUsername failed", zap.Error(err))
		return nil, fmt.Errorf("AuthService.Login - users.GetByUsername failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.Logger.Warn("AuthService.Login - wrong password", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	utils.Logger.Info("AuthService.Login - user logged in", zap.Int("user_id", user.ID))
	return user, nil
}

// SeedAdmin creates the admin account unless a user with that name exists.
func (s *AuthService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return false, fmt.Errorf("AuthService.SeedAdmin - bcrypt failed: %w", err)
	}

	created, err := s.users.CreateIfMissing(ctx, &models.User{Username: username, PasswordHash: string(hash)})
	if err != nil {
		utils.Logger.Error("AuthService.SeedAdmin - users.CreateIfMissing failed", zap.Error(err))
		return false, fmt.Errorf("AuthService.SeedAdmin - users.CreateIfMissing failed: %w", err)
	}
	if created {
		utils.Logger.Info("AuthService.SeedAdmin - admin user created", zap.String("username", username))
	}
	return created, nil
}
