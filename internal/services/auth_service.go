package services

import (
	"errors"

	"gorm.io/gorm"

	"askpro_backend/internal/auth"
	"askpro_backend/internal/email"
	"askpro_backend/internal/logger"
	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"
)

type AuthService struct {
	userRepo repositories.UserRepository
	email    email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider) *AuthService {
	return &AuthService{userRepo: userRepo, email: emailProvider}
}

// Register создает нового пользователя. Флаг professional в запросе
// дает роль power: право отвечать появится только после одобренной
// заявки на тег, поэтому самоназначение роли безопасно.
func (s *AuthService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.userRepo.FindByEmail(tx, req.Email); err == nil {
		return nil, apperrors.ErrAlreadyExists(nil, "user", "Email is already registered")
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.userRepo.FindByUsername(tx, req.Username); err == nil {
		return nil, apperrors.ErrAlreadyExists(nil, "user", "Username is already taken")
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	role := models.UserRoleRegular
	if req.Professional {
		role = models.UserRolePower
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err, "user", "User already exists")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Письма вне транзакции и best-effort
	if s.email != nil {
		if err := s.email.Send(user.Email, email.WelcomeSubject(), email.WelcomeBody(user.Username)); err != nil {
			logger.WithError(err).Warn("failed to send welcome email", "user_id", user.ID)
		}
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid email or password")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	if user.Status == models.UserStatusBanned {
		return nil, apperrors.NewForbiddenError("Account is banned: " + user.BanReason)
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("Account is suspended")
	}

	return s.issueToken(user)
}

func (s *AuthService) GetMe(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthService) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(user),
	}, nil
}
