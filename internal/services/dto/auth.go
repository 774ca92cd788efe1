package dto

import "askpro_backend/internal/models"

type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Professional bool   `json:"professional"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

type UserResponse struct {
	ID           string                      `json:"id"`
	Username     string                      `json:"username"`
	Email        string                      `json:"email"`
	Role         models.UserRole             `json:"role"`
	Status       models.UserStatus           `json:"status"`
	ProfileImage string                      `json:"profile_image,omitempty"`
	Bio          string                      `json:"bio,omitempty"`
	Professional *models.ProfessionalProfile `json:"professional_profile,omitempty"`
}

func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		Status:       user.Status,
		ProfileImage: user.ProfileImage,
		Bio:          user.Bio,
		Professional: user.ProfessionalProfile,
	}
}
