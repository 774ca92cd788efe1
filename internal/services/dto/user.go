package dto

type UpdateProfileRequest struct {
	Bio          *string `json:"bio,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Workplace    *string `json:"workplace,omitempty"`
	Education    *string `json:"education,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type BanUserRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type ReportRequest struct {
	TargetType string `json:"target_type" validate:"required"`
	TargetID   string `json:"target_id" validate:"required"`
	Reason     string `json:"reason" validate:"required,min=3"`
}
