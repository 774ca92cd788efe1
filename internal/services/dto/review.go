package dto

import "askpro_backend/internal/models"

type SubmitReviewRequest struct {
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Comment    string  `json:"comment,omitempty"`
	QuestionID *string `json:"question_id,omitempty"`
}

type UserReviewsResponse struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	Total         int64           `json:"total"`
}
