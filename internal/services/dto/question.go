package dto

import "askpro_backend/internal/models"

type CreateQuestionRequest struct {
	Title   string   `json:"title" validate:"required,min=5,max=200"`
	Content string   `json:"content" validate:"required,min=10"`
	TagIDs  []string `json:"tag_ids" validate:"required,min=1"`
}

// UpdateQuestionRequest - частичное обновление: nil-поле означает
// "не менять" (в отличие от явного пустого значения).
type UpdateQuestionRequest struct {
	Title   *string  `json:"title,omitempty" validate:"omitempty,min=5,max=200"`
	Content *string  `json:"content,omitempty" validate:"omitempty,min=10"`
	Status  *string  `json:"status,omitempty" validate:"omitempty,is-question-status"`
	TagIDs  []string `json:"tag_ids,omitempty"`
}

type QuestionListResponse struct {
	Questions  []models.Question `json:"questions"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}
