package dto

type CreateAnswerRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Content    string `json:"content" validate:"required,min=10"`
}
