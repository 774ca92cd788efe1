package dto

type CreateCommentRequest struct {
	AnswerID string `json:"answer_id" validate:"required"`
	Content  string `json:"content" validate:"required,min=1"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
