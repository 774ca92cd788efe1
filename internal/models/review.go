package models

// Review - оценка профессионала. Пара (reviewer, reviewee) уникальна:
// повторная отправка обновляет существующую строку. Средний рейтинг
// считается на чтении, не кэшируется.
type Review struct {
	BaseModel
	UserID     string  `gorm:"not null;index:idx_reviews_pair,unique" json:"user_id"`     // reviewee
	ReviewerID string  `gorm:"not null;index:idx_reviews_pair,unique" json:"reviewer_id"` // автор отзыва
	QuestionID *string `gorm:"index" json:"question_id,omitempty"`
	Rating     int     `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string  `json:"comment,omitempty"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}
