package models

// Comment - ветка обсуждения под ответом. Участники ограничены:
// автор вопроса и автор родительского ответа.
type Comment struct {
	BaseModel
	AnswerID   string `gorm:"not null;index" json:"answer_id"`
	QuestionID string `gorm:"not null;index" json:"question_id"`
	UserID     string `gorm:"not null;index" json:"user_id"`
	Content    string `gorm:"type:text;not null" json:"content"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
