package models

// Answer - ответ профессионала. Право авторства (роль power/admin и
// пересечение сертифицированных тегов с тегами вопроса) проверяется
// один раз при создании и позже не перепроверяется.
type Answer struct {
	BaseModel
	QuestionID string `gorm:"not null;index" json:"question_id"`
	UserID     string `gorm:"not null;index" json:"user_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	IsAccepted bool   `gorm:"default:false" json:"is_accepted"`

	// Relations
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comments []Comment `gorm:"foreignKey:AnswerID" json:"comments,omitempty"`
}
