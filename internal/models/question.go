package models

type Question struct {
	BaseModel
	Title   string         `gorm:"not null" json:"title"`
	Content string         `gorm:"type:text;not null" json:"content"`
	UserID  string         `gorm:"not null;index" json:"user_id"`
	Status  QuestionStatus `gorm:"type:varchar(20);default:'open'" json:"status"`

	// Relations
	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tags        []Tag        `gorm:"many2many:question_tags;" json:"tags,omitempty"`
	Answers     []Answer     `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:QuestionID" json:"attachments,omitempty"`
}
