package models

// Attachment - файл, приложенный к вопросу. Не более двух на вопрос,
// только PDF/PNG, до 5MB. Колонка Path - единственный указатель на файл
// на диске.
type Attachment struct {
	BaseModel
	QuestionID string `gorm:"not null;index" json:"question_id"`
	UserID     string `gorm:"not null;index" json:"user_id"`
	Filename   string `gorm:"not null" json:"filename"`
	MimeType   string `gorm:"not null" json:"mime_type"`
	Size       int64  `json:"size"`
	Path       string `gorm:"not null" json:"-"`
}

// Допустимые типы вложений вопроса
const (
	MimePDF = "application/pdf"
	MimePNG = "image/png"
)
