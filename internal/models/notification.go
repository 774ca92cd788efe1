package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"` // см. Notification* константы
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"question_id": "..."}
	IsRead  bool           `gorm:"default:false" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at,omitempty"`
}

// Типы уведомлений. Append-only запись: после создания меняется
// только флаг IsRead, и только самим получателем.
const (
	NotificationAnswer              = "answer"
	NotificationAcceptance          = "acceptance"
	NotificationComment             = "comment"
	NotificationApplicationReviewed = "application_reviewed"
	NotificationBan                 = "ban"
	NotificationUnban               = "unban"
	NotificationQuestionDeleted     = "question_deleted"
	NotificationReport              = "report"
	NotificationReview              = "review"
)
