package models

import "time"

// TagApplication - заявка профессионала на сертификацию в теге.
// Строгий одноразовый state machine: pending -> {approved | rejected}.
type TagApplication struct {
	BaseModel
	UserID       string            `gorm:"not null;index" json:"user_id"`
	TagID        string            `gorm:"not null;index" json:"tag_id"`
	DocumentPath string            `gorm:"not null" json:"-"`
	Status       ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ReviewedAt   *time.Time        `json:"reviewed_at,omitempty"`
	ReviewedBy   string            `json:"reviewed_by,omitempty"`
	Notes        string            `json:"notes,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tag  *Tag  `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}
