package models

// ProfessionalProfile - профиль профессионала (роль power или admin).
// Создается лениво: при первом одобрении заявки на тег или при
// первом редактировании профиля.
type ProfessionalProfile struct {
	BaseModel
	UserID             string             `gorm:"uniqueIndex;not null" json:"user_id"`
	Workplace          string             `json:"workplace,omitempty"`
	Education          string             `json:"education,omitempty"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'unverified'" json:"verification_status"`

	// Certified tags - теги, в которых профессионал сертифицирован
	Tags []Tag `gorm:"many2many:profile_tags;" json:"tags,omitempty"`
}
