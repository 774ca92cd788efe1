package models

// Tag - глобальный каталог категорий. Создается админом.
// Используется и для классификации вопросов, и для сертификации
// профессионалов.
type Tag struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description,omitempty"`
}
