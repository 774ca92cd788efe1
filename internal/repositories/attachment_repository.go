package repositories

import (
	"errors"

	"askpro_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAttachmentNotFound = errors.New("attachment not found")

type AttachmentRepository interface {
	Create(db *gorm.DB, attachment *models.Attachment) error
	FindByID(db *gorm.DB, id string) (*models.Attachment, error)
	FindByQuestion(db *gorm.DB, questionID string) ([]models.Attachment, error)
	CountByQuestion(db *gorm.DB, questionID string) (int64, error)
	Delete(db *gorm.DB, id string) error
}

type AttachmentRepositoryImpl struct{}

func NewAttachmentRepository() AttachmentRepository {
	return &AttachmentRepositoryImpl{}
}

func (r *AttachmentRepositoryImpl) Create(db *gorm.DB, attachment *models.Attachment) error {
	return db.Create(attachment).Error
}

func (r *AttachmentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Attachment, error) {
	var attachment models.Attachment
	err := db.Where("id = ?", id).First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepositoryImpl) FindByQuestion(db *gorm.DB, questionID string) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := db.Where("question_id = ?", questionID).Order("created_at asc").Find(&attachments).Error
	return attachments, err
}

func (r *AttachmentRepositoryImpl) CountByQuestion(db *gorm.DB, questionID string) (int64, error) {
	var count int64
	err := db.Model(&models.Attachment{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}

func (r *AttachmentRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&models.Attachment{}).Error
}
