package repositories

import (
	"errors"

	"askpro_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("tag application not found")

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.TagApplication) error
	FindByID(db *gorm.DB, id string) (*models.TagApplication, error)
	FindByUser(db *gorm.DB, userID string) ([]models.TagApplication, error)
	FindAll(db *gorm.DB, status models.ApplicationStatus) ([]models.TagApplication, error)
	HasPending(db *gorm.DB, userID, tagID string) (bool, error)
	Update(db *gorm.DB, application *models.TagApplication) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.TagApplication) error {
	return db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.TagApplication, error) {
	var application models.TagApplication
	err := db.Preload("Tag").Preload("User").Where("id = ?", id).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.TagApplication, error) {
	var applications []models.TagApplication
	err := db.Preload("Tag").Where("user_id = ?", userID).
		Order("created_at desc").Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindAll(db *gorm.DB, status models.ApplicationStatus) ([]models.TagApplication, error) {
	query := db.Preload("Tag").Preload("User")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var applications []models.TagApplication
	err := query.Order("created_at desc").Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) HasPending(db *gorm.DB, userID, tagID string) (bool, error) {
	var count int64
	err := db.Model(&models.TagApplication{}).
		Where("user_id = ? AND tag_id = ? AND status = ?", userID, tagID, models.ApplicationStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) Update(db *gorm.DB, application *models.TagApplication) error {
	return db.Save(application).Error
}
