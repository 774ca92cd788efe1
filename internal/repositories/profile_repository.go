package repositories

import (
	"errors"

	"askpro_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("professional profile not found")

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.ProfessionalProfile) error
	FindByUserID(db *gorm.DB, userID string) (*models.ProfessionalProfile, error)
	Update(db *gorm.DB, profile *models.ProfessionalProfile) error
	Delete(db *gorm.DB, userID string) error

	// Certified tags
	AddTag(db *gorm.DB, profile *models.ProfessionalProfile, tag *models.Tag) error
	HasTag(db *gorm.DB, profileID, tagID string) (bool, error)
	CountProfilesWithTag(db *gorm.DB, tagID string) (int64, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.ProfessionalProfile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.ProfessionalProfile, error) {
	var profile models.ProfessionalProfile
	err := db.Preload("Tags").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.ProfessionalProfile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) Delete(db *gorm.DB, userID string) error {
	var profile models.ProfessionalProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := db.Model(&profile).Association("Tags").Clear(); err != nil {
		return err
	}
	return db.Delete(&profile).Error
}

func (r *ProfileRepositoryImpl) AddTag(db *gorm.DB, profile *models.ProfessionalProfile, tag *models.Tag) error {
	return db.Model(profile).Association("Tags").Append(tag)
}

func (r *ProfileRepositoryImpl) HasTag(db *gorm.DB, profileID, tagID string) (bool, error) {
	var count int64
	err := db.Table("profile_tags").
		Where("professional_profile_id = ? AND tag_id = ?", profileID, tagID).
		Count(&count).Error
	return count > 0, err
}

func (r *ProfileRepositoryImpl) CountProfilesWithTag(db *gorm.DB, tagID string) (int64, error) {
	var count int64
	err := db.Table("profile_tags").Where("tag_id = ?", tagID).Count(&count).Error
	return count, err
}
