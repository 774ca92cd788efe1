package repositories

import (
	"errors"

	"askpro_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
)

type TagRepository interface {
	Create(db *gorm.DB, tag *models.Tag) error
	FindByID(db *gorm.DB, id string) (*models.Tag, error)
	FindByName(db *gorm.DB, name string) (*models.Tag, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.Tag, error)
	FindAll(db *gorm.DB) ([]models.Tag, error)
	Update(db *gorm.DB, tag *models.Tag) error
	Delete(db *gorm.DB, id string) error
	CountQuestionsWithTag(db *gorm.DB, tagID string) (int64, error)
}

type TagRepositoryImpl struct{}

func NewTagRepository() TagRepository {
	return &TagRepositoryImpl{}
}

func (r *TagRepositoryImpl) Create(db *gorm.DB, tag *models.Tag) error {
	return db.Create(tag).Error
}

func (r *TagRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Tag, error) {
	var tag models.Tag
	err := db.Where("id = ?", id).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepositoryImpl) FindByName(db *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	err := db.Where("name = ?", name).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *TagRepositoryImpl) FindAll(db *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Order("name asc").Find(&tags).Error
	return tags, err
}

func (r *TagRepositoryImpl) Update(db *gorm.DB, tag *models.Tag) error {
	return db.Save(tag).Error
}

func (r *TagRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&models.Tag{}).Error
}

func (r *TagRepositoryImpl) CountQuestionsWithTag(db *gorm.DB, tagID string) (int64, error) {
	var count int64
	err := db.Table("question_tags").Where("tag_id = ?", tagID).Count(&count).Error
	return count, err
}
