package repositories

import (
	"errors"

	"askpro_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	FindByAnswer(db *gorm.DB, answerID string) ([]models.Comment, error)
	Update(db *gorm.DB, comment *models.Comment) error
	Delete(db *gorm.DB, id string) error
	DeleteByUser(db *gorm.DB, userID string) error
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	err := db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) FindByAnswer(db *gorm.DB, answerID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := db.Preload("User").Where("answer_id = ?", answerID).
		Order("created_at asc").Find(&comments).Error
	return comments, err
}

func (r *CommentRepositoryImpl) Update(db *gorm.DB, comment *models.Comment) error {
	return db.Save(comment).Error
}

func (r *CommentRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&models.Comment{}).Error
}

func (r *CommentRepositoryImpl) DeleteByUser(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Comment{}).Error
}
