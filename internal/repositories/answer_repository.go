package repositories

import (
	"errors"

	"askpro_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAnswerNotFound = errors.New("answer not found")

type AnswerRepository interface {
	Create(db *gorm.DB, answer *models.Answer) error
	FindByID(db *gorm.DB, id string) (*models.Answer, error)
	FindByQuestion(db *gorm.DB, questionID string) ([]models.Answer, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Answer, error)
	Update(db *gorm.DB, answer *models.Answer) error
	ClearAccepted(db *gorm.DB, questionID string) error
	SetAccepted(db *gorm.DB, answerID string) error
	CountAccepted(db *gorm.DB, questionID string) (int64, error)
	DeleteByUser(db *gorm.DB, userID string) error
}

type AnswerRepositoryImpl struct{}

func NewAnswerRepository() AnswerRepository {
	return &AnswerRepositoryImpl{}
}

func (r *AnswerRepositoryImpl) Create(db *gorm.DB, answer *models.Answer) error {
	return db.Create(answer).Error
}

func (r *AnswerRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Answer, error) {
	var answer models.Answer
	err := db.Preload("User").Where("id = ?", id).First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepositoryImpl) FindByQuestion(db *gorm.DB, questionID string) ([]models.Answer, error) {
	var answers []models.Answer
	err := db.Preload("User").Where("question_id = ?", questionID).
		Order("created_at asc").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Answer, error) {
	var answers []models.Answer
	err := db.Where("user_id = ?", userID).Find(&answers).Error
	return answers, err
}

func (r *AnswerRepositoryImpl) Update(db *gorm.DB, answer *models.Answer) error {
	return db.Save(answer).Error
}

func (r *AnswerRepositoryImpl) ClearAccepted(db *gorm.DB, questionID string) error {
	return db.Model(&models.Answer{}).
		Where("question_id = ? AND is_accepted = ?", questionID, true).
		Update("is_accepted", false).Error
}

func (r *AnswerRepositoryImpl) SetAccepted(db *gorm.DB, answerID string) error {
	return db.Model(&models.Answer{}).
		Where("id = ?", answerID).
		Update("is_accepted", true).Error
}

func (r *AnswerRepositoryImpl) CountAccepted(db *gorm.DB, questionID string) (int64, error) {
	var count int64
	err := db.Model(&models.Answer{}).
		Where("question_id = ? AND is_accepted = ?", questionID, true).
		Count(&count).Error
	return count, err
}

func (r *AnswerRepositoryImpl) DeleteByUser(db *gorm.DB, userID string) error {
	var answers []models.Answer
	if err := db.Where("user_id = ?", userID).Find(&answers).Error; err != nil {
		return err
	}
	for _, answer := range answers {
		if err := db.Where("answer_id = ?", answer.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
	}
	return db.Where("user_id = ?", userID).Delete(&models.Answer{}).Error
}
