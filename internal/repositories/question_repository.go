package repositories

import (
	"errors"
	"strings"

	"askpro_backend/internal/models"

	"gorm.io/gorm"
)

var ErrQuestionNotFound = errors.New("question not found")

// QuestionCriteria - фильтры списка вопросов
type QuestionCriteria struct {
	Search   string
	TagIDs   []string
	Status   models.QuestionStatus
	UserID   string
	Page     int
	PageSize int
}

type QuestionRepository interface {
	Create(db *gorm.DB, question *models.Question) error
	FindByID(db *gorm.DB, id string) (*models.Question, error)
	FindByIDWithDetails(db *gorm.DB, id string) (*models.Question, error)
	FindWithCriteria(db *gorm.DB, criteria QuestionCriteria) ([]models.Question, int64, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Question, error)
	Update(db *gorm.DB, question *models.Question) error
	ReplaceTags(db *gorm.DB, question *models.Question, tags []models.Tag) error
	Delete(db *gorm.DB, id string) error
}

type QuestionRepositoryImpl struct{}

func NewQuestionRepository() QuestionRepository {
	return &QuestionRepositoryImpl{}
}

func (r *QuestionRepositoryImpl) Create(db *gorm.DB, question *models.Question) error {
	return db.Create(question).Error
}

func (r *QuestionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Question, error) {
	var question models.Question
	err := db.Preload("Tags").Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepositoryImpl) FindByIDWithDetails(db *gorm.DB, id string) (*models.Question, error) {
	var question models.Question
	err := db.Preload("Tags").
		Preload("User").
		Preload("Answers").
		Preload("Answers.User").
		Preload("Answers.Comments").
		Preload("Answers.Comments.User").
		Preload("Attachments").
		Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepositoryImpl) FindWithCriteria(db *gorm.DB, criteria QuestionCriteria) ([]models.Question, int64, error) {
	query := db.Model(&models.Question{})

	if criteria.Search != "" {
		pattern := "%" + strings.ToLower(criteria.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if len(criteria.TagIDs) > 0 {
		query = query.Where("id IN (?)",
			db.Table("question_tags").Select("question_id").Where("tag_id IN ?", criteria.TagIDs))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var questions []models.Question
	err := query.Preload("Tags").Preload("User").
		Order("created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&questions).Error
	return questions, total, err
}

func (r *QuestionRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Question, error) {
	var questions []models.Question
	err := db.Where("user_id = ?", userID).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepositoryImpl) Update(db *gorm.DB, question *models.Question) error {
	return db.Save(question).Error
}

func (r *QuestionRepositoryImpl) ReplaceTags(db *gorm.DB, question *models.Question, tags []models.Tag) error {
	return db.Model(question).Association("Tags").Replace(tags)
}

// Delete удаляет вопрос со всеми зависимостями: комментарии под
// ответами, ответы, вложения, связи с тегами. Вызывается внутри
// транзакции сервиса.
func (r *QuestionRepositoryImpl) Delete(db *gorm.DB, id string) error {
	var question models.Question
	if err := db.Where("id = ?", id).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	if err := db.Where("question_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := db.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
		return err
	}
	if err := db.Where("question_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	if err := db.Model(&question).Association("Tags").Clear(); err != nil {
		return err
	}
	return db.Delete(&question).Error
}
