package repositories

import (
	"errors"

	"askpro_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	Update(db *gorm.DB, review *models.Review) error
	FindByPair(db *gorm.DB, reviewerID, userID string) (*models.Review, error)
	FindByUser(db *gorm.DB, userID string) ([]models.Review, error)
	AverageRating(db *gorm.DB, userID string) (float64, int64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) Update(db *gorm.DB, review *models.Review) error {
	return db.Save(review).Error
}

func (r *ReviewRepositoryImpl) FindByPair(db *gorm.DB, reviewerID, userID string) (*models.Review, error) {
	var review models.Review
	err := db.Where("reviewer_id = ? AND user_id = ?", reviewerID, userID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Preload("Reviewer").Where("user_id = ?", userID).
		Order("created_at desc").Find(&reviews).Error
	return reviews, err
}

// AverageRating - среднее арифметическое по всем отзывам пользователя.
// Считается на чтении, не кэшируется.
func (r *ReviewRepositoryImpl) AverageRating(db *gorm.DB, userID string) (float64, int64, error) {
	var count int64
	if err := db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}

	var avg float64
	err := db.Model(&models.Review{}).Where("user_id = ?", userID).
		Select("AVG(rating)").Scan(&avg).Error
	return avg, count, err
}
