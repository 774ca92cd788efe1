package services

import (
	"errors"

	"gorm.io/gorm"

	"askpro_backend/internal/auth"
	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"
)

// ReviewService - оценки профессионалов. Пара (reviewer, reviewee)
// уникальна: повторная отправка перезаписывает прежний отзыв.
// Средний рейтинг считается на чтении.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	userRepo   repositories.UserRepository
	notifier   *Notifier
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	notifier *Notifier,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

func (s *ReviewService) SubmitReview(db *gorm.DB, reviewerID, revieweeID string, req *dto.SubmitReviewRequest) (*models.Review, error) {
	if reviewerID == revieweeID {
		return nil, apperrors.ErrInvalidOperation("review", "You cannot review yourself")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewBadRequestError("Rating must be between 1 and 5")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	reviewee, err := s.userRepo.FindByID(tx, revieweeID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.IsReviewable(reviewee.Role) {
		return nil, apperrors.ErrInvalidOperation("review", "Only professionals can be reviewed")
	}

	reviewer, err := s.userRepo.FindByID(tx, reviewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	review, err := s.reviewRepo.FindByPair(tx, reviewerID, revieweeID)
	isNew := false
	switch {
	case err == nil:
		review.Rating = req.Rating
		review.Comment = req.Comment
		review.QuestionID = req.QuestionID
		if err := s.reviewRepo.Update(tx, review); err != nil {
			return nil, apperrors.InternalError(err)
		}
	case errors.Is(err, repositories.ErrReviewNotFound):
		isNew = true
		review = &models.Review{
			UserID:     revieweeID,
			ReviewerID: reviewerID,
			QuestionID: req.QuestionID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		}
		if err := s.reviewRepo.Create(tx, review); err != nil {
			return nil, apperrors.InternalError(err)
		}
	default:
		return nil, apperrors.InternalError(err)
	}

	// Уведомляем только о новом отзыве: правка старого не событие
	if isNew {
		event := ReviewReceivedEvent{Review: review, ReviewerName: reviewer.Username}
		if err := s.notifier.Emit(tx, s.userRepo, event); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return review, nil
}

func (s *ReviewService) GetUserReviews(db *gorm.DB, userID string) (*dto.UserReviewsResponse, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	reviews, err := s.reviewRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	average, total, err := s.reviewRepo.AverageRating(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserReviewsResponse{
		Reviews:       reviews,
		AverageRating: average,
		Total:         total,
	}, nil
}
