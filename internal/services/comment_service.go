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

// CommentService - обсуждение под ответом. Закрытый клуб на двоих:
// автор вопроса и автор ответа.
type CommentService struct {
	commentRepo  repositories.CommentRepository
	answerRepo   repositories.AnswerRepository
	questionRepo repositories.QuestionRepository
	userRepo     repositories.UserRepository
	notifier     *Notifier
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	answerRepo repositories.AnswerRepository,
	questionRepo repositories.QuestionRepository,
	userRepo repositories.UserRepository,
	notifier *Notifier,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		notifier:     notifier,
	}
}

func (s *CommentService) CreateComment(db *gorm.DB, userID string, req *dto.CreateCommentRequest) (*models.Comment, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	answer, err := s.answerRepo.FindByID(tx, req.AnswerID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnswerNotFound) {
			return nil, apperrors.ErrNotFound(err, "answer", "Answer not found")
		}
		return nil, apperrors.InternalError(err)
	}

	question, err := s.questionRepo.FindByID(tx, answer.QuestionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if question.Status == models.QuestionStatusClosed {
		return nil, apperrors.NewForbiddenError("Discussion is closed along with the question")
	}
	if userID != question.UserID && userID != answer.UserID {
		return nil, apperrors.NewForbiddenError("Only the question author and the answer author can comment")
	}

	comment := &models.Comment{
		AnswerID:   answer.ID,
		QuestionID: question.ID,
		UserID:     userID,
		Content:    req.Content,
	}
	if err := s.commentRepo.Create(tx, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	author, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	event := CommentCreatedEvent{Question: question, Answer: answer, Comment: comment, Author: author}
	if err := s.notifier.Emit(tx, s.userRepo, event); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comment, nil
}

func (s *CommentService) ListByAnswer(db *gorm.DB, answerID string) ([]models.Comment, error) {
	if _, err := s.answerRepo.FindByID(db, answerID); err != nil {
		if errors.Is(err, repositories.ErrAnswerNotFound) {
			return nil, apperrors.ErrNotFound(err, "answer", "Answer not found")
		}
		return nil, apperrors.InternalError(err)
	}
	comments, err := s.commentRepo.FindByAnswer(db, answerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comments, nil
}

func (s *CommentService) UpdateComment(db *gorm.DB, id, requesterID string, req *dto.UpdateCommentRequest) (*models.Comment, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	comment, err := s.commentRepo.FindByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return nil, apperrors.ErrNotFound(err, "comment", "Comment not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if comment.UserID != requesterID {
		return nil, apperrors.NewForbiddenError("Only the author can edit a comment")
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(tx, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(db *gorm.DB, id, requesterID string, requesterRole models.UserRole) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	comment, err := s.commentRepo.FindByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrNotFound(err, "comment", "Comment not found")
		}
		return apperrors.InternalError(err)
	}

	if comment.UserID != requesterID && !auth.CanModerate(requesterRole) {
		return apperrors.NewForbiddenError("Only the author or an admin can delete a comment")
	}

	if err := s.commentRepo.Delete(tx, id); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}
