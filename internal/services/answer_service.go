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

type AnswerService struct {
	answerRepo   repositories.AnswerRepository
	questionRepo repositories.QuestionRepository
	userRepo     repositories.UserRepository
	profileRepo  repositories.ProfileRepository
	notifier     *Notifier
}

func NewAnswerService(
	answerRepo repositories.AnswerRepository,
	questionRepo repositories.QuestionRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notifier *Notifier,
) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		notifier:     notifier,
	}
}

// CreateAnswer - одна транзакция: проверка права, вставка ответа,
// переход вопроса open -> answered (только для первого ответа),
// уведомление автора вопроса.
//
// Право отвечать: роль power или admin с сертификацией хотя бы
// в одном теге вопроса. Ответ на собственный вопрос допустим,
// уведомление самому себе при этом не создается.
func (s *AnswerService) CreateAnswer(db *gorm.DB, userID string, role models.UserRole, req *dto.CreateAnswerRequest) (*models.Answer, error) {
	if !auth.CanAnswer(role) {
		return nil, apperrors.NewForbiddenError("Only professionals can answer questions")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	question, err := s.questionRepo.FindByID(tx, req.QuestionID)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrNotFound(err, "question", "Question not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if question.Status == models.QuestionStatusClosed {
		return nil, apperrors.NewForbiddenError("Question is closed")
	}

	certified, err := s.isCertifiedForQuestion(tx, userID, question)
	if err != nil {
		return nil, err
	}
	if !certified {
		return nil, apperrors.NewForbiddenError("You are not certified in any of this question's tags")
	}

	answer := &models.Answer{
		QuestionID: question.ID,
		UserID:     userID,
		Content:    req.Content,
	}
	if err := s.answerRepo.Create(tx, answer); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if question.Status.CanTransitionTo(models.QuestionStatusAnswered) {
		question.Status = models.QuestionStatusAnswered
		if err := s.questionRepo.Update(tx, question); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	author, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	event := AnswerCreatedEvent{Question: question, Answer: answer, Author: author}
	if err := s.notifier.Emit(tx, s.userRepo, event); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return answer, nil
}

func (s *AnswerService) GetAnswer(db *gorm.DB, id string) (*models.Answer, error) {
	answer, err := s.answerRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnswerNotFound) {
			return nil, apperrors.ErrNotFound(err, "answer", "Answer not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return answer, nil
}

func (s *AnswerService) ListByQuestion(db *gorm.DB, questionID string) ([]models.Answer, error) {
	if _, err := s.questionRepo.FindByID(db, questionID); err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrNotFound(err, "question", "Question not found")
		}
		return nil, apperrors.InternalError(err)
	}
	answers, err := s.answerRepo.FindByQuestion(db, questionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return answers, nil
}

// AcceptAnswer - принятие ответа автором вопроса. Одна транзакция:
// сброс прежнего принятого ответа, установка нового, переход вопроса
// в closed, уведомление автора ответа. В любой момент принят максимум
// один ответ на вопрос.
func (s *AnswerService) AcceptAnswer(db *gorm.DB, answerID, requesterID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	answer, err := s.answerRepo.FindByID(tx, answerID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnswerNotFound) {
			return apperrors.ErrNotFound(err, "answer", "Answer not found")
		}
		return apperrors.InternalError(err)
	}

	question, err := s.questionRepo.FindByID(tx, answer.QuestionID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if question.UserID != requesterID {
		return apperrors.NewForbiddenError("Only the question author can accept an answer")
	}
	if answer.IsAccepted {
		return apperrors.ErrInvalidStatus("answer", "Answer is already accepted")
	}

	if err := s.answerRepo.ClearAccepted(tx, question.ID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.answerRepo.SetAccepted(tx, answerID); err != nil {
		return apperrors.InternalError(err)
	}

	if question.Status.CanTransitionTo(models.QuestionStatusClosed) {
		question.Status = models.QuestionStatusClosed
		if err := s.questionRepo.Update(tx, question); err != nil {
			return apperrors.InternalError(err)
		}
	}

	event := AnswerAcceptedEvent{Question: question, Answer: answer}
	if err := s.notifier.Emit(tx, s.userRepo, event); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}

func (s *AnswerService) isCertifiedForQuestion(db *gorm.DB, userID string, question *models.Question) (bool, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}
	for _, questionTag := range question.Tags {
		has, err := s.profileRepo.HasTag(db, profile.ID, questionTag.ID)
		if err != nil {
			return false, apperrors.InternalError(err)
		}
		if has {
			return true, nil
		}
	}
	return false, nil
}
