package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"askpro_backend/internal/auth"
	"askpro_backend/internal/logger"
	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/services/dto"
	"askpro_backend/internal/storage"
	"askpro_backend/pkg/apperrors"
)

type QuestionService struct {
	questionRepo   repositories.QuestionRepository
	tagRepo        repositories.TagRepository
	userRepo       repositories.UserRepository
	attachmentRepo repositories.AttachmentRepository
	notifier       *Notifier
	storage        storage.Storage
}

func NewQuestionService(
	questionRepo repositories.QuestionRepository,
	tagRepo repositories.TagRepository,
	userRepo repositories.UserRepository,
	attachmentRepo repositories.AttachmentRepository,
	notifier *Notifier,
	fileStorage storage.Storage,
) *QuestionService {
	return &QuestionService{
		questionRepo:   questionRepo,
		tagRepo:        tagRepo,
		userRepo:       userRepo,
		attachmentRepo: attachmentRepo,
		notifier:       notifier,
		storage:        fileStorage,
	}
}

func (s *QuestionService) CreateQuestion(db *gorm.DB, userID string, req *dto.CreateQuestionRequest) (*models.Question, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	tags, err := s.resolveTags(tx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
		Status:  models.QuestionStatusOpen,
		Tags:    tags,
	}
	if err := s.questionRepo.Create(tx, question); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return question, nil
}

func (s *QuestionService) GetQuestion(db *gorm.DB, id string) (*models.Question, error) {
	question, err := s.questionRepo.FindByIDWithDetails(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrNotFound(err, "question", "Question not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return question, nil
}

func (s *QuestionService) ListQuestions(db *gorm.DB, criteria repositories.QuestionCriteria) (*dto.QuestionListResponse, error) {
	questions, total, err := s.questionRepo.FindWithCriteria(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalPages := int(total) / criteria.PageSize
	if int(total)%criteria.PageSize != 0 {
		totalPages++
	}
	return &dto.QuestionListResponse{
		Questions:  questions,
		Total:      total,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateQuestion - владелец правит текст и теги; смена статуса
// разрешена только админу и не обязана следовать естественному
// жизненному циклу (это ручной override модератора).
func (s *QuestionService) UpdateQuestion(db *gorm.DB, id, requesterID string, requesterRole models.UserRole, req *dto.UpdateQuestionRequest) (*models.Question, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	question, err := s.questionRepo.FindByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrNotFound(err, "question", "Question not found")
		}
		return nil, apperrors.InternalError(err)
	}

	isOwner := question.UserID == requesterID
	isAdmin := auth.CanModerate(requesterRole)
	if !isOwner && !isAdmin {
		return nil, apperrors.NewForbiddenError("Only the author or an admin can edit a question")
	}

	if req.Title != nil {
		question.Title = *req.Title
	}
	if req.Content != nil {
		question.Content = *req.Content
	}
	if req.Status != nil {
		if !isAdmin {
			return nil, apperrors.NewForbiddenError("Only admins can change question status directly")
		}
		next := models.QuestionStatus(*req.Status)
		if !next.Valid() {
			return nil, apperrors.ErrInvalidStatus("question", "Unknown question status")
		}
		question.Status = next
	}

	if err := s.questionRepo.Update(tx, question); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.TagIDs != nil {
		tags, err := s.resolveTags(tx, req.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.questionRepo.ReplaceTags(tx, question, tags); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetQuestion(db, id)
}

// DeleteQuestion удаляет вопрос со всем деревом (ответы, комментарии,
// вложения). Удаление - только модераторское; автору вопрос удалить
// нельзя. Автор получает системное уведомление с причиной.
func (s *QuestionService) DeleteQuestion(ctx context.Context, db *gorm.DB, id, requesterID string, requesterRole models.UserRole, reason string) error {
	if !auth.CanModerate(requesterRole) {
		return apperrors.NewForbiddenError("Deleting questions requires the admin role")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	question, err := s.questionRepo.FindByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return apperrors.ErrNotFound(err, "question", "Question not found")
		}
		return apperrors.InternalError(err)
	}

	attachments, err := s.attachmentRepo.FindByQuestion(tx, id)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.questionRepo.Delete(tx, id); err != nil {
		return apperrors.InternalError(err)
	}

	if question.UserID != requesterID {
		event := QuestionDeletedEvent{OwnerID: question.UserID, Title: question.Title, Reason: reason}
		if err := s.notifier.Emit(tx, s.userRepo, event); err != nil {
			return apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	// Файлы чистим после коммита: оставшийся на диске файл безвреден,
	// а вот битая ссылка в базе - нет.
	for _, attachment := range attachments {
		if err := s.storage.Delete(ctx, attachment.Path); err != nil {
			logger.WithError(err).Warn("failed to delete attachment file", "path", attachment.Path)
		}
	}
	return nil
}

func (s *QuestionService) resolveTags(db *gorm.DB, tagIDs []string) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, apperrors.NewBadRequestError("A question needs at least one tag")
	}
	tags, err := s.tagRepo.FindByIDs(db, tagIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(tags) != len(tagIDs) {
		return nil, apperrors.NewBadRequestError("One or more tags do not exist")
	}
	return tags, nil
}
