package services

import (
	"context"
	"errors"
	"io"

	"gorm.io/gorm"

	"askpro_backend/internal/auth"
	"askpro_backend/internal/config"
	"askpro_backend/internal/logger"
	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/storage"
	"askpro_backend/pkg/apperrors"
)

// AttachmentService - файлы вопроса. Файл пишется в хранилище до
// коммита строки; при сбое коммита делается best-effort удаление.
// Осиротевший файл на диске безопаснее строки без файла.
type AttachmentService struct {
	attachmentRepo repositories.AttachmentRepository
	questionRepo   repositories.QuestionRepository
	storage        storage.Storage
}

func NewAttachmentService(
	attachmentRepo repositories.AttachmentRepository,
	questionRepo repositories.QuestionRepository,
	fileStorage storage.Storage,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		questionRepo:   questionRepo,
		storage:        fileStorage,
	}
}

func (s *AttachmentService) Upload(ctx context.Context, db *gorm.DB, questionID, userID, filename, contentType string, size int64, reader io.Reader) (*models.Attachment, error) {
	cfg := config.GetConfig()

	if contentType != models.MimePDF && contentType != models.MimePNG {
		return nil, apperrors.NewBadRequestError("Only PDF and PNG attachments are allowed")
	}
	if size > cfg.Upload.MaxAttachmentSize {
		return nil, apperrors.ErrLimitExceeded("attachment", "Attachment exceeds the maximum allowed size")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	question, err := s.questionRepo.FindByID(tx, questionID)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrNotFound(err, "question", "Question not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if question.UserID != userID {
		return nil, apperrors.NewForbiddenError("Only the question author can attach files")
	}

	count, err := s.attachmentRepo.CountByQuestion(tx, questionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if count >= int64(cfg.Upload.MaxPerQuestion) {
		return nil, apperrors.ErrLimitExceeded("attachment", "Question already has the maximum number of attachments")
	}

	objectName := "attachments/" + storage.BuildObjectName(userID, filename)
	if err := s.storage.Save(ctx, objectName, reader, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	attachment := &models.Attachment{
		QuestionID: questionID,
		UserID:     userID,
		Filename:   storage.SanitizeFilename(filename),
		MimeType:   contentType,
		Size:       size,
		Path:       objectName,
	}
	if err := s.attachmentRepo.Create(tx, attachment); err != nil {
		s.cleanupFile(ctx, objectName)
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.cleanupFile(ctx, objectName)
		return nil, apperrors.InternalError(err)
	}
	return attachment, nil
}

func (s *AttachmentService) ListByQuestion(db *gorm.DB, questionID string) ([]models.Attachment, error) {
	if _, err := s.questionRepo.FindByID(db, questionID); err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrNotFound(err, "question", "Question not found")
		}
		return nil, apperrors.InternalError(err)
	}
	attachments, err := s.attachmentRepo.FindByQuestion(db, questionID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return attachments, nil
}

// Download возвращает поток файла вместе с метаданными.
// Закрытие потока - обязанность вызывающего.
func (s *AttachmentService) Download(ctx context.Context, db *gorm.DB, id string) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.attachmentRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAttachmentNotFound) {
			return nil, nil, apperrors.ErrNotFound(err, "attachment", "Attachment not found")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	reader, err := s.storage.Get(ctx, attachment.Path)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return attachment, reader, nil
}

func (s *AttachmentService) Delete(ctx context.Context, db *gorm.DB, id, requesterID string, requesterRole models.UserRole) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	attachment, err := s.attachmentRepo.FindByID(tx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAttachmentNotFound) {
			return apperrors.ErrNotFound(err, "attachment", "Attachment not found")
		}
		return apperrors.InternalError(err)
	}

	if attachment.UserID != requesterID && !auth.CanModerate(requesterRole) {
		return apperrors.NewForbiddenError("Only the uploader or an admin can delete an attachment")
	}

	if err := s.attachmentRepo.Delete(tx, id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	s.cleanupFile(ctx, attachment.Path)
	return nil
}

func (s *AttachmentService) cleanupFile(ctx context.Context, path string) {
	if err := s.storage.Delete(ctx, path); err != nil {
		logger.WithError(err).Warn("failed to delete stored file", "path", path)
	}
}
