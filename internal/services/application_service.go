package services

import (
	"context"
	"errors"
	"io"
	"time"

	"gorm.io/gorm"

	"askpro_backend/internal/auth"
	"askpro_backend/internal/config"
	"askpro_backend/internal/email"
	"askpro_backend/internal/logger"
	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/services/dto"
	"askpro_backend/internal/storage"
	"askpro_backend/pkg/apperrors"
)

// ApplicationService - сертификация профессионалов. Заявка с
// подтверждающим документом (PDF) рассматривается админом ровно
// один раз: pending -> approved | rejected.
type ApplicationService struct {
	applicationRepo repositories.ApplicationRepository
	tagRepo         repositories.TagRepository
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
	notifier        *Notifier
	storage         storage.Storage
	email           email.Provider
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	tagRepo repositories.TagRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	notifier *Notifier,
	fileStorage storage.Storage,
	emailProvider email.Provider,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		tagRepo:         tagRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		notifier:        notifier,
		storage:         fileStorage,
		email:           emailProvider,
	}
}

// Submit подает заявку на сертификацию в теге. Дубликаты отсекаются
// дважды: по уже существующей pending-заявке и по уже выданной
// сертификации.
func (s *ApplicationService) Submit(ctx context.Context, db *gorm.DB, userID string, role models.UserRole, tagID, filename, contentType string, size int64, reader io.Reader) (*models.TagApplication, error) {
	if !auth.CanApplyForTag(role) {
		return nil, apperrors.NewForbiddenError("Only professionals can apply for tag certification")
	}

	cfg := config.GetConfig()
	if contentType != models.MimePDF {
		return nil, apperrors.NewBadRequestError("Certification document must be a PDF")
	}
	if size > cfg.Upload.MaxDocumentSize {
		return nil, apperrors.ErrLimitExceeded("application", "Document exceeds the maximum allowed size")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.tagRepo.FindByID(tx, tagID); err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			return nil, apperrors.ErrNotFound(err, "tag", "Tag not found")
		}
		return nil, apperrors.InternalError(err)
	}

	pending, err := s.applicationRepo.HasPending(tx, userID, tagID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if pending {
		return nil, apperrors.ErrInvalidOperation("application", "You already have a pending application for this tag")
	}

	certified, err := s.isCertified(tx, userID, tagID)
	if err != nil {
		return nil, err
	}
	if certified {
		return nil, apperrors.ErrInvalidOperation("application", "You are already certified in this tag")
	}

	objectName := "documents/" + storage.BuildObjectName(userID, filename)
	if err := s.storage.Save(ctx, objectName, reader, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	application := &models.TagApplication{
		UserID:       userID,
		TagID:        tagID,
		DocumentPath: objectName,
		Status:       models.ApplicationStatusPending,
	}
	if err := s.applicationRepo.Create(tx, application); err != nil {
		s.cleanupFile(ctx, objectName)
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.cleanupFile(ctx, objectName)
		return nil, apperrors.InternalError(err)
	}
	return application, nil
}

func (s *ApplicationService) ListMine(db *gorm.DB, userID string) ([]models.TagApplication, error) {
	applications, err := s.applicationRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applications, nil
}

func (s *ApplicationService) ListAll(db *gorm.DB, status models.ApplicationStatus) ([]models.TagApplication, error) {
	if status != "" && !status.Valid() {
		return nil, apperrors.NewBadRequestError("Unknown application status")
	}
	applications, err := s.applicationRepo.FindAll(db, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return applications, nil
}

// Review выносит вердикт по заявке. Повторное рассмотрение невозможно:
// заявка в терминальном статусе отклоняется как невалидная операция.
// Одобрение выдает сертификацию: профиль создается при необходимости,
// тег добавляется в его список, профиль помечается verified.
func (s *ApplicationService) Review(db *gorm.DB, applicationID, adminID string, adminRole models.UserRole, req *dto.ReviewApplicationRequest) (*models.TagApplication, error) {
	if !auth.CanModerate(adminRole) {
		return nil, apperrors.NewForbiddenError("Reviewing applications requires the admin role")
	}

	verdict := models.ApplicationStatus(req.Status)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	application, err := s.applicationRepo.FindByID(tx, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrNotFound(err, "application", "Application not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if !application.Status.CanReview(verdict) {
		return nil, apperrors.ErrInvalidStatus("application", "Application has already been reviewed")
	}

	now := time.Now()
	application.Status = verdict
	application.ReviewedAt = &now
	application.ReviewedBy = adminID
	application.Notes = req.Notes

	if err := s.applicationRepo.Update(tx, application); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if verdict == models.ApplicationStatusApproved {
		if err := s.grantCertification(tx, application); err != nil {
			return nil, err
		}
	}

	tagName := application.TagID
	if application.Tag != nil {
		tagName = application.Tag.Name
	}
	event := ApplicationReviewedEvent{Application: application, TagName: tagName}
	if err := s.notifier.Emit(tx, s.userRepo, event); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.email != nil && application.User != nil {
		body := email.ApplicationOutcomeBody(tagName, string(verdict))
		if err := s.email.Send(application.User.Email, email.ApplicationOutcomeSubject(), body); err != nil {
			logger.WithError(err).Warn("failed to send application outcome email", "user_id", application.UserID)
		}
	}
	return application, nil
}

// DownloadDocument отдает документ заявки. Доступ: заявитель и админ.
func (s *ApplicationService) DownloadDocument(ctx context.Context, db *gorm.DB, applicationID, requesterID string, requesterRole models.UserRole) (*models.TagApplication, io.ReadCloser, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, nil, apperrors.ErrNotFound(err, "application", "Application not found")
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if application.UserID != requesterID && !auth.CanModerate(requesterRole) {
		return nil, nil, apperrors.NewForbiddenError("Only the applicant or an admin can view the document")
	}

	reader, err := s.storage.Get(ctx, application.DocumentPath)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return application, reader, nil
}

func (s *ApplicationService) grantCertification(tx *gorm.DB, application *models.TagApplication) error {
	profile, err := s.profileRepo.FindByUserID(tx, application.UserID)
	if err != nil {
		if !errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.InternalError(err)
		}
		profile = &models.ProfessionalProfile{UserID: application.UserID}
		if err := s.profileRepo.Create(tx, profile); err != nil {
			return apperrors.InternalError(err)
		}
	}

	has, err := s.profileRepo.HasTag(tx, profile.ID, application.TagID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !has {
		tag, err := s.tagRepo.FindByID(tx, application.TagID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.profileRepo.AddTag(tx, profile, tag); err != nil {
			return apperrors.InternalError(err)
		}
	}

	if profile.VerificationStatus != models.VerificationStatusVerified {
		profile.VerificationStatus = models.VerificationStatusVerified
		if err := s.profileRepo.Update(tx, profile); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *ApplicationService) isCertified(db *gorm.DB, userID, tagID string) (bool, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return false, nil
		}
		return false, apperrors.InternalError(err)
	}
	has, err := s.profileRepo.HasTag(db, profile.ID, tagID)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return has, nil
}

func (s *ApplicationService) cleanupFile(ctx context.Context, path string) {
	if err := s.storage.Delete(ctx, path); err != nil {
		logger.WithError(err).Warn("failed to delete stored file", "path", path)
	}
}
