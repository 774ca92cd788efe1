package services

import (
	"context"
	"errors"
	"io"

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

// Допустимые цели жалобы
const (
	ReportTargetQuestion = "question"
	ReportTargetAnswer   = "answer"
	ReportTargetComment  = "comment"
	ReportTargetUser     = "user"
)

type UserService struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	questionRepo     repositories.QuestionRepository
	answerRepo       repositories.AnswerRepository
	commentRepo      repositories.CommentRepository
	notificationRepo repositories.NotificationRepository
	notifier         *Notifier
	storage          storage.Storage
	email            email.Provider
}

func NewUserService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	questionRepo repositories.QuestionRepository,
	answerRepo repositories.AnswerRepository,
	commentRepo repositories.CommentRepository,
	notificationRepo repositories.NotificationRepository,
	notifier *Notifier,
	fileStorage storage.Storage,
	emailProvider email.Provider,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		questionRepo:     questionRepo,
		answerRepo:       answerRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		storage:          fileStorage,
		email:            emailProvider,
	}
}

func (s *UserService) GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// UpdateProfile обновляет общие поля пользователя; рабочие поля
// (workplace, education) принадлежат профессиональному профилю
// и доступны только роли power.
func (s *UserService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.findUser(tx, userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	if err := s.userRepo.Update(tx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.Workplace != nil || req.Education != nil {
		if user.Role != models.UserRolePower {
			return nil, apperrors.NewForbiddenError("Only professionals have a professional profile")
		}
		profile, err := s.ensureProfile(tx, userID)
		if err != nil {
			return nil, err
		}
		if req.Workplace != nil {
			profile.Workplace = *req.Workplace
		}
		if req.Education != nil {
			profile.Education = *req.Education
		}
		if err := s.profileRepo.Update(tx, profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetUser(db, userID)
}

func (s *UserService) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.findUser(tx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.NewForbiddenError("Current password is incorrect")
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash

	if err := s.userRepo.Update(tx, user); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}

// UploadAvatar сохраняет файл аватара и записывает его публичный URL
// в профиль. Старый файл не удаляется: URL мог быть внешним.
func (s *UserService) UploadAvatar(ctx context.Context, db *gorm.DB, userID, filename, contentType string, size int64, reader io.Reader) (*dto.UserResponse, error) {
	cfg := config.GetConfig()
	if size > cfg.Upload.MaxAvatarSize {
		return nil, apperrors.ErrLimitExceeded("user", "Avatar exceeds the maximum allowed size")
	}
	if contentType != models.MimePNG && contentType != "image/jpeg" {
		return nil, apperrors.NewBadRequestError("Avatar must be a PNG or JPEG image")
	}

	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}

	objectName := "avatars/" + storage.BuildObjectName(userID, filename)
	if err := s.storage.Save(ctx, objectName, reader, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, objectName)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.ProfileImage = url
	if err := s.userRepo.Update(db, user); err != nil {
		if delErr := s.storage.Delete(ctx, objectName); delErr != nil {
			logger.WithError(delErr).Warn("failed to clean up avatar after db error", "path", objectName)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// ---------------- Moderation ----------------

func (s *UserService) BanUser(db *gorm.DB, adminRole models.UserRole, userID, reason string) error {
	if !auth.CanModerate(adminRole) {
		return apperrors.NewForbiddenError("Moderation requires the admin role")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.findUser(tx, userID)
	if err != nil {
		return err
	}
	if auth.IsExemptFromModeration(user.Role) {
		return apperrors.NewForbiddenError("Administrators cannot be banned")
	}
	if user.Status == models.UserStatusBanned {
		return apperrors.ErrInvalidStatus("user", "User is already banned")
	}

	user.Status = models.UserStatusBanned
	user.BanReason = reason
	if err := s.userRepo.Update(tx, user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.notifier.Emit(tx, s.userRepo, UserBannedEvent{UserID: userID, Reason: reason}); err != nil {
		return apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	if s.email != nil {
		if err := s.email.Send(user.Email, email.BanSubject(), email.BanBody(reason)); err != nil {
			logger.WithError(err).Warn("failed to send ban email", "user_id", userID)
		}
	}
	return nil
}

func (s *UserService) UnbanUser(db *gorm.DB, adminRole models.UserRole, userID string) error {
	if !auth.CanModerate(adminRole) {
		return apperrors.NewForbiddenError("Moderation requires the admin role")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.findUser(tx, userID)
	if err != nil {
		return err
	}
	if user.Status != models.UserStatusBanned {
		return apperrors.ErrInvalidStatus("user", "User is not banned")
	}

	user.Status = models.UserStatusActive
	user.BanReason = ""
	if err := s.userRepo.Update(tx, user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.notifier.Emit(tx, s.userRepo, UserUnbannedEvent{UserID: userID}); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}

// DeleteUser удаляет пользователя со всем его контентом: вопросы
// (с ответами чужих людей под ними), ответы, комментарии, профиль,
// уведомления. Необратимо.
func (s *UserService) DeleteUser(db *gorm.DB, adminRole models.UserRole, userID string) error {
	if !auth.CanModerate(adminRole) {
		return apperrors.NewForbiddenError("Moderation requires the admin role")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.findUser(tx, userID)
	if err != nil {
		return err
	}
	if auth.IsExemptFromModeration(user.Role) {
		return apperrors.NewForbiddenError("Administrators cannot be deleted")
	}

	questions, err := s.questionRepo.FindByUser(tx, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	for _, question := range questions {
		if err := s.questionRepo.Delete(tx, question.ID); err != nil {
			return apperrors.InternalError(err)
		}
	}

	if err := s.commentRepo.DeleteByUser(tx, userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.answerRepo.DeleteByUser(tx, userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.profileRepo.Delete(tx, userID); err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.InternalError(err)
	}
	if err := s.notificationRepo.DeleteByUser(tx, userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(tx, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}

// Report рассылает жалобу всем админам. Отдельной сущности жалобы нет:
// модерация работает из ленты уведомлений.
func (s *UserService) Report(db *gorm.DB, reporterID, targetType, targetID, reason string) error {
	switch targetType {
	case ReportTargetQuestion, ReportTargetAnswer, ReportTargetComment, ReportTargetUser:
	default:
		return apperrors.NewBadRequestError("Unknown report target type")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.reportTargetExists(tx, targetType, targetID); err != nil {
		return err
	}

	reporter, err := s.findUser(tx, reporterID)
	if err != nil {
		return err
	}

	event := ContentReportedEvent{
		ReporterID:   reporterID,
		ReporterName: reporter.Username,
		TargetType:   targetType,
		TargetID:     targetID,
		Reason:       reason,
	}
	if err := s.notifier.Emit(tx, s.userRepo, event); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}

func (s *UserService) reportTargetExists(db *gorm.DB, targetType, targetID string) error {
	var err error
	switch targetType {
	case ReportTargetQuestion:
		_, err = s.questionRepo.FindByID(db, targetID)
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return apperrors.ErrNotFound(err, "question", "Question not found")
		}
	case ReportTargetAnswer:
		_, err = s.answerRepo.FindByID(db, targetID)
		if errors.Is(err, repositories.ErrAnswerNotFound) {
			return apperrors.ErrNotFound(err, "answer", "Answer not found")
		}
	case ReportTargetComment:
		_, err = s.commentRepo.FindByID(db, targetID)
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrNotFound(err, "comment", "Comment not found")
		}
	case ReportTargetUser:
		_, err = s.userRepo.FindByID(db, targetID)
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err, "user", "User not found")
		}
	}
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserService) findUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserService) ensureProfile(db *gorm.DB, userID string) (*models.ProfessionalProfile, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, apperrors.InternalError(err)
	}
	profile = &models.ProfessionalProfile{
		UserID:             userID,
		VerificationStatus: models.VerificationStatusUnverified,
	}
	if err := s.profileRepo.Create(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}
