package services

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"askpro_backend/internal/logger"
	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
)

// Event - доменное событие, которое раскладывается в набор уведомлений.
// Каждое событие само решает, кому и что доставить.
type Event interface {
	Notifications(tx *gorm.DB, repo NotificationRecipients) ([]*models.Notification, error)
}

// NotificationRecipients - минимальный доступ к пользователям,
// нужный событиям с рассылкой по группе (например, всем админам).
type NotificationRecipients interface {
	FindAdmins(db *gorm.DB) ([]models.User, error)
}

// Notifier пишет уведомления в той же транзакции, что и породившая
// их операция: либо фиксируется всё, либо ничего.
type Notifier struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotifier(notificationRepo repositories.NotificationRepository) *Notifier {
	return &Notifier{notificationRepo: notificationRepo}
}

func (n *Notifier) Emit(tx *gorm.DB, recipients NotificationRecipients, event Event) error {
	notifications, err := event.Notifications(tx, recipients)
	if err != nil {
		return err
	}
	for _, notification := range notifications {
		if notification.UserID == "" {
			continue
		}
		if err := n.notificationRepo.Create(tx, notification); err != nil {
			return err
		}
	}
	return nil
}

func payload(fields map[string]string) datatypes.JSON {
	raw, err := json.Marshal(fields)
	if err != nil {
		logger.WithError(err).Error("failed to marshal notification payload")
		return nil
	}
	return datatypes.JSON(raw)
}

// AnswerCreatedEvent - автор вопроса узнаёт о новом ответе.
type AnswerCreatedEvent struct {
	Question *models.Question
	Answer   *models.Answer
	Author   *models.User
}

func (e AnswerCreatedEvent) Notifications(_ *gorm.DB, _ NotificationRecipients) ([]*models.Notification, error) {
	if e.Question.UserID == e.Answer.UserID {
		return nil, nil
	}
	return []*models.Notification{{
		UserID:  e.Question.UserID,
		Type:    models.NotificationAnswer,
		Title:   "Новый ответ на ваш вопрос",
		Message: e.Author.Username + " ответил на вопрос «" + e.Question.Title + "»",
		Data: payload(map[string]string{
			"question_id": e.Question.ID,
			"answer_id":   e.Answer.ID,
		}),
	}}, nil
}

// AnswerAcceptedEvent - автор ответа узнаёт, что его ответ принят.
type AnswerAcceptedEvent struct {
	Question *models.Question
	Answer   *models.Answer
}

func (e AnswerAcceptedEvent) Notifications(_ *gorm.DB, _ NotificationRecipients) ([]*models.Notification, error) {
	if e.Answer.UserID == e.Question.UserID {
		return nil, nil
	}
	return []*models.Notification{{
		UserID:  e.Answer.UserID,
		Type:    models.NotificationAcceptance,
		Title:   "Ваш ответ принят",
		Message: "Автор вопроса «" + e.Question.Title + "» принял ваш ответ",
		Data: payload(map[string]string{
			"question_id": e.Question.ID,
			"answer_id":   e.Answer.ID,
		}),
	}}, nil
}

// CommentCreatedEvent - уведомляет вторую сторону обсуждения:
// комментарий автора вопроса летит автору ответа и наоборот.
type CommentCreatedEvent struct {
	Question *models.Question
	Answer   *models.Answer
	Comment  *models.Comment
	Author   *models.User
}

func (e CommentCreatedEvent) Notifications(_ *gorm.DB, _ NotificationRecipients) ([]*models.Notification, error) {
	recipient := e.Answer.UserID
	if e.Comment.UserID == e.Answer.UserID {
		recipient = e.Question.UserID
	}
	if recipient == e.Comment.UserID {
		return nil, nil
	}
	return []*models.Notification{{
		UserID:  recipient,
		Type:    models.NotificationComment,
		Title:   "Новый комментарий",
		Message: e.Author.Username + " оставил комментарий к вопросу «" + e.Question.Title + "»",
		Data: payload(map[string]string{
			"question_id": e.Question.ID,
			"answer_id":   e.Answer.ID,
			"comment_id":  e.Comment.ID,
		}),
	}}, nil
}

// ApplicationReviewedEvent - заявитель узнаёт вердикт по своей заявке.
type ApplicationReviewedEvent struct {
	Application *models.TagApplication
	TagName     string
}

func (e ApplicationReviewedEvent) Notifications(_ *gorm.DB, _ NotificationRecipients) ([]*models.Notification, error) {
	title := "Заявка отклонена"
	message := "Заявка на тег «" + e.TagName + "» отклонена"
	if e.Application.Status == models.ApplicationStatusApproved {
		title = "Заявка одобрена"
		message = "Заявка на тег «" + e.TagName + "» одобрена, теперь вы можете отвечать на вопросы по нему"
	}
	if e.Application.Notes != "" {
		message += ". Комментарий: " + e.Application.Notes
	}
	return []*models.Notification{{
		UserID:  e.Application.UserID,
		Type:    models.NotificationApplicationReviewed,
		Title:   title,
		Message: message,
		Data: payload(map[string]string{
			"application_id": e.Application.ID,
			"tag_id":         e.Application.TagID,
			"status":         string(e.Application.Status),
		}),
	}}, nil
}

// UserBannedEvent / UserUnbannedEvent - пользователь узнаёт о смене своего статуса.
type UserBannedEvent struct {
	UserID string
	Reason string
}

func (e UserBannedEvent) Notifications(_ *gorm.DB, _ NotificationRecipients) ([]*models.Notification, error) {
	return []*models.Notification{{
		UserID:  e.UserID,
		Type:    models.NotificationBan,
		Title:   "Аккаунт заблокирован",
		Message: "Ваш аккаунт заблокирован. Причина: " + e.Reason,
		Data:    payload(map[string]string{"reason": e.Reason}),
	}}, nil
}

type UserUnbannedEvent struct {
	UserID string
}

func (e UserUnbannedEvent) Notifications(_ *gorm.DB, _ NotificationRecipients) ([]*models.Notification, error) {
	return []*models.Notification{{
		UserID:  e.UserID,
		Type:    models.NotificationUnban,
		Title:   "Аккаунт разблокирован",
		Message: "Ваш аккаунт снова активен",
	}}, nil
}

// QuestionDeletedEvent - автор удалённого модератором вопроса узнаёт об этом.
type QuestionDeletedEvent struct {
	OwnerID string
	Title   string
	Reason  string
}

func (e QuestionDeletedEvent) Notifications(_ *gorm.DB, _ NotificationRecipients) ([]*models.Notification, error) {
	message := "Ваш вопрос «" + e.Title + "» удалён модератором"
	if e.Reason != "" {
		message += ". Причина: " + e.Reason
	}
	return []*models.Notification{{
		UserID:  e.OwnerID,
		Type:    models.NotificationQuestionDeleted,
		Title:   "Вопрос удалён",
		Message: message,
	}}, nil
}

// ContentReportedEvent - жалоба раскладывается в уведомление каждому
// админу. Отдельной таблицы жалоб нет, поэтому уведомление несет все:
// кто пожаловался (с именем), на что и почему.
type ContentReportedEvent struct {
	ReporterID   string
	ReporterName string
	TargetType   string
	TargetID     string
	Reason       string
}

func (e ContentReportedEvent) Notifications(tx *gorm.DB, recipients NotificationRecipients) ([]*models.Notification, error) {
	admins, err := recipients.FindAdmins(tx)
	if err != nil {
		return nil, err
	}
	notifications := make([]*models.Notification, 0, len(admins))
	for _, admin := range admins {
		notifications = append(notifications, &models.Notification{
			UserID:  admin.ID,
			Type:    models.NotificationReport,
			Title:   "Новая жалоба",
			Message: e.ReporterName + " пожаловался на " + e.TargetType + ". Причина: " + e.Reason,
			Data: payload(map[string]string{
				"reporter_id":       e.ReporterID,
				"reporter_username": e.ReporterName,
				"target_type":       e.TargetType,
				"target_id":         e.TargetID,
				"reason":            e.Reason,
			}),
		})
	}
	return notifications, nil
}

// ReviewReceivedEvent - специалист узнаёт о новой оценке.
type ReviewReceivedEvent struct {
	Review       *models.Review
	ReviewerName string
}

func (e ReviewReceivedEvent) Notifications(_ *gorm.DB, _ NotificationRecipients) ([]*models.Notification, error) {
	return []*models.Notification{{
		UserID:  e.Review.UserID,
		Type:    models.NotificationReview,
		Title:   "Новый отзыв",
		Message: e.ReviewerName + " оставил вам отзыв",
		Data: payload(map[string]string{
			"review_id":   e.Review.ID,
			"reviewer_id": e.Review.ReviewerID,
		}),
	}}, nil
}
