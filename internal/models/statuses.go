package models

type UserRole string
type UserStatus string
type QuestionStatus string
type ApplicationStatus string
type VerificationStatus string

const (
	UserRoleRegular UserRole = "regular"
	UserRolePower   UserRole = "power"
	UserRoleAdmin   UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusBanned    UserStatus = "banned"
	UserStatusSuspended UserStatus = "suspended"

	QuestionStatusOpen     QuestionStatus = "open"
	QuestionStatusAnswered QuestionStatus = "answered"
	QuestionStatusClosed   QuestionStatus = "closed"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	VerificationStatusUnverified VerificationStatus = "unverified"
	VerificationStatusVerified   VerificationStatus = "verified"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleRegular, UserRolePower, UserRoleAdmin:
		return true
	}
	return false
}

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusActive, UserStatusBanned, UserStatusSuspended:
		return true
	}
	return false
}

func (s QuestionStatus) Valid() bool {
	switch s {
	case QuestionStatusOpen, QuestionStatusAnswered, QuestionStatusClosed:
		return true
	}
	return false
}

// CanTransitionTo - естественный жизненный цикл вопроса:
// open -> answered (первый ответ) -> closed (принятие ответа).
// Назад переходов нет. Ручной override админа через update
// идет мимо этой проверки, но значение обязано быть из перечисления.
func (s QuestionStatus) CanTransitionTo(next QuestionStatus) bool {
	switch s {
	case QuestionStatusOpen:
		return next == QuestionStatusAnswered
	case QuestionStatusAnswered:
		return next == QuestionStatusClosed
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// Terminal - заявка рассматривается один раз: pending -> approved|rejected,
// оба исхода терминальны.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// CanReview проверяет, что заявку еще можно рассмотреть
// и что вердикт является допустимым исходом.
func (s ApplicationStatus) CanReview(verdict ApplicationStatus) bool {
	return s == ApplicationStatusPending && verdict.Terminal()
}
