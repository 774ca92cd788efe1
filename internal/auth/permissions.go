package auth

import (
	"errors"

	"askpro_backend/internal/models"
)

// Единственное место, где определены правила "кто что может".
// Хендлеры и сервисы не сравнивают роли со строками напрямую.

// CanAnswer - отвечать на вопросы могут профессионалы и админы
func CanAnswer(role models.UserRole) bool {
	return role == models.UserRolePower || role == models.UserRoleAdmin
}

// CanModerate - банить/разбанивать/удалять и рассматривать заявки
// может только админ
func CanModerate(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}

// CanApplyForTag - подавать заявки на сертификацию могут только
// профессионалы (админ сертификацию не использует)
func CanApplyForTag(role models.UserRole) bool {
	return role == models.UserRolePower
}

// IsReviewable - оцениваются только профессионалы
func IsReviewable(role models.UserRole) bool {
	return role == models.UserRolePower
}

// IsExemptFromModeration - админа нельзя забанить или удалить
func IsExemptFromModeration(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}

// ValidateRole проверяет валидность роли
func ValidateRole(role models.UserRole) error {
	if !role.Valid() {
		return errors.New("invalid role")
	}
	return nil
}
