package validator

import (
	"log"

	"askpro_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка времени запуска,
			// приложение не должно стартовать.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-question-status", validateQuestionStatus)
	mustRegister("is-application-status", validateApplicationVerdict)
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.UserRole(fl.Field().String()).Valid()
}

func validateQuestionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустой статус = поле не меняется
	}
	return models.QuestionStatus(value).Valid()
}

// Вердикт рассмотрения заявки: только терминальные статусы.
func validateApplicationVerdict(fl validator.FieldLevel) bool {
	return models.ApplicationStatus(fl.Field().String()).Terminal()
}
