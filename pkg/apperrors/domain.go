package apperrors

import (
	"net/http"
)

/*
Фабрики для общих ошибок бизнес-логики. Сервисы используют их,
чтобы переводить ошибки репозиториев (gorm.ErrRecordNotFound и т.д.)
в единую таксономию: NotFound -> 404, Forbidden -> 403,
Validation -> 400, Unauthorized -> 401, Internal -> 500.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных переходов статуса (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrLimitExceeded - фабрика для превышения лимитов (400)
func ErrLimitExceeded(domain, message string) *AppError {
	return New(CodeLimitExceeded, domain, message, http.StatusBadRequest)
}
