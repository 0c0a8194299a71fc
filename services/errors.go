package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed  = errors.New("validation failed") // Общая ошибка валидации
	ErrUserNameRequired  = errors.New("user name is required")
	ErrMainUserProtected = errors.New("main user cannot be deleted or archived")
	ErrInvalidSettings   = errors.New("invalid settings")
	ErrInvalidQuery      = errors.New("invalid statistics query")
	ErrInvalidExport     = errors.New("invalid export format")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound     = errors.New("user not found")
	ErrMainUserNotFound = errors.New("main user is not configured")
	ErrSessionNotFound  = errors.New("session not found")

	// Экспорт недоступен, если хранилище не настроено
	ErrExportUnavailable = errors.New("export storage is not configured")
)
