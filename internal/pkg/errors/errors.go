package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation используется для ошибок валидации входных данных
	// (пустое имя игрока, недопустимый номер варианта ответа и т.п.).
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable используется, когда викторина отключена организаторами
	// и новые сессии запускать нельзя.
	ErrUnavailable = errors.New("quiz is disabled")

	// ErrEmptyQuestionSet используется, когда банк вопросов пуст:
	// ни одного вопроса с непустым текстом.
	ErrEmptyQuestionSet = errors.New("question set is empty")

	// ErrAuth используется при неверном пароле администратора.
	ErrAuth = errors.New("invalid admin credentials")

	// ErrRepository используется для оборачивания сбоев внешних хранилищ
	// (БД, кеш). Конкретная причина добавляется через %w.
	ErrRepository = errors.New("repository failure")

	// ErrConflict используется для конфликтов состояния сессии
	// (например, переход, недопустимый для текущего экрана).
	ErrConflict = errors.New("resource state conflict")
)
