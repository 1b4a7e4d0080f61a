package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// StatusRepository определяет методы для работы с конфигурацией викторины
// (флаг доступности). Если у хранилища отсутствует нужная структура,
// путь записи обязан создать её, а не падать с ошибкой.
type StatusRepository interface {
	// Get возвращает текущую запись конфигурации.
	// Отсутствие записи - apperrors.ErrNotFound.
	Get() (*entity.QuizStatus, error)

	// Save сохраняет запись конфигурации, создавая недостающую
	// структуру хранилища при необходимости.
	Save(status *entity.QuizStatus) error
}
