package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с банком вопросов.
// Чтение возвращает вопросы в исходном порядке таблицы; обе операции
// записи доступны только из админ-панели, и вызывающая сторона обязана
// инвалидировать кеш чтения после успешной записи.
type QuestionRepository interface {
	// Load возвращает все вопросы банка, упорядоченные по позиции.
	// Пустой результат - валидное состояние.
	Load() ([]entity.Question, error)

	// ReplaceAll атомарно заменяет весь банк вопросов новым набором.
	ReplaceAll(questions []entity.Question) error

	// ApplyEdits сохраняет правки банка: строки с ID обновляются,
	// строки без ID добавляются, отсутствующие в наборе - удаляются.
	ApplyEdits(questions []entity.Question) error
}
