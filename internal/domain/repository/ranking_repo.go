package repository

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// RankingRepository определяет методы для работы с рейтингом.
// Хранилище append-only: ядро никогда не читает-потом-пишет строки,
// только добавляет, поэтому конкурентные записи бесконфликтны.
type RankingRepository interface {
	// Append добавляет строку результата завершённой сессии.
	Append(row *entity.RankingRow) error

	// LoadAll возвращает все строки рейтинга в порядке добавления.
	LoadAll() ([]entity.RankingRow, error)
}
