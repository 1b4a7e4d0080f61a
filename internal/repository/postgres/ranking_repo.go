package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// RankingRepo реализует repository.RankingRepository
type RankingRepo struct {
	db *gorm.DB
}

// NewRankingRepo создает новый репозиторий рейтинга
func NewRankingRepo(db *gorm.DB) *RankingRepo {
	return &RankingRepo{db: db}
}

// Append добавляет строку результата. Таблица append-only: никаких
// update/delete из ядра, конкурентные добавления бесконфликтны.
func (r *RankingRepo) Append(row *entity.RankingRow) error {
	if err := r.db.Create(row).Error; err != nil {
		return fmt.Errorf("failed to append ranking row: %w", err)
	}
	return nil
}

// LoadAll возвращает все строки рейтинга в порядке добавления.
// Сортировка и усечение - забота агрегатора, не хранилища.
func (r *RankingRepo) LoadAll() ([]entity.RankingRow, error) {
	var rows []entity.RankingRow
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load ranking rows: %w", err)
	}
	return rows, nil
}
