package postgres

import (
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// StatusRepo реализует repository.StatusRepository
type StatusRepo struct {
	db *gorm.DB
}

// NewStatusRepo создает новый репозиторий конфигурации викторины
func NewStatusRepo(db *gorm.DB) *StatusRepo {
	return &StatusRepo{db: db}
}

// Get возвращает единственную запись конфигурации
func (r *StatusRepo) Get() (*entity.QuizStatus, error) {
	var status entity.QuizStatus
	err := r.db.First(&status, 1).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load quiz status: %w", err)
	}
	return &status, nil
}

// Save сохраняет запись конфигурации. Если таблицы ещё нет
// (недоинициализированное хранилище), создаёт её и повторяет запись.
func (r *StatusRepo) Save(status *entity.QuizStatus) error {
	err := r.db.Save(status).Error
	if err == nil {
		return nil
	}

	// 42P01 - undefined_table
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
		log.Printf("[StatusRepo] Таблица quiz_config отсутствует, создаю и повторяю запись")
		if migErr := r.db.AutoMigrate(&entity.QuizStatus{}); migErr != nil {
			return fmt.Errorf("failed to create quiz_config table: %w", migErr)
		}
		if retryErr := r.db.Save(status).Error; retryErr != nil {
			return fmt.Errorf("failed to save quiz status after creating table: %w", retryErr)
		}
		return nil
	}

	// Драйвер pgx сообщает об отсутствующей таблице другим типом ошибки,
	// поэтому дополнительно пробуем создать таблицу, если её нет
	if !r.db.Migrator().HasTable(&entity.QuizStatus{}) {
		log.Printf("[StatusRepo] Таблица quiz_config отсутствует, создаю и повторяю запись")
		if migErr := r.db.AutoMigrate(&entity.QuizStatus{}); migErr != nil {
			return fmt.Errorf("failed to create quiz_config table: %w", migErr)
		}
		if retryErr := r.db.Save(status).Error; retryErr != nil {
			return fmt.Errorf("failed to save quiz status after creating table: %w", retryErr)
		}
		return nil
	}

	return fmt.Errorf("failed to save quiz status: %w", err)
}
