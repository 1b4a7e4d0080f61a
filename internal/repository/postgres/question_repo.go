package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Load возвращает все вопросы банка в исходном порядке таблицы
func (r *QuestionRepo) Load() ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Order("position ASC, id ASC").Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	return questions, nil
}

// ReplaceAll атомарно заменяет весь банк вопросов новым набором.
// Используем транзакцию: частично заменённый банк хуже старого.
func (r *QuestionRepo) ReplaceAll(questions []entity.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.Question{}).Error; err != nil {
			return fmt.Errorf("failed to clear questions: %w", err)
		}
		for i := range questions {
			questions[i].ID = 0 // Новый банк получает новые идентификаторы
			questions[i].Position = i
		}
		if len(questions) == 0 {
			return nil
		}
		if err := tx.Create(&questions).Error; err != nil {
			return fmt.Errorf("failed to insert questions: %w", err)
		}
		return nil
	})
}

// ApplyEdits сохраняет правки банка: строки с ID обновляются, строки без
// ID добавляются, строки, отсутствующие в наборе, удаляются.
func (r *QuestionRepo) ApplyEdits(questions []entity.Question) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		keptIDs := make([]uint, 0, len(questions))
		for i := range questions {
			questions[i].Position = i
			if questions[i].ID != 0 {
				keptIDs = append(keptIDs, questions[i].ID)
			}
		}

		// Удаляем строки, которых больше нет в наборе
		del := tx.Model(&entity.Question{})
		if len(keptIDs) > 0 {
			del = del.Where("id NOT IN ?", keptIDs)
		} else {
			del = del.Where("1 = 1")
		}
		if err := del.Delete(&entity.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete removed questions: %w", err)
		}

		// Строки без ID создаются; строки с ID обновляются явно. Устаревший
		// ID (строка удалена другой правкой) вставляется как новая строка.
		for i := range questions {
			q := &questions[i]
			if q.ID == 0 {
				if err := tx.Create(q).Error; err != nil {
					return fmt.Errorf("failed to insert question: %w", err)
				}
				continue
			}

			res := tx.Model(&entity.Question{}).Where("id = ?", q.ID).Updates(map[string]interface{}{
				"text":           q.Text,
				"options":        q.Options,
				"correct_answer": q.CorrectAnswer,
				"position":       q.Position,
			})
			if res.Error != nil {
				return fmt.Errorf("failed to update question #%d: %w", q.ID, res.Error)
			}
			if res.RowsAffected == 0 {
				q.ID = 0
				if err := tx.Create(q).Error; err != nil {
					return fmt.Errorf("failed to insert question: %w", err)
				}
			}
		}
		return nil
	})
}
