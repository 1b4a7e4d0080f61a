package entity

import (
	"strings"
	"time"
)

// truthyValues - множество текстовых значений, которые считаются "включено".
// Унаследовано от исходной таблицы конфигурации, где флаг записывался руками.
var truthyValues = map[string]struct{}{
	"true":       {},
	"1":          {},
	"sim":        {},
	"habilitado": {},
	"enabled":    {},
}

// QuizStatus представляет единственную запись конфигурации викторины:
// текстовый флаг доступности плюс метаданные последнего изменения.
type QuizStatus struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	QuizEnabled string    `gorm:"size:20;not null;default:'true'" json:"quiz_enabled"`
	LastUpdated time.Time `gorm:"not null" json:"last_updated"`
	UpdatedBy   string    `gorm:"size:100;not null;default:''" json:"updated_by"`
}

// TableName определяет имя таблицы для GORM
func (QuizStatus) TableName() string {
	return "quiz_config"
}

// Enabled интерпретирует текстовый флаг. Регистр не учитывается;
// любое значение вне множества truthyValues означает "выключено".
func (s *QuizStatus) Enabled() bool {
	_, ok := truthyValues[strings.ToLower(strings.TrimSpace(s.QuizEnabled))]
	return ok
}

// NewQuizStatus создаёт запись конфигурации для сохранения.
func NewQuizStatus(enabled bool, actor string, at time.Time) *QuizStatus {
	value := "false"
	if enabled {
		value = "true"
	}
	return &QuizStatus{
		ID:          1, // Единственная строка конфигурации
		QuizEnabled: value,
		LastUpdated: at,
		UpdatedBy:   actor,
	}
}
