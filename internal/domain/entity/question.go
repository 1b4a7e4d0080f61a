package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос банка викторины. После загрузки в сессию
// вопрос неизменяем; банк правится только через админ-панель.
type Question struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Text          string      `gorm:"size:500;not null" json:"text"`
	Options       StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer string      `gorm:"size:200;not null" json:"-"` // Скрыто от клиента
	Position      int         `gorm:"not null;default:0;index" json:"position"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// HasText сообщает, есть ли у вопроса непустой текст.
// Строки без текста (пустые строки исходной таблицы) в сессию не попадают.
func (q *Question) HasText() bool {
	return strings.TrimSpace(q.Text) != ""
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// OptionAt возвращает вариант ответа по индексу, очищенный от краевых пробелов
func (q *Question) OptionAt(i int) string {
	if !q.IsValidOption(i) {
		return ""
	}
	return strings.TrimSpace(q.Options[i])
}

// IsCorrectOption проверяет выбранный вариант. Сравнение с правильным
// ответом регистронезависимое, пробелы по краям игнорируются.
func (q *Question) IsCorrectOption(selectedOption int) bool {
	if !q.IsValidOption(selectedOption) {
		return false
	}
	return strings.EqualFold(q.OptionAt(selectedOption), strings.TrimSpace(q.CorrectAnswer))
}

// ParseOptions разбирает варианты ответов из исходной табличной формы,
// где они записаны через точку с запятой ("да;нет;не знаю").
func ParseOptions(raw string) StringArray {
	parts := strings.Split(raw, ";")
	options := make(StringArray, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	return options
}
