package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionRow - вопрос в админском представлении: с правильным ответом.
// Наружу, игрокам, такой DTO не отдаётся.
type QuestionRow struct {
	ID            uint     `json:"id,omitempty"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// NewQuestionRows строит админский список вопросов
func NewQuestionRows(questions []entity.Question) []QuestionRow {
	rows := make([]QuestionRow, len(questions))
	for i, q := range questions {
		rows[i] = QuestionRow{
			ID:            q.ID,
			Text:          q.Text,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return rows
}

// Question переводит админскую строку обратно в сущность
func (r QuestionRow) Question() entity.Question {
	return entity.Question{
		ID:            r.ID,
		Text:          r.Text,
		Options:       entity.StringArray(r.Options),
		CorrectAnswer: r.CorrectAnswer,
	}
}

// StatusResponse - состояние флага доступности с метаданными последнего
// изменения (админ-панель)
type StatusResponse struct {
	Enabled     bool       `json:"enabled"`
	Configured  bool       `json:"configured"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	UpdatedBy   string     `json:"updated_by,omitempty"`
}

// NewStatusResponse строит ответ о состоянии флага. status может быть nil:
// конфигурацию ещё не создавали, флаг считается включённым.
func NewStatusResponse(status *entity.QuizStatus) StatusResponse {
	if status == nil {
		return StatusResponse{Enabled: true, Configured: false}
	}
	updated := status.LastUpdated
	return StatusResponse{
		Enabled:     status.Enabled(),
		Configured:  true,
		LastUpdated: &updated,
		UpdatedBy:   status.UpdatedBy,
	}
}
