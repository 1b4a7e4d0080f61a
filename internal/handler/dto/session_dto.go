package dto

import (
	"github.com/yourusername/quiz-api/internal/service/sessionmanager"
)

// SessionResponse - срез состояния сессии для презентационного слоя.
// Интерфейс перерисовывает экран целиком по каждому такому ответу.
type SessionResponse struct {
	ID               string                       `json:"id"`
	Screen           sessionmanager.Screen        `json:"screen"`
	PlayerName       string                       `json:"player_name,omitempty"`
	QuestionIndex    int                          `json:"question_index"`
	QuestionCount    int                          `json:"question_count"`
	Question         *sessionmanager.QuestionView `json:"question,omitempty"`
	TimerRemaining   int                          `json:"timer_remaining"`
	Score            int                          `json:"score"`
	TotalTimeSeconds float64                      `json:"total_time_seconds"`
	AnswerSubmitted  bool                         `json:"answer_submitted"`
	Feedback         *sessionmanager.Feedback     `json:"feedback,omitempty"`
	IsAdmin          bool                         `json:"is_admin"`
	Warning          string                       `json:"warning,omitempty"`
	QuizEnabled      *bool                        `json:"quiz_enabled,omitempty"`
}

// NewSessionResponse строит ответ из среза состояния сессии.
// quizEnabled передаётся только для экрана Home (там интерфейс блокирует
// форму входа при выключенной викторине), иначе nil.
func NewSessionResponse(snap sessionmanager.Snapshot, quizEnabled *bool) SessionResponse {
	return SessionResponse{
		ID:               snap.ID,
		Screen:           snap.Screen,
		PlayerName:       snap.PlayerName,
		QuestionIndex:    snap.QuestionIndex,
		QuestionCount:    snap.QuestionCount,
		Question:         snap.Question,
		TimerRemaining:   snap.TimerRemaining,
		Score:            snap.Score,
		TotalTimeSeconds: snap.TotalTimeSeconds,
		AnswerSubmitted:  snap.AnswerSubmitted,
		Feedback:         snap.Feedback,
		IsAdmin:          snap.IsAdmin,
		Warning:          snap.Warning,
		QuizEnabled:      quizEnabled,
	}
}
