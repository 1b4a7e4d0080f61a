package sessionmanager

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// Constants for default values
const (
	DefaultQuestionTimerSec = 30
	DefaultPointsPerAnswer  = 10
)

// Screen - текущий экран сессии
type Screen string

const (
	ScreenHome  Screen = "home"
	ScreenQuiz  Screen = "quiz"
	ScreenEnd   Screen = "end"
	ScreenAdmin Screen = "admin"
)

// FeedbackKind - тип сообщения обратной связи
type FeedbackKind string

const (
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback - сообщение игроку о результате вопроса. Сбрасывается при
// переходе к следующему вопросу.
type Feedback struct {
	Message string       `json:"message"`
	Kind    FeedbackKind `json:"kind"`
}

// Config содержит настройки игровых сессий
type Config struct {
	// QuestionTimerSec - бюджет времени на вопрос в секундах
	QuestionTimerSec int

	// PointsPerAnswer - очки за правильный ответ
	PointsPerAnswer int
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		QuestionTimerSec: DefaultQuestionTimerSec,
		PointsPerAnswer:  DefaultPointsPerAnswer,
	}
}

// QuestionSource поставляет банк вопросов на старте сессии
type QuestionSource interface {
	Load() ([]entity.Question, error)
}

// StatusGate сообщает, разрешён ли запуск новых сессий
type StatusGate interface {
	IsQuizEnabled() bool
}

// ResultSink принимает результат завершённой сессии
type ResultSink interface {
	Append(entry entity.RankingEntry) error
}

// Notifier доставляет события сессии презентационному слою
// (тики обратного отсчёта, таймаут). Реализация не должна блокировать.
type Notifier interface {
	NotifySession(sessionID string, eventType string, data interface{})
}

// Dependencies содержит зависимости менеджера сессий
type Dependencies struct {
	Questions QuestionSource
	Status    StatusGate
	Results   ResultSink
	Notifier  Notifier
	Config    *Config
}

// NoOpNotifier - заглушка для окружений без WebSocket (тесты)
type NoOpNotifier struct{}

// NotifySession ничего не делает
func (n *NoOpNotifier) NotifySession(sessionID string, eventType string, data interface{}) {}
