package sessionmanager

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// Session хранит состояние одной игровой сессии: от ввода имени до экрана
// рейтинга. Каждая сессия владеет собственным мьютексом и собственным
// обратным отсчётом; общего изменяемого состояния между сессиями нет.
type Session struct {
	ID string

	mu     sync.Mutex
	config *Config
	deps   *Dependencies

	screen           Screen
	playerName       string
	questions        []entity.Question
	currentIndex     int
	score            int
	totalTimeSeconds float64
	timerRemaining   int
	answerSubmitted  bool
	feedback         *Feedback
	isAdmin          bool

	// resultSaved гарантирует ровно одну запись в рейтинг на сессию
	resultSaved bool

	// warning - некритичное предупреждение для следующего рендера
	// (редирект из админки, несохранённый результат)
	warning string

	lastActive time.Time

	countdownCancel context.CancelFunc
}

// newSession создает сессию на экране Home
func newSession(id string, config *Config, deps *Dependencies) *Session {
	return &Session{
		ID:         id,
		config:     config,
		deps:       deps,
		screen:     ScreenHome,
		lastActive: time.Now(),
	}
}

// StartQuiz выполняет переход Home -> Quiz: проверяет имя, флаг
// доступности, загружает банк вопросов и взводит обратный отсчёт.
// Порядок проверок фиксирован: при выключенной викторине вопросы
// не запрашиваются.
func (s *Session) StartQuiz(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.screen != ScreenHome {
		return fmt.Errorf("%w: quiz can only start from home screen", apperrors.ErrConflict)
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: player name is empty", apperrors.ErrValidation)
	}

	if !s.deps.Status.IsQuizEnabled() {
		return apperrors.ErrUnavailable
	}

	questions, err := s.deps.Questions.Load()
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return apperrors.ErrEmptyQuestionSet
	}

	s.playerName = trimmed
	s.questions = questions
	s.currentIndex = 0
	s.score = 0
	s.totalTimeSeconds = 0
	s.timerRemaining = s.config.QuestionTimerSec
	s.answerSubmitted = false
	s.feedback = nil
	s.resultSaved = false
	s.warning = ""
	s.screen = ScreenQuiz

	s.armCountdownLocked()
	log.Printf("[Session %s] Игрок %q начал викторину: %d вопросов", s.ID, trimmed, len(questions))
	return nil
}

// applyTick применяет один тик обратного отсчёта. Возвращает false, когда
// отсчёт должен остановиться. После разрешения вопроса тик - no-op:
// опоздавший тик не может испортить состояние.
func (s *Session) applyTick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen != ScreenQuiz || s.answerSubmitted || s.timerRemaining <= 0 {
		return false
	}

	s.timerRemaining--
	s.deps.Notifier.NotifySession(s.ID, "session:tick", map[string]interface{}{
		"timer_remaining": s.timerRemaining,
		"question_index":  s.currentIndex,
	})

	if s.timerRemaining > 0 {
		return true
	}

	// Тайм-аут: вопрос разрешается с полным бюджетом времени
	s.answerSubmitted = true
	s.totalTimeSeconds += float64(s.config.QuestionTimerSec)
	fb := timeoutFeedback(s.currentQuestionLocked().CorrectAnswer)
	s.feedback = &fb

	s.deps.Notifier.NotifySession(s.ID, "session:timeout", map[string]interface{}{
		"question_index": s.currentIndex,
		"feedback":       fb,
	})
	log.Printf("[Session %s] Тайм-аут на вопросе %d", s.ID, s.currentIndex+1)
	return false
}

// SubmitAnswer обрабатывает выбор варианта ответа. Повторная отправка и
// выход индекса за границы вариантов молча игнорируются: это защита от
// двойных кликов и устаревшего интерфейса.
func (s *Session) SubmitAnswer(choiceIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.screen != ScreenQuiz {
		return fmt.Errorf("%w: no question to answer on screen %q", apperrors.ErrConflict, s.screen)
	}
	if s.answerSubmitted {
		return nil // Вопрос уже разрешён (ответом или тайм-аутом)
	}

	question := s.currentQuestionLocked()
	if !question.IsValidOption(choiceIndex) {
		return nil
	}

	// Отсчёт больше не нужен: гасим до изменения состояния
	s.disarmCountdownLocked()

	elapsed := float64(s.config.QuestionTimerSec - s.timerRemaining)
	s.totalTimeSeconds += elapsed
	s.answerSubmitted = true

	var fb Feedback
	if question.IsCorrectOption(choiceIndex) {
		s.score += s.config.PointsPerAnswer
		fb = correctFeedback()
	} else {
		fb = wrongFeedback(question.CorrectAnswer)
	}
	s.feedback = &fb

	s.deps.Notifier.NotifySession(s.ID, "session:answer", map[string]interface{}{
		"question_index": s.currentIndex,
		"score":          s.score,
		"feedback":       fb,
	})
	log.Printf("[Session %s] Ответ на вопрос %d за %.0f сек, очки: %d", s.ID, s.currentIndex+1, elapsed, s.score)
	return nil
}

// NextQuestion переходит к следующему вопросу либо, после последнего,
// записывает результат в рейтинг и показывает экран End. Запись
// best-effort: сбой хранилища логируется и показывается предупреждением,
// но переход не блокирует.
func (s *Session) NextQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.screen != ScreenQuiz {
		return fmt.Errorf("%w: cannot advance on screen %q", apperrors.ErrConflict, s.screen)
	}
	if !s.answerSubmitted {
		return fmt.Errorf("%w: current question is not resolved yet", apperrors.ErrConflict)
	}

	if s.currentIndex+1 < len(s.questions) {
		// Полный пер-вопросный сброс, ничего не переносится
		s.currentIndex++
		s.answerSubmitted = false
		s.timerRemaining = s.config.QuestionTimerSec
		s.feedback = nil
		s.armCountdownLocked()
		return nil
	}

	if !s.resultSaved {
		s.resultSaved = true
		entry := entity.RankingEntry{
			Name:             s.playerName,
			Score:            s.score,
			TotalTimeSeconds: s.totalTimeSeconds,
		}
		if err := s.deps.Results.Append(entry); err != nil {
			log.Printf("[Session %s] Не удалось записать результат в рейтинг: %v", s.ID, err)
			s.warning = "Your result could not be saved to the ranking."
		} else {
			log.Printf("[Session %s] Результат записан: %s, %d очков, %.1f сек", s.ID, s.playerName, s.score, s.totalTimeSeconds)
		}
	}

	s.screen = ScreenEnd
	return nil
}

// Restart выполняет переход End -> Home. Банк вопросов не сохраняется:
// следующий StartQuiz запросит его заново.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.screen != ScreenEnd {
		return fmt.Errorf("%w: restart is only valid from the end screen", apperrors.ErrConflict)
	}

	s.screen = ScreenHome
	s.playerName = ""
	s.questions = nil
	s.currentIndex = 0
	s.score = 0
	s.totalTimeSeconds = 0
	s.timerRemaining = 0
	s.answerSubmitted = false
	s.feedback = nil
	s.resultSaved = false
	s.warning = ""
	return nil
}

// EnterAdmin выполняет переход Home -> Admin. Вызывается только после
// успешной проверки пароля. Из Quiz и End админка недостижима.
func (s *Session) EnterAdmin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.screen != ScreenHome {
		return fmt.Errorf("%w: admin panel is only reachable from home", apperrors.ErrConflict)
	}
	s.isAdmin = true
	s.screen = ScreenAdmin
	return nil
}

// LeaveAdmin выполняет переход Admin -> Home и снимает права администратора
func (s *Session) LeaveAdmin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.isAdmin = false
	if s.screen == ScreenAdmin {
		s.screen = ScreenHome
	}
}

// RevokeAdmin снимает права администратора, не трогая экран (истёкший
// токен). Следующий рендер уведёт сессию с экрана Admin.
func (s *Session) RevokeAdmin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAdmin = false
}

// QuestionView - вопрос в том виде, в котором его можно показать игроку:
// без правильного ответа.
type QuestionView struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Snapshot - согласованный срез состояния сессии для рендера
type Snapshot struct {
	ID               string        `json:"id"`
	Screen           Screen        `json:"screen"`
	PlayerName       string        `json:"player_name,omitempty"`
	QuestionIndex    int           `json:"question_index"`
	QuestionCount    int           `json:"question_count"`
	Question         *QuestionView `json:"question,omitempty"`
	TimerRemaining   int           `json:"timer_remaining"`
	Score            int           `json:"score"`
	TotalTimeSeconds float64       `json:"total_time_seconds"`
	AnswerSubmitted  bool          `json:"answer_submitted"`
	Feedback         *Feedback     `json:"feedback,omitempty"`
	IsAdmin          bool          `json:"is_admin"`
	Warning          string        `json:"warning,omitempty"`
}

// Render возвращает срез состояния для презентационного слоя. Охрана
// админ-экрана перепроверяется на КАЖДОМ рендере, а не только на переходе:
// права могли быть отозваны извне.
func (s *Session) Render() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.screen == ScreenAdmin && !s.isAdmin {
		log.Printf("[Session %s] Попытка открыть админ-панель без прав, редирект на Home", s.ID)
		s.screen = ScreenHome
		fb := adminGuardFeedback()
		s.warning = fb.Message
	}

	snap := Snapshot{
		ID:               s.ID,
		Screen:           s.screen,
		PlayerName:       s.playerName,
		QuestionIndex:    s.currentIndex,
		QuestionCount:    len(s.questions),
		TimerRemaining:   s.timerRemaining,
		Score:            s.score,
		TotalTimeSeconds: s.totalTimeSeconds,
		AnswerSubmitted:  s.answerSubmitted,
		IsAdmin:          s.isAdmin,
		Warning:          s.warning,
	}

	if s.feedback != nil {
		fb := *s.feedback
		snap.Feedback = &fb
	}

	if s.screen == ScreenQuiz && s.currentIndex < len(s.questions) {
		q := s.currentQuestionLocked()
		options := make([]string, q.OptionsCount())
		for i := range options {
			options[i] = q.OptionAt(i)
		}
		snap.Question = &QuestionView{
			Text: q.Text,
			// Копия: срез состояния не должен делить память с сессией
			Options: options,
		}
	}

	return snap
}

// Close гасит обратный отсчёт сессии
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmCountdownLocked()
}

// currentQuestionLocked возвращает текущий вопрос; вызывается под мьютексом
func (s *Session) currentQuestionLocked() *entity.Question {
	return &s.questions[s.currentIndex]
}

// touch обновляет метку активности; вызывается под мьютексом
func (s *Session) touch() {
	s.lastActive = time.Now()
}

// idleSince возвращает длительность простоя сессии
func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}
