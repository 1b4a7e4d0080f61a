package sessionmanager

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// Manager владеет игровыми сессиями: создание, поиск по идентификатору,
// удаление и выселение простаивающих. Каждая сессия принадлежит одному
// браузеру; межсессионной координации нет - она делегирована хранилищам.
type Manager struct {
	config *Config
	deps   *Dependencies

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager создает новый менеджер сессий
func NewManager(config *Config, deps *Dependencies) *Manager {
	if config == nil {
		config = DefaultConfig()
	}
	if deps.Notifier == nil {
		deps.Notifier = &NoOpNotifier{}
	}
	return &Manager{
		config:   config,
		deps:     deps,
		sessions: make(map[string]*Session),
	}
}

// Create создает новую сессию на экране Home и возвращает её
func (m *Manager) Create() *Session {
	session := newSession(uuid.NewString(), m.config, m.deps)

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	log.Printf("[SessionManager] Создана сессия %s", session.ID)
	return session
}

// Get возвращает сессию по идентификатору
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: session %q", apperrors.ErrNotFound, id)
	}
	return session, nil
}

// Remove завершает сессию и убирает её из реестра
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		session.Close()
		log.Printf("[SessionManager] Сессия %s удалена", id)
	}
}

// Count возвращает число живых сессий
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartJanitor запускает фоновое выселение простаивающих сессий.
// Останавливается по отмене контекста.
func (m *Manager) StartJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	if maxIdle <= 0 {
		maxIdle = 30 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.evictIdle(maxIdle)
			case <-ctx.Done():
				log.Printf("[SessionManager] Janitor остановлен")
				return
			}
		}
	}()
}

// evictIdle удаляет сессии, простаивающие дольше maxIdle
func (m *Manager) evictIdle(maxIdle time.Duration) {
	now := time.Now()

	m.mu.Lock()
	var expired []*Session
	for id, session := range m.sessions {
		if session.idleSince(now) > maxIdle {
			expired = append(expired, session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, session := range expired {
		session.Close()
		log.Printf("[SessionManager] Сессия %s выселена по простою", session.ID)
	}
}

// Shutdown завершает все сессии
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
	log.Printf("[SessionManager] Все сессии завершены")
}
