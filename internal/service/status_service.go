package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// statusCacheKey - ключ кеша флага доступности викторины
const statusCacheKey = "quiz:status"

// StatusService - шлюз флага доступности викторины. Флаг опрашивается при
// старте сессии, а не кешируется на всю сессию, поэтому выключение посреди
// игры не прерывает уже играющих. Отсутствующая конфигурация и сбои чтения
// трактуются как "включено".
type StatusService struct {
	statusRepo repository.StatusRepository
	cacheRepo  repository.CacheRepository
	cacheTTL   time.Duration
}

// NewStatusService создает новый сервис флага доступности
func NewStatusService(
	statusRepo repository.StatusRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *StatusService {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Second
	}
	return &StatusService{
		statusRepo: statusRepo,
		cacheRepo:  cacheRepo,
		cacheTTL:   cacheTTL,
	}
}

// IsQuizEnabled сообщает, разрешён ли запуск новых сессий
func (s *StatusService) IsQuizEnabled() bool {
	status, err := s.Get()
	if err != nil {
		// Сбой чтения конфигурации не должен останавливать мероприятие
		log.Printf("[StatusService] Ошибка чтения статуса викторины, считаем включённой: %v", err)
		return true
	}
	if status == nil {
		return true // Конфигурации ещё нет - по умолчанию включено
	}
	return status.Enabled()
}

// Get возвращает запись конфигурации (nil, если её ещё не создавали)
func (s *StatusService) Get() (*entity.QuizStatus, error) {
	var cached entity.QuizStatus
	if err := s.cacheRepo.GetJSON(statusCacheKey, &cached); err == nil {
		return &cached, nil
	}

	status, err := s.statusRepo.Get()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	}

	if cacheErr := s.cacheRepo.SetJSON(statusCacheKey, status, s.cacheTTL); cacheErr != nil {
		log.Printf("[StatusService] Ошибка записи кеша статуса: %v", cacheErr)
	}

	return status, nil
}

// SetEnabled включает или выключает викторину, записывая вместе с флагом
// метку времени и имя актора. Кеш инвалидируется сразу же.
func (s *StatusService) SetEnabled(enabled bool, actor string) error {
	status := entity.NewQuizStatus(enabled, actor, time.Now())
	if err := s.statusRepo.Save(status); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	}

	if err := s.cacheRepo.Delete(statusCacheKey); err != nil {
		log.Printf("[StatusService] Ошибка инвалидации кеша статуса: %v", err)
	}

	log.Printf("[StatusService] Викторина %s (актор: %s)", enabledWord(enabled), actor)
	return nil
}

func enabledWord(enabled bool) string {
	if enabled {
		return "включена"
	}
	return "выключена"
}
