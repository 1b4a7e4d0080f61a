package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// questionsCacheKey - ключ кеша банка вопросов
const questionsCacheKey = "questions:bank"

// QuestionService отвечает за чтение банка вопросов через кеш ограниченной
// свежести и за админские правки банка. Обе операции записи инвалидируют
// кеш немедленно: правки должны быть видны следующим чтением, а не после
// истечения окна свежести.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
}

// NewQuestionService создает новый сервис банка вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *QuestionService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &QuestionService{
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
	}
}

// Load возвращает банк вопросов: сперва из кеша, при промахе - из
// репозитория с последующим заполнением кеша. Строки без текста
// отбрасываются ещё здесь, в сессию они не попадают.
func (s *QuestionService) Load() ([]entity.Question, error) {
	var cached []entity.Question
	err := s.cacheRepo.GetJSON(questionsCacheKey, &cached)
	if err == nil {
		return filterWithText(cached), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		// Сбой кеша не критичен: идём в репозиторий напрямую
		log.Printf("[QuestionService] Ошибка чтения кеша вопросов: %v", err)
	}

	questions, err := s.questionRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	}

	if cacheErr := s.cacheRepo.SetJSON(questionsCacheKey, questions, s.cacheTTL); cacheErr != nil {
		log.Printf("[QuestionService] Ошибка записи кеша вопросов: %v", cacheErr)
	}

	return filterWithText(questions), nil
}

// ReplaceAll заменяет весь банк вопросов новым набором (путь загрузки файла
// в исходном приложении). Только для админа.
func (s *QuestionService) ReplaceAll(questions []entity.Question) error {
	if err := validateQuestions(questions); err != nil {
		return err
	}
	if err := s.questionRepo.ReplaceAll(questions); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	}
	s.invalidate()
	log.Printf("[QuestionService] Банк вопросов заменён: %d вопросов", len(questions))
	return nil
}

// ApplyEdits сохраняет построчные правки банка (путь табличного редактора
// в исходном приложении). Только для админа.
func (s *QuestionService) ApplyEdits(questions []entity.Question) error {
	if err := validateQuestions(questions); err != nil {
		return err
	}
	if err := s.questionRepo.ApplyEdits(questions); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRepository, err)
	}
	s.invalidate()
	log.Printf("[QuestionService] Правки банка вопросов сохранены: %d вопросов", len(questions))
	return nil
}

// invalidate сбрасывает кеш банка вопросов
func (s *QuestionService) invalidate() {
	if err := s.cacheRepo.Delete(questionsCacheKey); err != nil {
		log.Printf("[QuestionService] Ошибка инвалидации кеша вопросов: %v", err)
	}
}

// validateQuestions проверяет админский набор вопросов перед записью
func validateQuestions(questions []entity.Question) error {
	for i := range questions {
		q := &questions[i]
		if !q.HasText() {
			return fmt.Errorf("%w: question %d has empty text", apperrors.ErrValidation, i+1)
		}
		if len(q.Options) < 2 || len(q.Options) > 4 {
			return fmt.Errorf("%w: question %d must have 2-4 options, got %d", apperrors.ErrValidation, i+1, len(q.Options))
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return fmt.Errorf("%w: question %d has empty correct answer", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}

// filterWithText отбрасывает строки банка без текста вопроса
func filterWithText(questions []entity.Question) []entity.Question {
	filtered := make([]entity.Question, 0, len(questions))
	for _, q := range questions {
		if q.HasText() {
			filtered = append(filtered, q)
		}
	}
	return filtered
}
