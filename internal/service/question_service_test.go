package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ============================================================================
// Моки для QuestionService
// ============================================================================

// MockQuestionRepo реализует repository.QuestionRepository
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Load() ([]entity.Question, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepo) ReplaceAll(questions []entity.Question) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepo) ApplyEdits(questions []entity.Question) error {
	args := m.Called(questions)
	return args.Error(0)
}

// MockCacheRepo реализует repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func validQuestion(text string) entity.Question {
	return entity.Question{
		Text:          text,
		Options:       entity.StringArray{"да", "нет"},
		CorrectAnswer: "да",
	}
}

// ============================================================================
// Тесты Load
// ============================================================================

func TestQuestionService_Load_CacheMiss(t *testing.T) {
	mockRepo := new(MockQuestionRepo)
	mockCache := new(MockCacheRepo)

	questions := []entity.Question{
		validQuestion("Вопрос 1"),
		{Text: "   ", Options: entity.StringArray{"а", "б"}, CorrectAnswer: "а"}, // Пустая строка банка
		validQuestion("Вопрос 2"),
	}

	mockCache.On("GetJSON", "questions:bank", mock.Anything).Return(apperrors.ErrNotFound)
	mockRepo.On("Load").Return(questions, nil)
	mockCache.On("SetJSON", "questions:bank", questions, time.Minute).Return(nil)

	svc := NewQuestionService(mockRepo, mockCache, time.Minute)
	loaded, err := svc.Load()

	require.NoError(t, err)
	require.Len(t, loaded, 2, "Строки без текста отбрасываются")
	assert.Equal(t, "Вопрос 1", loaded[0].Text)
	assert.Equal(t, "Вопрос 2", loaded[1].Text)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestQuestionService_Load_RepositoryError(t *testing.T) {
	mockRepo := new(MockQuestionRepo)
	mockCache := new(MockCacheRepo)

	mockCache.On("GetJSON", "questions:bank", mock.Anything).Return(apperrors.ErrNotFound)
	mockRepo.On("Load").Return(nil, assert.AnError)

	svc := NewQuestionService(mockRepo, mockCache, time.Minute)
	_, err := svc.Load()

	assert.ErrorIs(t, err, apperrors.ErrRepository)
}

// ============================================================================
// Тесты валидации записи
// ============================================================================

func TestQuestionService_ReplaceAll_ValidationErrors(t *testing.T) {
	svc := NewQuestionService(new(MockQuestionRepo), new(MockCacheRepo), time.Minute)

	// Пустой текст
	err := svc.ReplaceAll([]entity.Question{
		{Text: " ", Options: entity.StringArray{"а", "б"}, CorrectAnswer: "а"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Слишком мало вариантов
	err = svc.ReplaceAll([]entity.Question{
		{Text: "Вопрос", Options: entity.StringArray{"а"}, CorrectAnswer: "а"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Слишком много вариантов
	err = svc.ReplaceAll([]entity.Question{
		{Text: "Вопрос", Options: entity.StringArray{"а", "б", "в", "г", "д"}, CorrectAnswer: "а"},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Пустой правильный ответ
	err = svc.ReplaceAll([]entity.Question{
		{Text: "Вопрос", Options: entity.StringArray{"а", "б"}, CorrectAnswer: "  "},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestQuestionService_ReplaceAll_InvalidatesCache(t *testing.T) {
	mockRepo := new(MockQuestionRepo)
	mockCache := new(MockCacheRepo)

	questions := []entity.Question{validQuestion("Вопрос")}
	mockRepo.On("ReplaceAll", questions).Return(nil)
	mockCache.On("Delete", "questions:bank").Return(nil)

	svc := NewQuestionService(mockRepo, mockCache, time.Minute)
	require.NoError(t, svc.ReplaceAll(questions))

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestQuestionService_ApplyEdits_InvalidatesCache(t *testing.T) {
	mockRepo := new(MockQuestionRepo)
	mockCache := new(MockCacheRepo)

	questions := []entity.Question{validQuestion("Отредактированный вопрос")}
	mockRepo.On("ApplyEdits", questions).Return(nil)
	mockCache.On("Delete", "questions:bank").Return(nil)

	svc := NewQuestionService(mockRepo, mockCache, time.Minute)
	require.NoError(t, svc.ApplyEdits(questions))

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}
