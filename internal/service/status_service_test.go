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
// Моки для StatusService
// ============================================================================

// MockStatusRepo реализует repository.StatusRepository
type MockStatusRepo struct {
	mock.Mock
}

func (m *MockStatusRepo) Get() (*entity.QuizStatus, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizStatus), args.Error(1)
}

func (m *MockStatusRepo) Save(status *entity.QuizStatus) error {
	args := m.Called(status)
	return args.Error(0)
}

// ============================================================================
// Тесты IsQuizEnabled
// ============================================================================

func TestStatusService_IsQuizEnabled_NoConfigDefaultsToEnabled(t *testing.T) {
	mockRepo := new(MockStatusRepo)
	mockCache := new(MockCacheRepo)

	mockCache.On("GetJSON", "quiz:status", mock.Anything).Return(apperrors.ErrNotFound)
	mockRepo.On("Get").Return(nil, apperrors.ErrNotFound)

	svc := NewStatusService(mockRepo, mockCache, 15*time.Second)
	assert.True(t, svc.IsQuizEnabled(), "Отсутствие конфигурации - включено по умолчанию")
}

func TestStatusService_IsQuizEnabled_RepositoryErrorDefaultsToEnabled(t *testing.T) {
	mockRepo := new(MockStatusRepo)
	mockCache := new(MockCacheRepo)

	mockCache.On("GetJSON", "quiz:status", mock.Anything).Return(apperrors.ErrNotFound)
	mockRepo.On("Get").Return(nil, assert.AnError)

	svc := NewStatusService(mockRepo, mockCache, 15*time.Second)
	assert.True(t, svc.IsQuizEnabled(), "Сбой чтения не должен останавливать мероприятие")
}

func TestStatusService_IsQuizEnabled_DisabledFlag(t *testing.T) {
	mockRepo := new(MockStatusRepo)
	mockCache := new(MockCacheRepo)

	status := entity.NewQuizStatus(false, "Admin", time.Now())
	mockCache.On("GetJSON", "quiz:status", mock.Anything).Return(apperrors.ErrNotFound)
	mockRepo.On("Get").Return(status, nil)
	mockCache.On("SetJSON", "quiz:status", status, 15*time.Second).Return(nil)

	svc := NewStatusService(mockRepo, mockCache, 15*time.Second)
	assert.False(t, svc.IsQuizEnabled())
}

// ============================================================================
// Тесты SetEnabled
// ============================================================================

func TestStatusService_SetEnabled_SavesAndInvalidates(t *testing.T) {
	mockRepo := new(MockStatusRepo)
	mockCache := new(MockCacheRepo)

	mockRepo.On("Save", mock.MatchedBy(func(status *entity.QuizStatus) bool {
		return status.QuizEnabled == "false" && status.UpdatedBy == "Admin"
	})).Return(nil)
	mockCache.On("Delete", "quiz:status").Return(nil)

	svc := NewStatusService(mockRepo, mockCache, 15*time.Second)
	require.NoError(t, svc.SetEnabled(false, "Admin"))

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestStatusService_SetEnabled_RepositoryError(t *testing.T) {
	mockRepo := new(MockStatusRepo)
	mockCache := new(MockCacheRepo)

	mockRepo.On("Save", mock.AnythingOfType("*entity.QuizStatus")).Return(assert.AnError)

	svc := NewStatusService(mockRepo, mockCache, 15*time.Second)
	err := svc.SetEnabled(true, "Admin")

	assert.ErrorIs(t, err, apperrors.ErrRepository)
}
