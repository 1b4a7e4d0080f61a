package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ============================================================================
// Моки для ResultService
// ============================================================================

// MockRankingRepo реализует repository.RankingRepository
type MockRankingRepo struct {
	mock.Mock
}

func (m *MockRankingRepo) Append(row *entity.RankingRow) error {
	args := m.Called(row)
	return args.Error(0)
}

func (m *MockRankingRepo) LoadAll() ([]entity.RankingRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RankingRow), args.Error(1)
}

// ============================================================================
// Тесты сортировки рейтинга
// ============================================================================

func TestResultService_BuildRanking_SortOrder(t *testing.T) {
	mockRepo := new(MockRankingRepo)
	mockRepo.On("LoadAll").Return([]entity.RankingRow{
		{Name: "A", Score: "50", TotalTime: "10.0"},
		{Name: "B", Score: "50", TotalTime: "5.0"},
		{Name: "C", Score: "60", TotalTime: "20.0"},
	}, nil)

	svc := NewResultService(mockRepo, 100)
	ranking := svc.BuildRanking()

	// Очки по убыванию, при равенстве время по возрастанию
	require.Len(t, ranking, 3)
	assert.Equal(t, "C", ranking[0].Name)
	assert.Equal(t, "B", ranking[1].Name)
	assert.Equal(t, "A", ranking[2].Name)

	assert.Equal(t, 1, ranking[0].Position)
	assert.Equal(t, 2, ranking[1].Position)
	assert.Equal(t, 3, ranking[2].Position)
	assert.Equal(t, "5.0", ranking[1].TimeText)
}

func TestResultService_BuildRanking_MalformedRows(t *testing.T) {
	mockRepo := new(MockRankingRepo)
	mockRepo.On("LoadAll").Return([]entity.RankingRow{
		{Name: "Broken", Score: "oops", TotalTime: "abc"},
		{Name: "SlowButValid", Score: "0", TotalTime: "500"},
		{Name: "Valid", Score: "10", TotalTime: "12.5"},
	}, nil)

	svc := NewResultService(mockRepo, 100)
	ranking := svc.BuildRanking()

	require.Len(t, ranking, 3)
	assert.Equal(t, "Valid", ranking[0].Name)
	// Испорченная строка: очки 0, время 999 - последняя среди нулевых
	assert.Equal(t, "SlowButValid", ranking[1].Name)
	assert.Equal(t, "Broken", ranking[2].Name)
	assert.Equal(t, 0, ranking[2].Score)
	assert.Equal(t, entity.UnparsableTimeSeconds, ranking[2].Time)
}

func TestResultService_BuildRanking_TopNTruncation(t *testing.T) {
	rows := make([]entity.RankingRow, 150)
	for i := range rows {
		rows[i] = entity.RankingRow{
			Name:      fmt.Sprintf("player-%d", i),
			Score:     strconv.Itoa(i),
			TotalTime: "10",
		}
	}

	mockRepo := new(MockRankingRepo)
	mockRepo.On("LoadAll").Return(rows, nil)

	svc := NewResultService(mockRepo, 100)
	ranking := svc.BuildRanking()

	require.Len(t, ranking, 100)
	assert.Equal(t, "player-149", ranking[0].Name, "Лучший результат должен быть первым")
	assert.Equal(t, 100, ranking[99].Position)
}

func TestResultService_BuildRanking_RepositoryErrorGivesEmpty(t *testing.T) {
	mockRepo := new(MockRankingRepo)
	mockRepo.On("LoadAll").Return(nil, assert.AnError)

	svc := NewResultService(mockRepo, 100)
	ranking := svc.BuildRanking()

	assert.Empty(t, ranking, "Сбой чтения хранилища - пустой рейтинг, не паника")
}

// ============================================================================
// Тесты экспорта
// ============================================================================

func TestResultService_WriteCSV(t *testing.T) {
	svc := NewResultService(new(MockRankingRepo), 100)

	ranking := []RankedEntry{
		{Position: 1, Name: "Alice", Score: 20, Time: 12.5, TimeText: "12.5"},
		{Position: 2, Name: "=cmd()", Score: 10, Time: 30, TimeText: "30.0"},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(&buf, ranking))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "CSV должен начинаться с UTF-8 BOM")

	reader := csv.NewReader(bytes.NewReader(data[3:]))
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"position", "name", "score", "total_time_seconds"}, records[0])
	assert.Equal(t, []string{"1", "Alice", "20", "12.5"}, records[1])
	assert.Equal(t, "'=cmd()", records[2][1], "Имя-формула должно быть экранировано")
	assert.Equal(t, "30", records[2][3], "Время экспортируется сырым числом")
}

func TestResultService_WriteXLSX(t *testing.T) {
	svc := NewResultService(new(MockRankingRepo), 100)

	ranking := []RankedEntry{
		{Position: 1, Name: "Alice", Score: 20, Time: 12.5, TimeText: "12.5"},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteXLSX(&buf, ranking))
	assert.NotZero(t, buf.Len())
	// XLSX - это zip-архив
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}

func TestSanitizeForExcel(t *testing.T) {
	assert.Equal(t, "Alice", sanitizeForExcel("Alice"))
	assert.Equal(t, "'=1+1", sanitizeForExcel("=1+1"))
	assert.Equal(t, "'+7 900", sanitizeForExcel("+7 900"))
	assert.Equal(t, "'-minus", sanitizeForExcel("-minus"))
	assert.Equal(t, "'@mention", sanitizeForExcel("@mention"))
	assert.Equal(t, "", sanitizeForExcel(""))
}

// ============================================================================
// Тест записи результата
// ============================================================================

func TestResultService_Append(t *testing.T) {
	mockRepo := new(MockRankingRepo)
	mockRepo.On("Append", &entity.RankingRow{
		Name:      "Alice",
		Score:     "20",
		TotalTime: "35",
	}).Return(nil)

	svc := NewResultService(mockRepo, 100)
	err := svc.Append(entity.RankingEntry{Name: "Alice", Score: 20, TotalTimeSeconds: 35.0})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
