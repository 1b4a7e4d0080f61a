package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// RankedEntry - строка итогового рейтинга с позицией (с единицы) и
// отформатированным временем для показа. Сырое числовое время сохраняется
// для экспорта.
type RankedEntry struct {
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Score    int     `json:"score"`
	Time     float64 `json:"total_time_seconds"`
	TimeText string  `json:"time_text"` // Время с одним знаком после запятой
}

// ResultService - агрегатор рейтинга: детерминированная сортировка строк
// хранилища в отображаемый топ и два формата экспорта, выводимых из ОДНОЙ
// и той же отсортированной последовательности (защита от расхождения
// экспорта и экрана).
type ResultService struct {
	rankingRepo repository.RankingRepository
	limit       int
}

// NewResultService создает новый сервис рейтинга
func NewResultService(rankingRepo repository.RankingRepository, limit int) *ResultService {
	if limit <= 0 {
		limit = 100
	}
	return &ResultService{
		rankingRepo: rankingRepo,
		limit:       limit,
	}
}

// Append добавляет результат завершённой сессии в хранилище
func (s *ResultService) Append(entry entity.RankingEntry) error {
	row := entry.Row()
	return s.rankingRepo.Append(&row)
}

// BuildRanking читает все строки рейтинга и собирает отображаемый топ.
// Сбой чтения хранилища трактуется как пустой рейтинг: экран результатов
// важнее одной неудачной выборки.
func (s *ResultService) BuildRanking() []RankedEntry {
	rows, err := s.rankingRepo.LoadAll()
	if err != nil {
		log.Printf("[ResultService] Ошибка чтения рейтинга, показываю пустой: %v", err)
		return []RankedEntry{}
	}
	return s.rank(rows)
}

// rank приводит строки к типизированному виду, сортирует и усекает до топ-N.
// Порядок: очки по убыванию, при равенстве - время по возрастанию (быстрее
// выигрывает). Испорченные строки получают очки 0 и время-сентинел 999,
// поэтому оказываются последними среди равных по очкам.
func (s *ResultService) rank(rows []entity.RankingRow) []RankedEntry {
	entries := make([]entity.RankingEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.Entry())
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].TotalTimeSeconds < entries[j].TotalTimeSeconds
	})

	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	ranked := make([]RankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = RankedEntry{
			Position: i + 1,
			Name:     e.Name,
			Score:    e.Score,
			Time:     e.TotalTimeSeconds,
			TimeText: fmt.Sprintf("%.1f", e.TotalTimeSeconds),
		}
	}
	return ranked
}

// WriteCSV пишет переданный (уже отсортированный) рейтинг в CSV.
// Время экспортируется сырым числом, не отображаемой строкой.
func (s *ResultService) WriteCSV(w io.Writer, ranking []RankedEntry) error {
	// BOM для корректного отображения UTF-8 в Excel
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"position", "name", "score", "total_time_seconds"}); err != nil {
		return err
	}

	for _, e := range ranking {
		record := []string{
			strconv.Itoa(e.Position),
			sanitizeForExcel(e.Name),
			strconv.Itoa(e.Score),
			strconv.FormatFloat(e.Time, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX пишет переданный рейтинг в Excel через StreamWriter
func (s *ResultService) WriteXLSX(w io.Writer, ranking []RankedEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Ranking"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	headers := []interface{}{"position", "name", "score", "total_time_seconds"}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, e := range ranking {
		cell := fmt.Sprintf("A%d", i+2) // Строка 1 - заголовки
		row := []interface{}{e.Position, sanitizeForExcel(e.Name), e.Score, e.Time}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}

	return f.Write(w)
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
