package entity

import (
	"strconv"
	"time"
)

// UnparsableTimeSeconds - сентинел для строк рейтинга с нечитаемым или
// отсутствующим временем: такие строки сортируются последними среди
// равных по очкам.
const UnparsableTimeSeconds = 999.0

// RankingRow представляет строку рейтинга в том виде, в котором её хранит
// табличное хранилище: все значения текстовые, как в исходной таблице.
// Строки только добавляются; ядро их никогда не изменяет и не удаляет.
type RankingRow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Score     string    `gorm:"size:20;not null;default:'0'" json:"score"`
	TotalTime string    `gorm:"size:20;not null;default:''" json:"total_time"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (RankingRow) TableName() string {
	return "ranking"
}

// RankingEntry - типизированная запись рейтинга. Создаётся ровно один раз
// на завершённую сессию (при разрешении последнего вопроса).
type RankingEntry struct {
	Name             string  `json:"name"`
	Score            int     `json:"score"`
	TotalTimeSeconds float64 `json:"total_time_seconds"`
}

// Row кодирует запись в табличную (текстовую) форму для записи в хранилище.
func (e RankingEntry) Row() RankingRow {
	return RankingRow{
		Name:      e.Name,
		Score:     strconv.Itoa(e.Score),
		TotalTime: strconv.FormatFloat(e.TotalTimeSeconds, 'f', -1, 64),
	}
}

// Entry декодирует табличную строку в типизированную запись, приводя
// испорченные значения: нечитаемые очки -> 0, нечитаемое или отсутствующее
// время -> UnparsableTimeSeconds.
func (r RankingRow) Entry() RankingEntry {
	score, err := strconv.Atoi(r.Score)
	if err != nil || score < 0 {
		score = 0
	}

	totalTime, err := strconv.ParseFloat(r.TotalTime, 64)
	if err != nil || totalTime < 0 {
		totalTime = UnparsableTimeSeconds
	}

	return RankingEntry{
		Name:             r.Name,
		Score:            score,
		TotalTimeSeconds: totalTime,
	}
}
