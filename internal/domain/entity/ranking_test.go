package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankingEntry_Row_RoundTrip(t *testing.T) {
	entry := RankingEntry{Name: "Alice", Score: 20, TotalTimeSeconds: 35.5}

	row := entry.Row()
	assert.Equal(t, "20", row.Score)
	assert.Equal(t, "35.5", row.TotalTime)
	assert.Equal(t, entry, row.Entry())
}

func TestRankingRow_Entry_MalformedValues(t *testing.T) {
	// Нечитаемые очки приводятся к нулю
	broken := RankingRow{Name: "X", Score: "oops", TotalTime: "abc"}.Entry()
	assert.Equal(t, 0, broken.Score)
	assert.Equal(t, UnparsableTimeSeconds, broken.TotalTimeSeconds)

	// Отрицательные значения тоже считаются испорченными
	negative := RankingRow{Name: "Y", Score: "-5", TotalTime: "-1"}.Entry()
	assert.Equal(t, 0, negative.Score)
	assert.Equal(t, UnparsableTimeSeconds, negative.TotalTimeSeconds)

	// Пустое время - сентинел
	empty := RankingRow{Name: "Z", Score: "10", TotalTime: ""}.Entry()
	assert.Equal(t, 10, empty.Score)
	assert.Equal(t, UnparsableTimeSeconds, empty.TotalTimeSeconds)
}
