package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuizStatus_Enabled_TruthyValues(t *testing.T) {
	for _, value := range []string{"true", "TRUE", " True ", "1", "sim", "habilitado", "ENABLED"} {
		status := &QuizStatus{QuizEnabled: value}
		assert.True(t, status.Enabled(), "Значение %q должно означать включено", value)
	}
}

func TestQuizStatus_Enabled_FalsyValues(t *testing.T) {
	for _, value := range []string{"false", "0", "нет", "off", "", "  "} {
		status := &QuizStatus{QuizEnabled: value}
		assert.False(t, status.Enabled(), "Значение %q должно означать выключено", value)
	}
}

func TestNewQuizStatus(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	on := NewQuizStatus(true, "Admin", at)
	assert.Equal(t, uint(1), on.ID)
	assert.Equal(t, "true", on.QuizEnabled)
	assert.Equal(t, "Admin", on.UpdatedBy)
	assert.Equal(t, at, on.LastUpdated)

	off := NewQuizStatus(false, "Admin", at)
	assert.Equal(t, "false", off.QuizEnabled)
}
