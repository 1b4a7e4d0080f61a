package sessionmanager

import (
	"fmt"
	"math/rand"
	"strings"
)

// Фиксированные наборы реплик обратной связи. Выбор случайный,
// содержание на счёт и время не влияет.
var (
	correctMessages = []string{
		"Excellent!",
		"Nice one!",
		"Correct!",
		"That's it!",
		"Perfect!",
	}

	wrongMessages = []string{
		"Not this time.",
		"Almost!",
		"Oops!",
		"Incorrect answer.",
	}
)

// correctFeedback возвращает случайную реплику для правильного ответа
func correctFeedback() Feedback {
	return Feedback{
		Message: correctMessages[rand.Intn(len(correctMessages))],
		Kind:    FeedbackSuccess,
	}
}

// wrongFeedback возвращает случайную реплику для неправильного ответа,
// раскрывая правильный вариант. Краевые пробелы исходной таблицы срезаются
// здесь, чтобы оба раскрывающих пути выглядели одинаково.
func wrongFeedback(correctAnswer string) Feedback {
	return Feedback{
		Message: fmt.Sprintf("%s The correct answer was: %s", wrongMessages[rand.Intn(len(wrongMessages))], strings.TrimSpace(correctAnswer)),
		Kind:    FeedbackError,
	}
}

// timeoutFeedback возвращает реплику для истёкшего таймера
func timeoutFeedback(correctAnswer string) Feedback {
	return Feedback{
		Message: fmt.Sprintf("Time is up! The answer was: %s", strings.TrimSpace(correctAnswer)),
		Kind:    FeedbackError,
	}
}

// adminGuardFeedback - предупреждение при попытке открыть админ-панель
// без прав администратора
func adminGuardFeedback() Feedback {
	return Feedback{
		Message: "Access denied.",
		Kind:    FeedbackError,
	}
}
