package sessionmanager

import (
	"context"
	"time"
)

// armCountdownLocked взводит обратный отсчёт текущего вопроса: отдельная
// горутина с тикером 1 Гц, отменяемая через контекст. Предыдущий отсчёт,
// если был, гасится. Вызывается под мьютексом сессии.
func (s *Session) armCountdownLocked() {
	s.disarmCountdownLocked()

	ctx, cancel := context.WithCancel(context.Background())
	s.countdownCancel = cancel
	go s.runCountdown(ctx)
}

// disarmCountdownLocked гасит обратный отсчёт. Вызывается под мьютексом.
// Горутина могла уже «пройти» select и ждать мьютекс с готовым тиком -
// такой опоздавший тик обезвреживается проверкой answerSubmitted в
// applyTick, здесь достаточно отмены контекста.
func (s *Session) disarmCountdownLocked() {
	if s.countdownCancel != nil {
		s.countdownCancel()
		s.countdownCancel = nil
	}
}

// runCountdown доставляет тики в редьюсер сессии, пока вопрос не разрешён
// или контекст не отменён. Тикер системный, поэтому накопленный дрейф
// не превышает один тик.
func (s *Session) runCountdown(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.applyTick() {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
