package ladder

import (
	"context"
	ladderCore "ladder_backend/internal/ladder"
	"ladder_backend/internal/middleware"
	"ladder_backend/internal/model"
	"ladder_backend/internal/service"

	"github.com/shopspring/decimal"
)

// State текущий снимок игры
func (s *serv) State(ctx context.Context) (*model.LadderState, error) {
	return s.do(ctx, func(*session) error { return nil })
}

// Click прыжок на кувшинку. Первый прыжок списывает ставку и открывает раунд.
func (s *serv) Click(ctx context.Context, row, col int) (*model.ClickResult, error) {
	var hop ladderCore.Hop
	st, err := s.do(ctx, func(sess *session) error {
		var err error
		hop, err = sess.game.Board.OnPadClick(row, col)
		return err
	})
	if st == nil {
		return nil, err
	}

	return &model.ClickResult{Hop: hop, State: *st}, err
}

// Land клиент доиграл анимацию прыжка
func (s *serv) Land(ctx context.Context, hop ladderCore.Hop) (*model.LadderState, error) {
	return s.do(ctx, func(sess *session) error {
		return sess.game.Board.OnFrogJumpEnd(hop)
	})
}

// Collect забрать текущий выигрыш
func (s *serv) Collect(ctx context.Context) (*model.LadderState, error) {
	return s.do(ctx, func(sess *session) error {
		return sess.game.Collect()
	})
}

// Settle клиент доиграл раскрытие доски или оверлей выигрыша
func (s *serv) Settle(ctx context.Context) (*model.LadderState, error) {
	return s.do(ctx, func(sess *session) error {
		return sess.game.Settle()
	})
}

func (s *serv) SetBet(ctx context.Context, index int) (*model.LadderState, error) {
	return s.do(ctx, func(sess *session) error {
		return sess.game.Ledger.SetBetByIndex(index)
	})
}

func (s *serv) IncrementBet(ctx context.Context) (*model.LadderState, error) {
	return s.do(ctx, func(sess *session) error {
		return sess.game.Ledger.IncrementBet()
	})
}

func (s *serv) DecrementBet(ctx context.Context) (*model.LadderState, error) {
	return s.do(ctx, func(sess *session) error {
		return sess.game.Ledger.DecrementBet()
	})
}

// Deposit пополнение баланса между раундами
func (s *serv) Deposit(ctx context.Context, amount decimal.Decimal) (*model.LadderState, error) {
	return s.do(ctx, func(sess *session) error {
		return sess.game.Ledger.Deposit(ladderCore.Round2(amount))
	})
}

// Sound настройки звука сессии
func (s *serv) Sound(ctx context.Context, settings model.SoundSettings) (*model.LadderState, error) {
	return s.do(ctx, func(sess *session) error {
		if settings.Muted != nil {
			sess.game.SetMuted(*settings.Muted)
		}
		if settings.Volume != nil {
			sess.game.SetVolume(*settings.Volume)
		}
		return nil
	})
}

// History последние раунды игрока. Несохранённый журнал сначала сбрасывается в БД.
func (s *serv) History(ctx context.Context, limit int) ([]model.Round, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthorized
	}

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	s.mu.Unlock()
	if ok {
		sess.game.Lock()
		var err error
		if !sess.closed {
			err = s.persist(ctx, sess)
		}
		sess.game.Unlock()
		if err != nil {
			return nil, err
		}
	}

	return s.roundRepo.ListRounds(ctx, userID, limit)
}

// Stats сводка RTP по всем игрокам
func (s *serv) Stats(_ context.Context) model.HouseStats {
	return s.statsRepo.HouseStats()
}
