package stats_repo

import (
	"ladder_backend/internal/ladder"
	"ladder_backend/internal/model"
	repoModel "ladder_backend/internal/repository/stats_repo/model"
	"sync"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// StatsRepo хранит состояние заведения в памяти процесса
type StatsRepo struct {
	mtx   sync.RWMutex
	state repoModel.HouseState
}

// NewStatsRepository Конструктор репозитория с пустым состоянием и окном windowSize раундов
func NewStatsRepository(windowSize int) *StatsRepo {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &StatsRepo{
		state: repoModel.HouseState{
			RoundWindow: make([]repoModel.RoundResult, 0, windowSize),
			WindowSize:  windowSize,
		},
	}
}

// UpdateState Обновление состояния после завершения раунда
func (r *StatsRepo) UpdateState(bet, payout decimal.Decimal, reason ladder.FinishReason) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalRounds++
	r.state.TotalBet = r.state.TotalBet.Add(bet)
	r.state.TotalPayout = r.state.TotalPayout.Add(payout)
	r.state.CurrentRTP = rtp(r.state.TotalBet, r.state.TotalPayout)

	switch reason {
	case ladder.FinishCollect:
		r.state.Collected++
	case ladder.FinishDrop:
		r.state.Dropped++
	case ladder.FinishAll:
		r.state.Cleared++
	}

	// Добавляем раунд в окно и поддерживаем его размер
	r.state.RoundWindow = append(r.state.RoundWindow, repoModel.RoundResult{Bet: bet, Payout: payout})
	if len(r.state.RoundWindow) > r.state.WindowSize {
		r.state.RoundWindow = r.state.RoundWindow[1:]
	}

	var windowBet, windowPayout decimal.Decimal
	for _, rd := range r.state.RoundWindow {
		windowBet = windowBet.Add(rd.Bet)
		windowPayout = windowPayout.Add(rd.Payout)
	}
	r.state.WindowRTP = rtp(windowBet, windowPayout)
}

// HouseStats Копия текущих агрегатов
func (r *StatsRepo) HouseStats() model.HouseStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return model.HouseStats{
		Rounds:      r.state.TotalRounds,
		TotalBet:    r.state.TotalBet,
		TotalPayout: r.state.TotalPayout,
		RTP:         r.state.CurrentRTP,
		WindowRTP:   r.state.WindowRTP,
		WindowSize:  r.state.WindowSize,
		Collected:   r.state.Collected,
		Dropped:     r.state.Dropped,
		Cleared:     r.state.Cleared,
	}
}

func rtp(bet, payout decimal.Decimal) decimal.Decimal {
	if !bet.IsPositive() {
		return decimal.Zero
	}
	return payout.Div(bet).Mul(hundred).Round(2)
}
