// Package ladder - ядро игры «лягушка на кувшинках»: кошелёк и жизненный цикл
// раунда (Ledger) и доска с ловушками (Board).
//
// Ledger и Board не потокобезопасны. Game объединяет их под одним мьютексом;
// отложенные действия выполняются через Scheduler, который обязан брать тот же
// мьютекс (см. NewLockedScheduler).
package ladder

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type options struct {
	log     *zap.Logger
	sched   Scheduler
	sound   Sound
	seeds   SeedSource
	now     func() time.Time
	balance decimal.Decimal
}

// Option настраивает Game
type Option func(*options)

func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithScheduler подменяет планировщик. По умолчанию - time.AfterFunc под мьютексом игры.
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.sched = s }
}

func WithSound(s Sound) Option {
	return func(o *options) { o.sound = s }
}

func WithSeedSource(s SeedSource) Option {
	return func(o *options) { o.seeds = s }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithBalance задаёт стартовый баланс вместо Config.StartBalance
func WithBalance(balance decimal.Decimal) Option {
	return func(o *options) { o.balance = balance }
}

// Game - экземпляр игры одного игрока
type Game struct {
	mu sync.Mutex

	Ledger *Ledger
	Board  *Board

	sound Sound
}

// New собирает игру. cfg должен пройти Validate.
func New(cfg Config, opts ...Option) *Game {
	g := &Game{}
	o := options{
		log:     zap.NewNop(),
		sound:   nopSound{},
		seeds:   NewRunSeed,
		now:     time.Now,
		balance: cfg.StartBalance,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sched == nil {
		o.sched = NewLockedScheduler(&g.mu)
	}

	g.sound = o.sound
	g.Ledger = newLedger(cfg, o)
	g.Board = newBoard(cfg, g.Ledger, o)
	return g
}

// SetMuted включает или выключает звук игры
func (g *Game) SetMuted(muted bool) {
	g.sound.SetMuted(muted)
}

// SetVolume передаёт громкость аудио-движку, тот ограничивает её 0..1
func (g *Game) SetVolume(volume float64) {
	g.sound.SetVolume(volume)
}

// Lock захватывает игру. Все вызовы Ledger/Board снаружи пакета делаются под ним.
func (g *Game) Lock() { g.mu.Lock() }

func (g *Game) Unlock() { g.mu.Unlock() }

// Collect забирает выигрыш, если лягушка не в прыжке
func (g *Game) Collect() error {
	if g.Board.IsJumping() {
		return ErrHopInFlight
	}
	return g.Ledger.CollectNow()
}

// CanCollect - предикат для кнопки «забрать»
func (g *Game) CanCollect() bool {
	return !g.Board.IsJumping() && g.Ledger.CanCollect()
}

// Settle - клиент доиграл финальную анимацию раунда
func (g *Game) Settle() error {
	if g.Ledger.FinishReason() == FinishDrop {
		return g.Board.RevealComplete()
	}
	return g.Ledger.Settle(g.Ledger.Run())
}

// Close отменяет все таймеры игры
func (g *Game) Close() {
	g.Board.Close()
	g.Ledger.Close()
}

// RowView - ряд видимого окна
type RowView struct {
	Index      int
	Multiplier decimal.Decimal
	Clickable  bool
	Revealed   bool
	Traps      Traps // только для раскрытых рядов
}

// State - снимок наблюдаемого состояния
type State struct {
	Phase            string
	Run              RunID
	Balance          decimal.Decimal
	Bet              decimal.Decimal
	BetIndex         int
	CanIncrementBet  bool
	CanDecrementBet  bool
	IsPlaying        bool
	Finishing        bool
	Level            int
	LevelsCount      int
	CurrentWin       decimal.Decimal
	NextWinIfAdvance decimal.Decimal
	CanCollect       bool
	FinishReason     FinishReason
	ShowWinOverlay   bool
	OverlayAmount    decimal.Decimal

	FrogRow    int
	FrogCol    int
	FrogPhase  FrogPhase
	RevealAll  bool
	IsJumping  bool
	WindowBase int
	FinalPage  bool
	Rows       []RowView
}

// Snapshot собирает состояние для клиента. Ловушки нераскрытых рядов не попадают в снимок.
func (g *Game) Snapshot() State {
	l, b := g.Ledger, g.Board
	st := State{
		Phase:            l.State(),
		Run:              l.Run(),
		Balance:          l.Balance(),
		Bet:              l.Bet(),
		BetIndex:         l.BetIndex(),
		CanIncrementBet:  l.CanIncrementBet(),
		CanDecrementBet:  l.CanDecrementBet(),
		IsPlaying:        l.IsPlaying(),
		Finishing:        l.Finishing(),
		Level:            l.Level(),
		LevelsCount:      l.LevelsCount(),
		CurrentWin:       l.CurrentWin(),
		NextWinIfAdvance: l.NextWinIfAdvance(),
		CanCollect:       g.CanCollect(),
		FinishReason:     l.FinishReason(),
		ShowWinOverlay:   l.ShowWinOverlay(),
		OverlayAmount:    l.OverlayAmount(),
		FrogRow:          b.FrogRow(),
		FrogCol:          b.FrogCol(),
		FrogPhase:        b.FrogPhase(),
		RevealAll:        b.RevealAll(),
		IsJumping:        b.IsJumping(),
		WindowBase:       b.WindowBase(),
		FinalPage:        b.IsFinalPage(),
	}

	multipliers := l.cfg.Multipliers
	for _, idx := range b.VisibleRows() {
		row := RowView{
			Index:      idx,
			Multiplier: multipliers[idx],
			Clickable:  b.IsRowClickable(idx),
			Revealed:   b.ShouldRevealRow(idx),
		}
		if row.Revealed {
			row.Traps = b.GetTraps(idx)
		}
		st.Rows = append(st.Rows, row)
	}
	return st
}
