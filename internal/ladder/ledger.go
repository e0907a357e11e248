package ladder

import (
	"context"
	"time"

	"github.com/looplab/fsm"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RunID - поколение раунда. Увеличивается при каждом успешном StartRun,
// отложенные действия прошлого раунда по нему отбрасываются.
type RunID uint64

// FinishReason - причина завершения раунда
type FinishReason string

const (
	FinishNone    FinishReason = ""
	FinishCollect FinishReason = "collect"
	FinishDrop    FinishReason = "drop"
	FinishAll     FinishReason = "all"
)

// Состояния и события жизненного цикла раунда
const (
	StateIdle      = "idle"
	StatePlaying   = "playing"
	StateFinishing = "finishing"

	eventStart  = "start"
	eventFinish = "finish"
	eventReset  = "reset"
)

// JournalKind - тип записи журнала
type JournalKind string

const (
	JournalBet     JournalKind = "bet"
	JournalPayout  JournalKind = "payout"
	JournalFinish  JournalKind = "finish"
	JournalDeposit JournalKind = "deposit"
)

// JournalEntry - движение денег или итог раунда. Balance - баланс после записи.
type JournalEntry struct {
	Run       RunID
	Kind      JournalKind
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	Bet       decimal.Decimal
	Level     int
	Reason    FinishReason
	Seed      uint32
	StartedAt time.Time
	At        time.Time
}

// Ledger - кошелёк и жизненный цикл раунда
type Ledger struct {
	cfg   Config
	log   *zap.Logger
	sched Scheduler
	sound Sound
	now   func() time.Time

	lifecycle *fsm.FSM

	balance        decimal.Decimal
	betIndex       int
	level          int
	currentWin     decimal.Decimal
	finishReason   FinishReason
	showWinOverlay bool
	overlayAmount  decimal.Decimal

	run       RunID
	seed      uint32
	startedAt time.Time

	timers  timerSet
	journal []JournalEntry
	onReset []func()
}

func newLedger(cfg Config, o options) *Ledger {
	l := &Ledger{
		cfg:      cfg,
		log:      o.log,
		sched:    o.sched,
		sound:    o.sound,
		now:      o.now,
		balance:  Round2(o.balance),
		betIndex: cfg.DefaultBetIndex,
	}
	l.lifecycle = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventStart, Src: []string{StateIdle}, Dst: StatePlaying},
			{Name: eventFinish, Src: []string{StatePlaying}, Dst: StateFinishing},
			{Name: eventReset, Src: []string{StateFinishing}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				l.log.Debug("run state changed",
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
					zap.Uint64("run", uint64(l.run)),
				)
			},
		},
	)
	return l
}

// StartRun списывает ставку и открывает раунд. Если раунд уже идёт,
// возвращает его токен без изменений.
func (l *Ledger) StartRun() (RunID, error) {
	switch l.lifecycle.Current() {
	case StatePlaying:
		return l.run, nil
	case StateFinishing:
		return l.run, ErrFinishing
	}

	bet := l.Bet()
	if l.balance.LessThan(bet) {
		l.sound.PlaySfx(SfxNoMoney)
		return l.run, ErrInsufficientBalance
	}

	if err := l.lifecycle.Event(context.Background(), eventStart); err != nil {
		return l.run, err
	}

	l.run++
	l.balance = Round2(l.balance.Sub(bet))
	l.level = 0
	l.currentWin = decimal.Zero
	l.seed = 0
	l.startedAt = l.now()
	l.record(JournalBet, bet)

	l.log.Debug("run started",
		zap.Uint64("run", uint64(l.run)),
		zap.String("bet", Format(bet)),
		zap.String("balance", Format(l.balance)),
	)
	return l.run, nil
}

// AdvanceOneLevel засчитывает пройденный ряд. Выигрыш не накапливается:
// это всегда ставка × множитель нового уровня. Прохождение последнего ряда
// завершает раунд с причиной FinishAll.
func (l *Ledger) AdvanceOneLevel(run RunID) error {
	if err := l.checkPlaying(run); err != nil {
		return err
	}
	if l.level >= l.LevelsCount() {
		return ErrLadderComplete
	}

	newWin := Round2(l.Bet().Mul(l.cfg.Multipliers[l.level]))
	l.currentWin = newWin
	l.level++

	l.log.Debug("level cleared",
		zap.Uint64("run", uint64(run)),
		zap.Int("level", l.level),
		zap.String("win", Format(newWin)),
	)

	if l.level == l.LevelsCount() {
		l.finish(FinishAll, newWin)
	}
	return nil
}

// CollectNow забирает текущий выигрыш
func (l *Ledger) CollectNow() error {
	if err := l.checkPlaying(l.run); err != nil {
		return err
	}
	l.finish(FinishCollect, l.currentWin)
	return nil
}

// DropNow завершает раунд проигрышем
func (l *Ledger) DropNow(run RunID) error {
	if err := l.checkPlaying(run); err != nil {
		return err
	}
	l.finish(FinishDrop, decimal.Zero)
	return nil
}

// Settle - сигнал от клиента, что анимация завершения (раскрытие ловушек
// или оверлей выигрыша) отыграла. Сбрасывает раунд не дожидаясь таймера.
func (l *Ledger) Settle(run RunID) error {
	if run != l.run {
		return ErrStaleRun
	}
	if !l.lifecycle.Is(StateFinishing) {
		return ErrNotFinishing
	}
	l.reset()
	return nil
}

// Close отменяет все отложенные действия
func (l *Ledger) Close() {
	l.timers.stopAll()
}

func (l *Ledger) checkPlaying(run RunID) error {
	switch {
	case l.lifecycle.Is(StateFinishing):
		return ErrFinishing
	case !l.lifecycle.Is(StatePlaying):
		return ErrNotPlaying
	case run != l.run:
		return ErrStaleRun
	}
	return nil
}

func (l *Ledger) finish(reason FinishReason, amount decimal.Decimal) {
	if err := l.lifecycle.Event(context.Background(), eventFinish); err != nil {
		l.log.Error("finish transition rejected", zap.Error(err), zap.Uint64("run", uint64(l.run)))
		return
	}

	l.finishReason = reason
	// Зачисление до показа оверлея, чтобы баланс на экране был уже новым
	if amount.IsPositive() {
		l.balance = Round2(l.balance.Add(amount))
		l.record(JournalPayout, amount)
	}
	l.overlayAmount = amount
	l.record(JournalFinish, amount)

	l.log.Info("run finished",
		zap.Uint64("run", uint64(l.run)),
		zap.String("reason", string(reason)),
		zap.Int("level", l.level),
		zap.String("amount", Format(amount)),
		zap.String("balance", Format(l.balance)),
	)

	if amount.IsPositive() {
		l.schedule(l.cfg.Timings.WinOverlayDelay, l.showOverlay)
		return
	}
	l.schedule(l.cfg.Timings.LossReveal, l.reset)
}

func (l *Ledger) showOverlay() {
	l.showWinOverlay = true
	l.sound.PlaySfx(SfxWin)
	l.schedule(l.cfg.Timings.WinOverlayDuration, l.reset)
}

// schedule откладывает f в рамках текущего раунда. Колбэк, переживший свой
// раунд, ничего не делает.
func (l *Ledger) schedule(d time.Duration, f func()) {
	run := l.run
	l.timers.add(l.sched.AfterFunc(d, func() {
		if l.run != run || !l.lifecycle.Is(StateFinishing) {
			return
		}
		f()
	}))
}

func (l *Ledger) reset() {
	l.timers.stopAll()
	if err := l.lifecycle.Event(context.Background(), eventReset); err != nil {
		l.log.Error("reset transition rejected", zap.Error(err), zap.Uint64("run", uint64(l.run)))
		return
	}

	l.level = 0
	l.currentWin = decimal.Zero
	l.finishReason = FinishNone
	l.showWinOverlay = false
	l.overlayAmount = decimal.Zero
	l.seed = 0

	for _, fn := range l.onReset {
		fn()
	}
}

func (l *Ledger) record(kind JournalKind, amount decimal.Decimal) {
	l.journal = append(l.journal, JournalEntry{
		Run:       l.run,
		Kind:      kind,
		Amount:    amount,
		Balance:   l.balance,
		Bet:       l.Bet(),
		Level:     l.level,
		Reason:    l.finishReason,
		Seed:      l.seed,
		StartedAt: l.startedAt,
		At:        l.now(),
	})
}

// OnReset регистрирует обработчик возврата в idle
func (l *Ledger) OnReset(fn func()) {
	l.onReset = append(l.onReset, fn)
}

// DrainJournal возвращает накопленные записи и очищает журнал
func (l *Ledger) DrainJournal() []JournalEntry {
	out := l.journal
	l.journal = nil
	return out
}

// Requeue возвращает записи, которые не удалось сохранить, в начало журнала
func (l *Ledger) Requeue(entries []JournalEntry) {
	if len(entries) == 0 {
		return
	}
	l.journal = append(append([]JournalEntry{}, entries...), l.journal...)
}

// Deposit пополняет баланс вне раунда. Сумма ограничена MaxDeposit,
// итоговый баланс - DepositCeiling.
func (l *Ledger) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(l.cfg.MaxDeposit) {
		return ErrInvalidAmount
	}
	if !l.lifecycle.Is(StateIdle) {
		return ErrRunActive
	}
	balance := Round2(l.balance.Add(amount))
	if balance.GreaterThan(l.cfg.DepositCeiling()) {
		return ErrBalanceLimit
	}
	l.balance = balance
	l.record(JournalDeposit, amount)
	return nil
}

// ---------- Ставка ----------

// IncrementBet повышает ставку на шаг
func (l *Ledger) IncrementBet() error {
	return l.SetBetByIndex(l.betIndex + 1)
}

// DecrementBet понижает ставку на шаг
func (l *Ledger) DecrementBet() error {
	return l.SetBetByIndex(l.betIndex - 1)
}

// SetBetByIndex выставляет ставку по индексу, выход за границы обрезается
func (l *Ledger) SetBetByIndex(idx int) error {
	if l.IsPlaying() {
		return ErrRunActive
	}
	l.betIndex = max(0, min(len(l.cfg.BetSteps)-1, idx))
	return nil
}

func (l *Ledger) CanIncrementBet() bool {
	return !l.IsPlaying() && l.betIndex < len(l.cfg.BetSteps)-1
}

func (l *Ledger) CanDecrementBet() bool {
	return !l.IsPlaying() && l.betIndex > 0
}

// ---------- Наблюдаемое состояние ----------

func (l *Ledger) Balance() decimal.Decimal { return l.balance }

func (l *Ledger) Bet() decimal.Decimal { return l.cfg.BetSteps[l.betIndex] }

func (l *Ledger) BetIndex() int { return l.betIndex }

// IsPlaying истинно от StartRun до завершения сброса
func (l *Ledger) IsPlaying() bool { return !l.lifecycle.Is(StateIdle) }

// Finishing истинно между завершением раунда и сбросом
func (l *Ledger) Finishing() bool { return l.lifecycle.Is(StateFinishing) }

// State - текущее состояние жизненного цикла
func (l *Ledger) State() string { return l.lifecycle.Current() }

func (l *Ledger) Level() int { return l.level }

func (l *Ledger) LevelsCount() int { return l.cfg.LevelsCount() }

func (l *Ledger) CurrentWin() decimal.Decimal { return l.currentWin }

func (l *Ledger) FinishReason() FinishReason { return l.finishReason }

func (l *Ledger) ShowWinOverlay() bool { return l.showWinOverlay }

func (l *Ledger) OverlayAmount() decimal.Decimal { return l.overlayAmount }

// Run - токен текущего (или последнего) раунда
func (l *Ledger) Run() RunID { return l.run }

// CanCollect - есть что забрать
func (l *Ledger) CanCollect() bool {
	return l.lifecycle.Is(StatePlaying) && l.level > 0
}

// NextWinIfAdvance - выигрыш после прохождения следующего ряда
func (l *Ledger) NextWinIfAdvance() decimal.Decimal {
	if l.level < l.LevelsCount() {
		return Round2(l.Bet().Mul(l.cfg.Multipliers[l.level]))
	}
	return l.currentWin
}

// Multipliers - таблица множителей (копия)
func (l *Ledger) Multipliers() []decimal.Decimal {
	return append([]decimal.Decimal(nil), l.cfg.Multipliers...)
}

// BetSteps - допустимые ставки (копия)
func (l *Ledger) BetSteps() []decimal.Decimal {
	return append([]decimal.Decimal(nil), l.cfg.BetSteps...)
}
