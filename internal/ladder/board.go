package ladder

import (
	"time"

	"go.uber.org/zap"
)

// FrogPhase - фаза анимации лягушки
type FrogPhase string

const (
	FrogIdle FrogPhase = "idle"
	FrogJump FrogPhase = "jump"
	FrogCurl FrogPhase = "curl" // проигрыш
)

// RockRow - лягушка на стартовом камне
const RockRow = -1

// Hop - прыжок, исход которого решён в момент клика и применяется
// в OnFrogJumpEnd, когда клиент доиграл анимацию
type Hop struct {
	Seq      uint64
	Run      RunID
	Row      int
	Col      int
	Trap     bool
	Starting bool // прыжок открыл раунд
}

// Board - доска: генерация ловушек, положение лягушки, раскрытие рядов
type Board struct {
	cfg    Config
	ledger *Ledger
	log    *zap.Logger
	sched  Scheduler
	sound  Sound
	seeds  SeedSource

	runSeed    uint32
	hasSeed    bool
	frogRow    int
	frogCol    int
	frogPhase  FrogPhase
	revealed   map[int]bool
	revealAll  bool
	hop        *Hop
	hopSeq     uint64
	windowBase int

	timers timerSet
}

func newBoard(cfg Config, ledger *Ledger, o options) *Board {
	b := &Board{
		cfg:    cfg,
		ledger: ledger,
		log:    o.log,
		sched:  o.sched,
		sound:  o.sound,
		seeds:  o.seeds,
	}
	b.reset()
	ledger.OnReset(b.reset)
	return b
}

// GetTraps возвращает ловушки ряда. До начала раунда используется
// фиксированный сид предпросмотра.
func (b *Board) GetTraps(row int) Traps {
	seed := b.cfg.PreviewSeed
	if b.hasSeed {
		seed = b.runSeed
	}
	return TrapColumns(seed, row, b.cfg.PadsPerRow, b.cfg.TrapsForRow(row))
}

// IsRowClickable - можно ли прыгать на ряд. Интерактивен только следующий ряд.
func (b *Board) IsRowClickable(row int) bool {
	l := b.ledger
	if b.revealAll || b.hop != nil || l.ShowWinOverlay() || l.Finishing() {
		return false
	}
	canStartNewRun := !l.IsPlaying() && l.Level() == 0
	return row == l.Level() && (l.IsPlaying() || canStartNewRun)
}

// OnPadClick начинает прыжок. Исход вычисляется сразу и возвращается
// как Hop; применяется он в OnFrogJumpEnd.
func (b *Board) OnPadClick(row, col int) (Hop, error) {
	if col < 0 || col >= b.cfg.PadsPerRow {
		return Hop{}, ErrBadColumn
	}
	if !b.IsRowClickable(row) || b.ledger.Level() >= b.ledger.LevelsCount() {
		return Hop{}, ErrRowLocked
	}

	starting := !b.ledger.IsPlaying()
	run, err := b.ledger.StartRun()
	if err != nil {
		return Hop{}, err
	}
	b.ensureRunSeed()

	b.frogRow = row
	b.frogCol = col
	b.frogPhase = FrogJump
	b.hopSeq++

	hop := Hop{
		Seq:      b.hopSeq,
		Run:      run,
		Row:      row,
		Col:      col,
		Trap:     b.GetTraps(row).Has(col),
		Starting: starting,
	}
	b.hop = &hop
	b.sound.PlaySfx(SfxJump)

	return hop, nil
}

// OnFrogJumpEnd применяет исход прыжка h. Повторный или чужой вызов
// отклоняется.
func (b *Board) OnFrogJumpEnd(h Hop) error {
	if b.hop == nil {
		return ErrNoHop
	}
	if b.hop.Seq != h.Seq {
		return ErrStaleHop
	}
	hop := *b.hop

	b.frogPhase = FrogIdle

	if hop.Trap {
		b.sound.PlaySfx(SfxSplash)
		// hop остаётся занятым до раскрытия, доска не кликабельна
		b.after(b.cfg.Timings.TrapSettle, func() { b.revealLoss(hop) })
		return nil
	}

	b.revealed[hop.Row] = true
	b.sound.PlaySfx(SfxLand)
	if err := b.ledger.AdvanceOneLevel(hop.Run); err != nil {
		b.log.Warn("advance after landing rejected", zap.Error(err), zap.Uint64("run", uint64(hop.Run)))
	}
	b.hop = nil
	b.syncWindow()
	return nil
}

// RevealComplete - клиент доиграл раскрытие доски после проигрыша
func (b *Board) RevealComplete() error {
	if !b.revealAll {
		return ErrRevealPending
	}
	return b.ledger.Settle(b.ledger.Run())
}

func (b *Board) revealLoss(hop Hop) {
	if b.hop == nil || b.hop.Seq != hop.Seq {
		return
	}
	for i := 0; i < b.ledger.LevelsCount(); i++ {
		b.revealed[i] = true
	}
	b.revealAll = true
	b.frogPhase = FrogCurl
	b.sound.PlaySfx(SfxDrown)

	if err := b.ledger.DropNow(hop.Run); err != nil {
		b.log.Warn("drop after trap rejected", zap.Error(err), zap.Uint64("run", uint64(hop.Run)))
	}
	b.hop = nil
	b.syncWindow()
}

// after - отменяемая задержка; при нулевой длительности f выполняется сразу
func (b *Board) after(d time.Duration, f func()) {
	if d <= 0 {
		f()
		return
	}
	b.timers.add(b.sched.AfterFunc(d, f))
}

func (b *Board) ensureRunSeed() {
	if b.hasSeed {
		return
	}
	b.runSeed = b.seeds()
	b.hasSeed = true
	b.ledger.seed = b.runSeed
}

// syncWindow выравнивает окно по текущему уровню; во время прыжка окно заморожено
func (b *Board) syncWindow() {
	if b.hop != nil {
		return
	}
	base := b.ledger.Level() / b.cfg.WindowSize * b.cfg.WindowSize
	base = max(0, min(b.ledger.LevelsCount()-1, base))
	if base != b.windowBase {
		b.windowBase = base
		b.sound.PlaySfx(SfxLilyAppear)
	}
}

func (b *Board) reset() {
	b.timers.stopAll()
	b.frogRow = RockRow
	b.frogCol = b.cfg.PadsPerRow / 2
	b.frogPhase = FrogIdle
	b.revealed = make(map[int]bool)
	b.revealAll = false
	b.runSeed = 0
	b.hasSeed = false
	b.hop = nil
	b.windowBase = 0
}

// Close отменяет отложенные раскрытия
func (b *Board) Close() {
	b.timers.stopAll()
}

// ---------- Наблюдаемое состояние ----------

func (b *Board) FrogRow() int { return b.frogRow }

func (b *Board) FrogCol() int { return b.frogCol }

func (b *Board) FrogPhase() FrogPhase { return b.frogPhase }

func (b *Board) RevealAll() bool { return b.revealAll }

func (b *Board) IsJumping() bool { return b.hop != nil }

// InFlight - прыжок, ожидающий приземления
func (b *Board) InFlight() (Hop, bool) {
	if b.hop == nil {
		return Hop{}, false
	}
	return *b.hop, true
}

// RunSeed - сид текущего раунда, если он уже выбран
func (b *Board) RunSeed() (uint32, bool) {
	return b.runSeed, b.hasSeed
}

// ShouldRevealRow - показывать ли ловушки ряда
func (b *Board) ShouldRevealRow(row int) bool {
	return b.revealAll || b.revealed[row]
}

// RevealedRows - раскрытые ряды по возрастанию
func (b *Board) RevealedRows() []int {
	out := make([]int, 0, len(b.revealed))
	for row := 0; row < b.ledger.LevelsCount(); row++ {
		if b.ShouldRevealRow(row) {
			out = append(out, row)
		}
	}
	return out
}

func (b *Board) WindowBase() int { return b.windowBase }

// VisibleRows - индексы рядов текущего окна сверху вниз
func (b *Board) VisibleRows() []int {
	size := b.PageSize()
	out := make([]int, 0, size)
	for idx := b.windowBase + size - 1; idx >= b.windowBase; idx-- {
		out = append(out, idx)
	}
	return out
}

// PageSize - число рядов в окне; последнее окно может быть короче
func (b *Board) PageSize() int {
	remaining := max(0, b.ledger.LevelsCount()-b.windowBase)
	return min(b.cfg.WindowSize, remaining)
}

func (b *Board) IsFinalPage() bool {
	return b.PageSize() < b.cfg.WindowSize
}
