package ladder

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TrapBand задаёт количество ловушек для диапазона рядов [FromRow, ToRow]
type TrapBand struct {
	FromRow int
	ToRow   int
	Traps   int
}

// Timings - задержки визуальных фаз раунда. Все значения - верхние границы:
// клиент может завершить фазу раньше через Settle / RevealComplete.
type Timings struct {
	WinOverlayDelay    time.Duration // пауза после приземления перед показом оверлея выигрыша
	WinOverlayDuration time.Duration // сколько висит оверлей выигрыша до сброса
	LossReveal         time.Duration // сколько длится раскрытие ловушек после проигрыша
	TrapSettle         time.Duration // пауза между приземлением на ловушку и раскрытием доски
}

// Config - таблицы выплат и параметры доски
type Config struct {
	Multipliers     []decimal.Decimal
	BetSteps        []decimal.Decimal
	DefaultBetIndex int
	StartBalance    decimal.Decimal

	// MaxDeposit - наибольшее разовое пополнение
	MaxDeposit decimal.Decimal
	// MaxBalance - потолок баланса, совпадает с колонкой users.balance NUMERIC(14,2).
	// Пополнение должно оставлять под потолком место для крупнейшей выплаты.
	MaxBalance decimal.Decimal

	PadsPerRow  int
	WindowSize  int
	TrapDensity []TrapBand
	PreviewSeed uint32

	Timings Timings
}

// DefaultConfig возвращает конфигурацию оригинальной игры
func DefaultConfig() Config {
	return Config{
		Multipliers: decimals(1.2, 1.5, 1.9, 2.4, 3, 5, 8, 14, 23, 30, 100, 250, 600, 1500),
		BetSteps:    decimals(0.3, 0.5, 1, 1.5, 2, 2.5, 3, 4, 5, 6, 7, 8, 9, 10, 15, 20),
		// BetSteps[2] == 1
		DefaultBetIndex: 2,
		StartBalance:    decimal.NewFromInt(100),
		MaxDeposit:      decimal.NewFromInt(10000),
		MaxBalance:      decimal.RequireFromString("999999999999.99"),
		PadsPerRow:      5,
		WindowSize:      5,
		TrapDensity: []TrapBand{
			{FromRow: 0, ToRow: 4, Traps: 1},
			{FromRow: 5, ToRow: 8, Traps: 2},
			{FromRow: 9, ToRow: 11, Traps: 3},
			{FromRow: 12, ToRow: 13, Traps: 4},
		},
		PreviewSeed: 123456789,
		Timings: Timings{
			WinOverlayDelay:    220 * time.Millisecond,
			WinOverlayDuration: 2200 * time.Millisecond,
			LossReveal:         900 * time.Millisecond,
			TrapSettle:         10 * time.Millisecond,
		},
	}
}

// LevelsCount - число рядов лестницы
func (c Config) LevelsCount() int {
	return len(c.Multipliers)
}

// TopPayout - крупнейшая выплата за раунд: максимальная ставка на последнем ряду
func (c Config) TopPayout() decimal.Decimal {
	if len(c.BetSteps) == 0 || len(c.Multipliers) == 0 {
		return decimal.Zero
	}
	return Round2(c.BetSteps[len(c.BetSteps)-1].Mul(c.Multipliers[len(c.Multipliers)-1]))
}

// DepositCeiling - баланс, выше которого пополнение запрещено
func (c Config) DepositCeiling() decimal.Decimal {
	return c.MaxBalance.Sub(c.TopPayout())
}

// TrapsForRow возвращает количество ловушек в ряду. Ряды за пределами таблицы
// получают плотность последней полосы. Результат никогда не превышает PadsPerRow-1.
func (c Config) TrapsForRow(row int) int {
	want := 0
	for _, b := range c.TrapDensity {
		if row >= b.FromRow && row <= b.ToRow {
			want = b.Traps
			break
		}
	}
	if want == 0 && len(c.TrapDensity) > 0 && row > c.TrapDensity[len(c.TrapDensity)-1].ToRow {
		want = c.TrapDensity[len(c.TrapDensity)-1].Traps
	}
	if want > c.PadsPerRow-1 {
		want = c.PadsPerRow - 1
	}
	if want < 0 {
		want = 0
	}
	return want
}

// Validate проверяет согласованность таблиц
func (c Config) Validate() error {
	if len(c.Multipliers) == 0 {
		return errors.New("multipliers are empty")
	}
	if err := ascending("multipliers", c.Multipliers); err != nil {
		return err
	}
	if len(c.BetSteps) == 0 {
		return errors.New("bet steps are empty")
	}
	if err := ascending("bet steps", c.BetSteps); err != nil {
		return err
	}
	if c.DefaultBetIndex < 0 || c.DefaultBetIndex >= len(c.BetSteps) {
		return fmt.Errorf("default bet index %d out of range [0, %d)", c.DefaultBetIndex, len(c.BetSteps))
	}
	if c.StartBalance.IsNegative() {
		return errors.New("start balance is negative")
	}
	if !c.MaxDeposit.IsPositive() {
		return errors.New("max deposit must be positive")
	}
	if !c.DepositCeiling().GreaterThanOrEqual(c.StartBalance) {
		return fmt.Errorf("max balance %s leaves no room for start balance %s and top payout %s",
			c.MaxBalance, c.StartBalance, c.TopPayout())
	}
	if c.PadsPerRow < 2 {
		return fmt.Errorf("pads per row must be at least 2, got %d", c.PadsPerRow)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window size must be positive, got %d", c.WindowSize)
	}
	for row := 0; row < c.LevelsCount(); row++ {
		covered := false
		for _, b := range c.TrapDensity {
			if row >= b.FromRow && row <= b.ToRow {
				covered = true
				break
			}
		}
		if !covered {
			return fmt.Errorf("trap density does not cover row %d", row)
		}
	}
	for _, b := range c.TrapDensity {
		if b.Traps < 1 || b.Traps > c.PadsPerRow-1 {
			return fmt.Errorf("rows %d-%d: trap count %d out of range [1, %d]", b.FromRow, b.ToRow, b.Traps, c.PadsPerRow-1)
		}
	}
	t := c.Timings
	if t.WinOverlayDelay < 0 || t.WinOverlayDuration < 0 || t.LossReveal < 0 || t.TrapSettle < 0 {
		return errors.New("timings must not be negative")
	}
	return nil
}

func ascending(name string, values []decimal.Decimal) error {
	for i, v := range values {
		if !v.IsPositive() {
			return fmt.Errorf("%s[%d] must be positive, got %s", name, i, v)
		}
		if i > 0 && !v.GreaterThan(values[i-1]) {
			return fmt.Errorf("%s must be strictly ascending at index %d", name, i)
		}
	}
	return nil
}

func decimals(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

// Round2 округляет сумму до центов
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format форматирует сумму с двумя знаками после запятой
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
