package ladder

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSeed uint32 = 42

func newTestGame(t *testing.T, opts ...Option) (*Game, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	base := []Option{
		WithScheduler(sched),
		WithLogger(zaptest.NewLogger(t)),
		WithSeedSource(func() uint32 { return testSeed }),
	}
	g := New(DefaultConfig(), append(base, opts...)...)
	t.Cleanup(g.Close)
	return g, sched
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Equal(t, want, got.StringFixed(2))
}

func rowTraps(seed uint32, row int) Traps {
	cfg := DefaultConfig()
	return TrapColumns(seed, row, cfg.PadsPerRow, cfg.TrapsForRow(row))
}

func safeCol(t *testing.T, seed uint32, row int) int {
	t.Helper()
	traps := rowTraps(seed, row)
	for col := 0; col < DefaultConfig().PadsPerRow; col++ {
		if !traps.Has(col) {
			return col
		}
	}
	t.Fatalf("row %d has no safe column", row)
	return -1
}

func trapCol(t *testing.T, seed uint32, row int) int {
	t.Helper()
	traps := rowTraps(seed, row)
	require.NotEmpty(t, traps)
	return traps[0]
}

// hopSafely прыгает на безопасную кувшинку текущего ряда и приземляется
func hopSafely(t *testing.T, g *Game) Hop {
	t.Helper()
	row := g.Ledger.Level()
	hop, err := g.Board.OnPadClick(row, safeCol(t, testSeed, row))
	require.NoError(t, err)
	require.False(t, hop.Trap)
	require.NoError(t, g.Board.OnFrogJumpEnd(hop))
	return hop
}
