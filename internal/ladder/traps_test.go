package ladder

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrapColumns_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	seeds := []uint32{0, 1, testSeed, cfg.PreviewSeed, 0xffffffff, 2654435761}

	for _, seed := range seeds {
		for row := 0; row < cfg.LevelsCount(); row++ {
			want := cfg.TrapsForRow(row)
			first := TrapColumns(seed, row, cfg.PadsPerRow, want)
			second := TrapColumns(seed, row, cfg.PadsPerRow, want)

			require.Equal(t, first, second, "seed %d row %d", seed, row)
			require.Len(t, first, want, "seed %d row %d", seed, row)
			require.Less(t, len(first), cfg.PadsPerRow)

			seen := map[int]bool{}
			for i, col := range first {
				require.GreaterOrEqual(t, col, 0)
				require.Less(t, col, cfg.PadsPerRow)
				require.False(t, seen[col], "duplicate column %d", col)
				seen[col] = true
				if i > 0 {
					require.Greater(t, col, first[i-1])
				}
			}
		}
	}
}

func TestTrapColumns_ExactArithmetic(t *testing.T) {
	// lcgMul*x для этих сидов больше 2^53
	for _, seed := range []uint32{0xffffffff, 0x80000001, testSeed} {
		x := new(big.Int).SetUint64(uint64(seed ^ uint32(rowMixMul)))
		x.Mul(x, big.NewInt(lcgMul)).Add(x, big.NewInt(lcgInc)).Mod(x, big.NewInt(lcgMod))
		col := int(new(big.Int).Mod(x, big.NewInt(5)).Int64())

		require.Equal(t, Traps{col}, TrapColumns(seed, 0, 5, 1), "seed %d", seed)
	}
}

func TestTrapColumns_NeverFillsRow(t *testing.T) {
	traps := TrapColumns(testSeed, 3, 5, 10)
	require.Len(t, traps, 4)

	require.Empty(t, TrapColumns(testSeed, 3, 5, 0))
}

func TestTrapColumns_RowsDiffer(t *testing.T) {
	// разные ряды смешиваются с сидом по-разному, хотя бы один ряд отличается от нулевого
	base := TrapColumns(testSeed, 0, 5, 2)
	differs := false
	for row := 1; row < 14; row++ {
		if !equalTraps(base, TrapColumns(testSeed, row, 5, 2)) {
			differs = true
			break
		}
	}
	require.True(t, differs)
}

func TestConfig_TrapsForRow(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		row  int
		want int
	}{
		{0, 1}, {4, 1},
		{5, 2}, {8, 2},
		{9, 3}, {11, 3},
		{12, 4}, {13, 4},
		{20, 4},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, cfg.TrapsForRow(tt.row), "row %d", tt.row)
	}
}

func TestBoard_GetTrapsUsesPreviewSeedBeforeRun(t *testing.T) {
	g, _ := newTestGame(t)
	cfg := DefaultConfig()

	for row := 0; row < cfg.LevelsCount(); row++ {
		require.Equal(t, rowTraps(cfg.PreviewSeed, row), g.Board.GetTraps(row))
	}
}

func TestBoard_GetTrapsStableWithinRun(t *testing.T) {
	g, _ := newTestGame(t)

	hopSafely(t, g)
	seed, ok := g.Board.RunSeed()
	require.True(t, ok)
	require.Equal(t, testSeed, seed)

	before := make([]Traps, 14)
	for row := range before {
		before[row] = g.Board.GetTraps(row)
		require.Equal(t, rowTraps(testSeed, row), before[row])
	}

	hopSafely(t, g)
	for row := range before {
		require.Equal(t, before[row], g.Board.GetTraps(row))
	}
}

func equalTraps(a, b Traps) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
