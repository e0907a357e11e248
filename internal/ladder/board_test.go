package ladder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBoard_WinAndCollect(t *testing.T) {
	cues := NewCueBuffer()
	g, sched := newTestGame(t, WithSound(cues))

	for i := 0; i < 5; i++ {
		hopSafely(t, g)
	}
	require.Equal(t, 5, g.Ledger.Level())
	requireAmount(t, "3.00", g.Ledger.CurrentWin())
	requireAmount(t, "99.00", g.Ledger.Balance())
	require.Equal(t, []int{0, 1, 2, 3, 4}, g.Board.RevealedRows())
	require.Equal(t, 4, g.Board.FrogRow())
	require.True(t, g.CanCollect())

	require.NoError(t, g.Collect())
	requireAmount(t, "102.00", g.Ledger.Balance())
	require.Equal(t, FinishCollect, g.Ledger.FinishReason())
	require.False(t, g.Board.IsRowClickable(5))

	sched.Advance(220 * time.Millisecond)
	require.True(t, g.Ledger.ShowWinOverlay())
	requireAmount(t, "3.00", g.Ledger.OverlayAmount())

	sched.Advance(2200 * time.Millisecond)
	require.False(t, g.Ledger.IsPlaying())
	require.Equal(t, RockRow, g.Board.FrogRow())
	require.Equal(t, 2, g.Board.FrogCol())
	require.Empty(t, g.Board.RevealedRows())
	require.Equal(t, 0, g.Board.WindowBase())
	_, hasSeed := g.Board.RunSeed()
	require.False(t, hasSeed)
	require.True(t, g.Board.IsRowClickable(0))

	var sfx []string
	for _, c := range cues.Drain() {
		sfx = append(sfx, c.Name)
	}
	require.Contains(t, sfx, SfxJump)
	require.Contains(t, sfx, SfxLand)
	require.Contains(t, sfx, SfxWin)
	require.Contains(t, sfx, SfxLilyAppear)
	require.NotContains(t, sfx, SfxDrown)
}

func TestBoard_TrapLoss(t *testing.T) {
	cues := NewCueBuffer()
	g, sched := newTestGame(t, WithSound(cues))

	hop, err := g.Board.OnPadClick(0, trapCol(t, testSeed, 0))
	require.NoError(t, err)
	require.True(t, hop.Trap)
	require.True(t, hop.Starting)
	requireAmount(t, "99.00", g.Ledger.Balance())
	require.Equal(t, FrogJump, g.Board.FrogPhase())

	require.NoError(t, g.Board.OnFrogJumpEnd(hop))
	// до раскрытия доска занята, раунд ещё идёт
	require.True(t, g.Board.IsJumping())
	require.False(t, g.Board.RevealAll())
	require.False(t, g.Ledger.Finishing())
	require.ErrorIs(t, g.Collect(), ErrHopInFlight)
	require.ErrorIs(t, g.Settle(), ErrNotFinishing)

	sched.Advance(10 * time.Millisecond)
	require.True(t, g.Board.RevealAll())
	require.Equal(t, FrogCurl, g.Board.FrogPhase())
	require.Equal(t, FinishDrop, g.Ledger.FinishReason())
	require.False(t, g.Board.IsJumping())
	require.Len(t, g.Board.RevealedRows(), g.Ledger.LevelsCount())
	require.False(t, g.Board.IsRowClickable(0))
	requireAmount(t, "99.00", g.Ledger.Balance())

	sched.Advance(900 * time.Millisecond)
	require.False(t, g.Ledger.IsPlaying())
	require.False(t, g.Board.RevealAll())
	require.Equal(t, FrogIdle, g.Board.FrogPhase())
	require.Equal(t, RockRow, g.Board.FrogRow())
	requireAmount(t, "99.00", g.Ledger.Balance())

	require.Equal(t, []Cue{
		{Kind: CueSfx, Name: SfxJump},
		{Kind: CueSfx, Name: SfxSplash},
		{Kind: CueSfx, Name: SfxDrown},
	}, cues.Drain())
}

func TestBoard_RevealCompleteSkipsLossTimer(t *testing.T) {
	g, sched := newTestGame(t)

	hopSafely(t, g)
	row := g.Ledger.Level()
	hop, err := g.Board.OnPadClick(row, trapCol(t, testSeed, row))
	require.NoError(t, err)
	require.NoError(t, g.Board.OnFrogJumpEnd(hop))
	require.ErrorIs(t, g.Board.RevealComplete(), ErrRevealPending)

	sched.Advance(10 * time.Millisecond)
	require.Equal(t, FinishDrop, g.Ledger.FinishReason())

	require.NoError(t, g.Settle())
	require.False(t, g.Ledger.IsPlaying())
	require.Equal(t, 0, sched.Pending())
	requireAmount(t, "99.00", g.Ledger.Balance())
}

func TestBoard_SettleAfterWinSkipsOverlay(t *testing.T) {
	g, sched := newTestGame(t)

	hopSafely(t, g)
	require.NoError(t, g.Collect())
	require.NoError(t, g.Settle())

	require.False(t, g.Ledger.IsPlaying())
	require.Equal(t, 0, sched.Pending())
	requireAmount(t, "100.20", g.Ledger.Balance())

	require.ErrorIs(t, g.Settle(), ErrNotFinishing)
}

func TestBoard_ZeroTrapSettleRevealsInline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timings.TrapSettle = 0
	sched := NewManualScheduler()
	g := New(cfg, WithScheduler(sched), WithSeedSource(func() uint32 { return testSeed }))

	hop, err := g.Board.OnPadClick(0, trapCol(t, testSeed, 0))
	require.NoError(t, err)
	require.NoError(t, g.Board.OnFrogJumpEnd(hop))

	require.True(t, g.Board.RevealAll())
	require.Equal(t, FinishDrop, g.Ledger.FinishReason())
}

func TestBoard_HopIsAppliedOnce(t *testing.T) {
	g, _ := newTestGame(t)

	require.ErrorIs(t, g.Board.OnFrogJumpEnd(Hop{Seq: 1}), ErrNoHop)

	hop, err := g.Board.OnPadClick(0, safeCol(t, testSeed, 0))
	require.NoError(t, err)

	stale := hop
	stale.Seq++
	require.ErrorIs(t, g.Board.OnFrogJumpEnd(stale), ErrStaleHop)
	require.Equal(t, 0, g.Ledger.Level())

	require.NoError(t, g.Board.OnFrogJumpEnd(hop))
	require.ErrorIs(t, g.Board.OnFrogJumpEnd(hop), ErrNoHop)
	require.Equal(t, 1, g.Ledger.Level())
}

func TestBoard_Clickability(t *testing.T) {
	g, _ := newTestGame(t)
	b := g.Board

	require.True(t, b.IsRowClickable(0))
	require.False(t, b.IsRowClickable(1))

	_, err := b.OnPadClick(1, 0)
	require.ErrorIs(t, err, ErrRowLocked)
	_, err = b.OnPadClick(0, -1)
	require.ErrorIs(t, err, ErrBadColumn)
	_, err = b.OnPadClick(0, 5)
	require.ErrorIs(t, err, ErrBadColumn)
	require.False(t, g.Ledger.IsPlaying())

	hop, err := b.OnPadClick(0, safeCol(t, testSeed, 0))
	require.NoError(t, err)
	require.False(t, b.IsRowClickable(0))
	require.False(t, b.IsRowClickable(1))
	require.False(t, g.CanCollect())
	require.ErrorIs(t, g.Collect(), ErrHopInFlight)

	_, err = b.OnPadClick(0, safeCol(t, testSeed, 0))
	require.ErrorIs(t, err, ErrRowLocked)

	require.NoError(t, b.OnFrogJumpEnd(hop))
	require.False(t, b.IsRowClickable(0))
	require.True(t, b.IsRowClickable(1))

	next, err := b.OnPadClick(1, safeCol(t, testSeed, 1))
	require.NoError(t, err)
	require.False(t, next.Starting)
	require.Equal(t, hop.Run, next.Run)
}

func TestBoard_ClickWithoutMoney(t *testing.T) {
	cues := NewCueBuffer()
	g, _ := newTestGame(t, WithBalance(dec("0.50")), WithSound(cues))

	_, err := g.Board.OnPadClick(0, 0)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.False(t, g.Ledger.IsPlaying())
	require.False(t, g.Board.IsJumping())
	require.Equal(t, RockRow, g.Board.FrogRow())
	_, hasSeed := g.Board.RunSeed()
	require.False(t, hasSeed)
	require.Equal(t, []Cue{{Kind: CueSfx, Name: SfxNoMoney}}, cues.Drain())
}

func TestBoard_WindowFrozenDuringJump(t *testing.T) {
	g, _ := newTestGame(t)
	b := g.Board

	require.Equal(t, []int{4, 3, 2, 1, 0}, b.VisibleRows())
	for i := 0; i < 4; i++ {
		hopSafely(t, g)
	}
	require.Equal(t, 0, b.WindowBase())

	hop, err := b.OnPadClick(4, safeCol(t, testSeed, 4))
	require.NoError(t, err)
	require.Equal(t, 0, b.WindowBase())

	require.NoError(t, b.OnFrogJumpEnd(hop))
	require.Equal(t, 5, b.WindowBase())
	require.Equal(t, []int{9, 8, 7, 6, 5}, b.VisibleRows())
	require.False(t, b.IsFinalPage())

	for i := 0; i < 5; i++ {
		hopSafely(t, g)
	}
	require.Equal(t, 10, b.WindowBase())
	require.Equal(t, 4, b.PageSize())
	require.True(t, b.IsFinalPage())
	require.Equal(t, []int{13, 12, 11, 10}, b.VisibleRows())
}

func TestBoard_ClearAllLevels(t *testing.T) {
	g, sched := newTestGame(t)

	for i := 0; i < g.Ledger.LevelsCount(); i++ {
		hopSafely(t, g)
	}
	require.Equal(t, FinishAll, g.Ledger.FinishReason())
	requireAmount(t, "1599.00", g.Ledger.Balance())
	require.Equal(t, 10, g.Board.WindowBase())
	for row := 0; row < g.Ledger.LevelsCount(); row++ {
		require.False(t, g.Board.IsRowClickable(row))
	}

	sched.Advance(3 * time.Second)
	require.False(t, g.Ledger.IsPlaying())
	require.Equal(t, 0, g.Board.WindowBase())
}

func TestBoard_NewSeedPerRun(t *testing.T) {
	var next uint32
	g, sched := newTestGame(t, WithSeedSource(func() uint32 {
		next++
		return next
	}))

	finishRun := func() {
		hop, err := g.Board.OnPadClick(0, 0)
		require.NoError(t, err)
		require.NoError(t, g.Board.OnFrogJumpEnd(hop))
		if hop.Trap {
			sched.Advance(10 * time.Millisecond)
		} else {
			require.NoError(t, g.Collect())
		}
		require.NoError(t, g.Settle())
	}

	hop, err := g.Board.OnPadClick(0, 0)
	require.NoError(t, err)
	seed, ok := g.Board.RunSeed()
	require.True(t, ok)
	require.Equal(t, uint32(1), seed)
	require.Equal(t, rowTraps(1, 0).Has(0), hop.Trap)

	require.NoError(t, g.Board.OnFrogJumpEnd(hop))
	if hop.Trap {
		sched.Advance(10 * time.Millisecond)
	} else {
		require.NoError(t, g.Collect())
	}
	require.NoError(t, g.Settle())

	finishRun()
	require.Equal(t, uint32(2), next)

	_, err = g.Board.OnPadClick(0, 0)
	require.NoError(t, err)
	seed, _ = g.Board.RunSeed()
	require.Equal(t, uint32(3), seed)
}

func TestGame_SnapshotHidesUnrevealedTraps(t *testing.T) {
	g, _ := newTestGame(t)

	hopSafely(t, g)
	st := g.Snapshot()

	require.Equal(t, StatePlaying, st.Phase)
	require.Equal(t, 1, st.Level)
	require.True(t, st.CanCollect)
	requireAmount(t, "1.50", st.NextWinIfAdvance)
	require.Len(t, st.Rows, 5)

	for _, row := range st.Rows {
		switch row.Index {
		case 0:
			require.True(t, row.Revealed)
			require.Equal(t, rowTraps(testSeed, 0), row.Traps)
			require.False(t, row.Clickable)
		case 1:
			require.False(t, row.Revealed)
			require.Nil(t, row.Traps)
			require.True(t, row.Clickable)
		default:
			require.False(t, row.Revealed)
			require.Nil(t, row.Traps)
			require.False(t, row.Clickable)
		}
	}
}
