package stats_repo

import (
	"ladder_backend/internal/ladder"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStatsRepo_UpdateState(t *testing.T) {
	r := NewStatsRepository(2)

	r.UpdateState(decimal.NewFromInt(1), decimal.Zero, ladder.FinishDrop)
	r.UpdateState(decimal.NewFromInt(1), decimal.RequireFromString("1.5"), ladder.FinishCollect)

	st := r.HouseStats()
	require.EqualValues(t, 2, st.Rounds)
	require.Equal(t, "75", st.RTP.String())
	require.Equal(t, "75", st.WindowRTP.String())
	require.EqualValues(t, 1, st.Dropped)
	require.EqualValues(t, 1, st.Collected)

	// первый раунд вытесняется из окна
	r.UpdateState(decimal.NewFromInt(2), decimal.NewFromInt(3000), ladder.FinishAll)
	st = r.HouseStats()
	require.EqualValues(t, 3, st.Rounds)
	require.Equal(t, "100050", st.WindowRTP.String())
	require.Equal(t, "75037.5", st.RTP.String())
	require.EqualValues(t, 1, st.Cleared)
	require.Equal(t, 2, st.WindowSize)
}

func TestStatsRepo_EmptyAndConcurrent(t *testing.T) {
	r := NewStatsRepository(10)
	require.True(t, r.HouseStats().RTP.IsZero())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.UpdateState(decimal.NewFromInt(1), decimal.NewFromInt(1), ladder.FinishCollect)
			_ = r.HouseStats()
		}()
	}
	wg.Wait()

	st := r.HouseStats()
	require.EqualValues(t, 50, st.Rounds)
	require.Equal(t, "100", st.RTP.String())
}
