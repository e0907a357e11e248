package converter

import (
	"fmt"
	dto "ladder_backend/internal/api/dto/ladder"
	"ladder_backend/internal/ladder"
	"ladder_backend/internal/model"
	"time"

	"github.com/shopspring/decimal"
)

func ToStateResponse(st model.LadderState) dto.StateResponse {
	g := st.Game
	return dto.StateResponse{
		Phase:            g.Phase,
		Run:              uint64(g.Run),
		Balance:          ladder.Format(g.Balance),
		Bet:              ladder.Format(g.Bet),
		BetIndex:         g.BetIndex,
		CanIncrementBet:  g.CanIncrementBet,
		CanDecrementBet:  g.CanDecrementBet,
		IsPlaying:        g.IsPlaying,
		Finishing:        g.Finishing,
		Level:            g.Level,
		LevelsCount:      g.LevelsCount,
		CurrentWin:       ladder.Format(g.CurrentWin),
		NextWinIfAdvance: ladder.Format(g.NextWinIfAdvance),
		CanCollect:       g.CanCollect,
		FinishReason:     string(g.FinishReason),
		ShowWinOverlay:   g.ShowWinOverlay,
		OverlayAmount:    ladder.Format(g.OverlayAmount),
		Frog: dto.Frog{
			Row:   g.FrogRow,
			Col:   g.FrogCol,
			Phase: string(g.FrogPhase),
		},
		RevealAll:  g.RevealAll,
		IsJumping:  g.IsJumping,
		WindowBase: g.WindowBase,
		FinalPage:  g.FinalPage,
		Rows:       toRows(g.Rows),
		Cues:       toCues(st.Cues),
		Muted:      st.Muted,
		Volume:     st.Volume,
	}
}

func toRows(rows []ladder.RowView) []dto.Row {
	result := make([]dto.Row, len(rows))
	for i, r := range rows {
		result[i] = dto.Row{
			Index:      r.Index,
			Multiplier: r.Multiplier.String(),
			Clickable:  r.Clickable,
			Revealed:   r.Revealed,
			Traps:      r.Traps,
		}
	}
	return result
}

func toCues(cues []ladder.Cue) []dto.Cue {
	result := make([]dto.Cue, len(cues))
	for i, c := range cues {
		result[i] = dto.Cue{Kind: c.Kind, Name: c.Name}
	}
	return result
}

func ToErrorResponse(err error, st *model.LadderState) dto.ErrorResponse {
	out := dto.ErrorResponse{Error: err.Error()}
	if st != nil {
		state := ToStateResponse(*st)
		out.State = &state
	}
	return out
}

// ToClickResponse - ответ на клик. Флаг ловушки остаётся на сервере.
func ToClickResponse(res model.ClickResult) dto.ClickResponse {
	return dto.ClickResponse{
		Hop: dto.Hop{
			Seq:      res.Hop.Seq,
			Run:      uint64(res.Hop.Run),
			Row:      res.Hop.Row,
			Col:      res.Hop.Col,
			Starting: res.Hop.Starting,
		},
		State: ToStateResponse(res.State),
	}
}

// ToHop - сервер сверяет прыжок только по номеру
func ToHop(req dto.LandRequest) ladder.Hop {
	return ladder.Hop{Seq: req.Seq}
}

func ToDepositAmount(req dto.DepositRequest) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", req.Amount, err)
	}
	return amount, nil
}

func ToSoundSettings(req dto.SoundRequest) model.SoundSettings {
	return model.SoundSettings{
		Muted:  req.Muted,
		Volume: req.Volume,
	}
}

func ToRoundsResponse(rounds []model.Round) []dto.RoundResponse {
	result := make([]dto.RoundResponse, len(rounds))
	for i, r := range rounds {
		result[i] = dto.RoundResponse{
			ID:         r.ID.String(),
			Run:        r.Run,
			Bet:        ladder.Format(r.Bet),
			Level:      r.Level,
			Payout:     ladder.Format(r.Payout),
			Reason:     r.Reason,
			Seed:       r.Seed,
			StartedAt:  r.StartedAt.UTC().Format(time.RFC3339Nano),
			FinishedAt: r.FinishedAt.UTC().Format(time.RFC3339Nano),
		}
	}
	return result
}

func ToStatsResponse(s model.HouseStats) dto.StatsResponse {
	return dto.StatsResponse{
		Rounds:      s.Rounds,
		TotalBet:    ladder.Format(s.TotalBet),
		TotalPayout: ladder.Format(s.TotalPayout),
		RTP:         ladder.Format(s.RTP),
		WindowRTP:   ladder.Format(s.WindowRTP),
		WindowSize:  s.WindowSize,
		Collected:   s.Collected,
		Dropped:     s.Dropped,
		Cleared:     s.Cleared,
	}
}
