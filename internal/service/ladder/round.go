package ladder

import (
	ladderCore "ladder_backend/internal/ladder"
	"ladder_backend/internal/model"

	"github.com/google/uuid"
)

func roundFromEntry(userID int, e ladderCore.JournalEntry) *model.Round {
	return &model.Round{
		ID:         uuid.New(),
		UserID:     userID,
		Run:        uint64(e.Run),
		Bet:        e.Bet,
		Level:      e.Level,
		Payout:     e.Amount,
		Reason:     string(e.Reason),
		Seed:       e.Seed,
		StartedAt:  e.StartedAt,
		FinishedAt: e.At,
	}
}
