package round_repo

import (
	"context"
	"ladder_backend/internal/model"
	"ladder_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "ladder_rounds"
	colID         = "id"
	colUserID     = "user_id"
	colRun        = "run"
	colBet        = "bet"
	colLevel      = "level"
	colPayout     = "payout"
	colReason     = "reason"
	colSeed       = "seed"
	colStartedAt  = "started_at"
	colFinishedAt = "finished_at"

	maxHistory = 100
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewRoundRepository(dbc *pgxpool.Pool) repository.RoundRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateRound - сохраняет завершённый раунд
func (r *repo) CreateRound(ctx context.Context, round *model.Round) error {
	query := psql.Insert(table).
		Columns(colID, colUserID, colRun, colBet, colLevel, colPayout, colReason, colSeed, colStartedAt, colFinishedAt).
		Values(round.ID, round.UserID, int64(round.Run), round.Bet, round.Level, round.Payout,
			round.Reason, int64(round.Seed), round.StartedAt, round.FinishedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// ListRounds - последние раунды пользователя, новые первыми
func (r *repo) ListRounds(ctx context.Context, userID int, limit int) ([]model.Round, error) {
	if limit <= 0 || limit > maxHistory {
		limit = maxHistory
	}

	query := psql.Select(colID, colUserID, colRun, colBet, colLevel, colPayout, colReason, colSeed, colStartedAt, colFinishedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colFinishedAt + " DESC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]model.Round, 0, limit)
	for rows.Next() {
		var (
			rd   model.Round
			run  int64
			seed int64
		)
		err = rows.Scan(&rd.ID, &rd.UserID, &run, &rd.Bet, &rd.Level, &rd.Payout,
			&rd.Reason, &seed, &rd.StartedAt, &rd.FinishedAt)
		if err != nil {
			return nil, err
		}
		rd.Run = uint64(run)
		rd.Seed = uint32(seed)
		rounds = append(rounds, rd)
	}

	return rounds, rows.Err()
}
