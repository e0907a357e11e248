package ladder

import (
	"context"
	"errors"
	"fmt"
	"ladder_backend/internal/config"
	ladderCore "ladder_backend/internal/ladder"
	"ladder_backend/internal/middleware"
	"ladder_backend/internal/model"
	"ladder_backend/internal/repository"
	"ladder_backend/internal/service"
	"sync"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

// Option настраивает сервис
type Option func(*serv)

// WithGameOptions добавляет опции к каждой создаваемой игре (планировщик, источник сидов)
func WithGameOptions(opts ...ladderCore.Option) Option {
	return func(s *serv) { s.gameOpts = append(s.gameOpts, opts...) }
}

// WithClock подменяет часы, по которым считается простой сессий
func WithClock(now func() time.Time) Option {
	return func(s *serv) { s.now = now }
}

type serv struct {
	cfg       ladderCore.Config
	userRepo  repository.UserRepository
	roundRepo repository.RoundRepository
	statsRepo repository.StatsRepository
	txManager trm.Manager
	log       *zap.Logger
	gameOpts  []ladderCore.Option
	idle      time.Duration
	now       func() time.Time

	mu        sync.Mutex
	sessions  map[int]*session
	lastSweep time.Time
}

// session - игра одного игрока и её звуковые подсказки
type session struct {
	userID int
	game   *ladderCore.Game
	cues   *ladderCore.CueBuffer

	lastSeen time.Time // под serv.mu
	closed   bool      // под замком игры, сессия выгружена
}

// NewLadderService Создать сервис лестницы
func NewLadderService(
	cfg config.LadderConfig,
	userRepo repository.UserRepository,
	roundRepo repository.RoundRepository,
	statsRepo repository.StatsRepository,
	txManager trm.Manager,
	log *zap.Logger,
	opts ...Option,
) service.LadderService {
	s := &serv{
		cfg:       cfg.Game(),
		userRepo:  userRepo,
		roundRepo: roundRepo,
		statsRepo: statsRepo,
		txManager: txManager,
		log:       log,
		idle:      cfg.SessionIdle(),
		now:       time.Now,
		sessions:  make(map[int]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// session возвращает игру игрока, создавая её из сохранённого баланса
func (s *serv) session(ctx context.Context) (*session, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, service.ErrUnauthorized
	}

	s.sweep(ctx)

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if ok {
		sess.lastSeen = s.now()
	}
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load balance: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// пока читали баланс, сессию мог создать параллельный запрос
	if sess, ok = s.sessions[userID]; ok {
		sess.lastSeen = s.now()
		return sess, nil
	}

	cues := ladderCore.NewCueBuffer()
	opts := append([]ladderCore.Option{
		ladderCore.WithBalance(balance),
		ladderCore.WithSound(cues),
		ladderCore.WithLogger(s.log.With(zap.Int("user_id", userID))),
	}, s.gameOpts...)

	sess = &session{
		userID:   userID,
		game:     ladderCore.New(s.cfg, opts...),
		cues:     cues,
		lastSeen: s.now(),
	}
	cues.PlayMusic(ladderCore.MusicAmbience)
	s.sessions[userID] = sess

	s.log.Info("ladder session opened", zap.Int("user_id", userID), zap.String("balance", ladderCore.Format(balance)))
	return sess, nil
}

// do выполняет fn под замком игры, сохраняет журнал и отдаёт снимок.
// Если игра отказала в действии, снимок возвращается вместе с ошибкой:
// в нём звуки отказа (no_money) и всё, что накопили таймеры.
func (s *serv) do(ctx context.Context, fn func(sess *session) error) (*model.LadderState, error) {
	sess, err := s.lockedSession(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.game.Unlock()

	opErr := fn(sess)
	_ = s.persist(ctx, sess)

	st := sess.snapshot()
	return &st, opErr
}

// lockedSession возвращает сессию под замком игры. Выгруженную
// между поиском и захватом замка сессию создаёт заново.
func (s *serv) lockedSession(ctx context.Context) (*session, error) {
	for {
		sess, err := s.session(ctx)
		if err != nil {
			return nil, err
		}
		sess.game.Lock()
		if !sess.closed {
			return sess, nil
		}
		sess.game.Unlock()
	}
}

// sweep выгружает игры, простаивающие дольше idle. Раунд в процессе
// или несохранённый журнал держат игру в памяти.
func (s *serv) sweep(ctx context.Context) {
	if s.idle <= 0 {
		return
	}

	now := s.now()
	s.mu.Lock()
	if now.Sub(s.lastSweep) < s.idle/2 {
		s.mu.Unlock()
		return
	}
	s.lastSweep = now
	var stale []*session
	for _, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.idle {
			stale = append(stale, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		s.evict(ctx, now, sess)
	}
}

func (s *serv) evict(ctx context.Context, now time.Time, sess *session) {
	sess.game.Lock()
	defer sess.game.Unlock()

	if sess.closed || sess.game.Ledger.IsPlaying() {
		return
	}
	if err := s.persist(ctx, sess); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// игрок мог вернуться, пока сохраняли журнал
	if now.Sub(sess.lastSeen) < s.idle {
		return
	}
	sess.game.Close()
	sess.closed = true
	delete(s.sessions, sess.userID)

	s.log.Info("ladder session evicted", zap.Int("user_id", sess.userID))
}

func (sess *session) snapshot() model.LadderState {
	return model.LadderState{
		Game:   sess.game.Snapshot(),
		Cues:   sess.cues.Drain(),
		Muted:  sess.cues.Muted(),
		Volume: sess.cues.Volume(),
	}
}

// persist сохраняет журнал игры одной транзакцией: завершённые раунды и итоговый баланс.
// При ошибке записи возвращаются в журнал и уйдут со следующей операцией.
// Вызывается под замком игры.
func (s *serv) persist(ctx context.Context, sess *session) error {
	entries := sess.game.Ledger.DrainJournal()
	if len(entries) == 0 {
		return nil
	}

	// деньги уже движутся в памяти, отмена запроса не должна оборвать запись
	ctx = context.WithoutCancel(ctx)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, e := range entries {
			if e.Kind != ladderCore.JournalFinish {
				continue
			}
			if err := s.roundRepo.CreateRound(txCtx, roundFromEntry(sess.userID, e)); err != nil {
				return fmt.Errorf("save round: %w", err)
			}
		}

		last := entries[len(entries)-1]
		if err := s.userRepo.UpdateBalance(txCtx, sess.userID, last.Balance); err != nil {
			return fmt.Errorf("update balance: %w", err)
		}
		return nil
	})
	if err != nil {
		sess.game.Ledger.Requeue(entries)
		s.log.Error("persist ladder journal",
			zap.Int("user_id", sess.userID),
			zap.Int("entries", len(entries)),
			zap.Error(err),
		)
		return err
	}

	for _, e := range entries {
		if e.Kind == ladderCore.JournalFinish {
			s.statsRepo.UpdateState(e.Bet, e.Amount, e.Reason)
		}
	}
	return nil
}

// Close останавливает игры и сохраняет остатки журналов
func (s *serv) Close(ctx context.Context) error {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	var errs []error
	for _, sess := range sessions {
		sess.game.Lock()
		sess.game.Close()
		if err := s.persist(ctx, sess); err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", sess.userID, err))
		}
		sess.game.Unlock()
	}
	return errors.Join(errs...)
}
