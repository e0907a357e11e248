package app

import (
	"context"
	authAPI "ladder_backend/internal/api/auth"
	ladderAPI "ladder_backend/internal/api/ladder"
	"ladder_backend/internal/config"
	"ladder_backend/internal/config/env"
	"ladder_backend/internal/logger"
	"ladder_backend/internal/middleware"
	"ladder_backend/internal/repository"
	"ladder_backend/internal/repository/auth_repo"
	"ladder_backend/internal/repository/round_repo"
	"ladder_backend/internal/repository/stats_repo"
	"ladder_backend/internal/repository/user_repo"
	"ladder_backend/internal/service"
	"ladder_backend/internal/service/auth"
	"ladder_backend/internal/service/ladder"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Logger
	logCfg config.LogConfig
	log    *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth bits
	jwtCfg   config.JWTConfig
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Ladder bits
	ladderCfg  config.LadderConfig
	roundRepo  repository.RoundRepository
	statsRepo  repository.StatsRepository
	ladderServ service.LadderService
	ladderHand *ladderAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogConfig() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		log, err := logger.New(sp.LogConfig())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.log = log
	}
	return sp.log
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.JWTConfig(),
			sp.LadderCfg().Game().StartBalance, // новый игрок приходит со стартовым балансом игры
			sp.Logger(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:            sp.AuthService(ctx),
			Log:             sp.Logger(),
			RefreshTokenTTL: sp.JWTConfig().RefreshTokenDuration(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) LadderCfg() config.LadderConfig {
	if sp.ladderCfg == nil {
		cfg, err := env.NewLadderConfig()
		if err != nil {
			panic("failed to get ladder config: " + err.Error())
		}
		sp.ladderCfg = cfg
	}
	return sp.ladderCfg
}

func (sp *ServiceProvider) RoundRepository(ctx context.Context) repository.RoundRepository {
	if sp.roundRepo == nil {
		sp.roundRepo = round_repo.NewRoundRepository(sp.DBClient(ctx))
	}
	return sp.roundRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(sp.LadderCfg().StatsWindow())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) LadderService(ctx context.Context) service.LadderService {
	if sp.ladderServ == nil {
		sp.ladderServ = ladder.NewLadderService(
			sp.LadderCfg(),
			sp.UserRepo(ctx),
			sp.RoundRepository(ctx),
			sp.StatsRepository(),
			sp.TXManager(ctx),
			sp.Logger(),
		)
	}
	return sp.ladderServ
}

func (sp *ServiceProvider) LadderHandler(ctx context.Context) *ladderAPI.Handler {
	if sp.ladderHand == nil {
		sp.ladderHand = ladderAPI.NewHandler(ladderAPI.HandlerDeps{
			Serv: sp.LadderService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.ladderHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.RealIP)
		r.Use(middleware.Logger(sp.Logger()))
		r.Use(chimw.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Ladder endpoints
		ladderHandler := sp.LadderHandler(ctx)
		r.Route("/ladder", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTConfig().AccessTokenSecretKey()))

			rr.Get("/state", ladderHandler.State)
			rr.Post("/click", ladderHandler.Click)
			rr.Post("/land", ladderHandler.Land)
			rr.Post("/collect", ladderHandler.Collect)
			rr.Post("/settle", ladderHandler.Settle)
			rr.Post("/bet", ladderHandler.SetBet)
			rr.Post("/bet/increment", ladderHandler.IncrementBet)
			rr.Post("/bet/decrement", ladderHandler.DecrementBet)
			rr.Post("/deposit", ladderHandler.Deposit)
			rr.Post("/sound", ladderHandler.Sound)
			rr.Get("/history", ladderHandler.History)
			rr.Get("/stats", ladderHandler.Stats)
		})

		sp.router = r
	}

	return sp.router
}
