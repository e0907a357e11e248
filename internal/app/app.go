package app

import (
	"context"
	"errors"
	"ladder_backend/internal/config"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// Run поднимает HTTP-сервер и блокируется до SIGINT/SIGTERM.
// При остановке дожидается запросов, гасит таймеры игр и сохраняет журналы.
func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sp := s.ServiceProvider
	logger := sp.Logger()
	defer func() { _ = logger.Sync() }()

	srv := &http.Server{
		Addr:    sp.HTTPCfg().Address(),
		Handler: sp.Router(ctx),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("address", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), sp.HTTPCfg().ShutdownTimeout())
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err = sp.LadderService(ctx).Close(shutdownCtx); err != nil {
		logger.Error("ladder journals were not fully saved", zap.Error(err))
	}
	sp.DBClient(ctx).Close()

	return nil
}
