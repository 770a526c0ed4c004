package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minaorangina/topthat/config"
	"github.com/minaorangina/topthat/internal/logging"
	"github.com/minaorangina/topthat/server"
	"github.com/minaorangina/topthat/store"
	"go.uber.org/zap"
)

const shutdownWait = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	s := server.NewServer(
		store.NewInMemoryGameStore(logger.Named("store")),
		server.WithLogger(logger),
		server.WithAllowedOrigins(cfg.AllowedOrigins...),
		server.WithStartPlayers(cfg.StartPlayers),
	)
	s.Addr = cfg.Addr()
	s.ErrorLog = zap.NewStdLog(logger.Named("http"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", s.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}
