package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solar-sizer/internal/api"
	"solar-sizer/internal/config"
	"solar-sizer/internal/planner"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	srv := config.LoadServer()

	logger, err := newLogger(srv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Default()
	if srv.ConfigPath != "" {
		if cfg, err = config.Load(srv.ConfigPath); err != nil {
			logger.Fatal("failed to load config", zap.String("path", srv.ConfigPath), zap.Error(err))
		}
		logger.Info("config loaded", zap.String("path", srv.ConfigPath))
	}

	engine, err := cfg.Engine()
	if err != nil {
		logger.Fatal("failed to build sizing engine", zap.Error(err))
	}
	appliances, err := cfg.Appliances()
	if err != nil {
		logger.Fatal("failed to load appliance table", zap.String("path", cfg.ApplianceFile), zap.Error(err))
	}
	if appliances != nil {
		logger.Info("appliance table loaded", zap.Int("appliances", appliances.Len()))
	}

	if srv.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := planner.NewStore(srv.PlanTTL, logger.Named("store"))
	go store.Run(ctx, time.Minute)

	router := api.NewRouter(api.Deps{
		Engine:     engine,
		Appliances: appliances,
		Store:      store,
		Defaults:   cfg.Parameters,
		Logger:     logger,
		StaticDir:  srv.StaticDir,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", srv.Port),
		Handler: router,
	}
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("addr", server.Addr), zap.Error(err))
	}

	logger.Info("starting API server", zap.String("addr", server.Addr), zap.String("env", srv.Env))
	if err := serve(ctx, server, ln, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

// serve runs server on ln until ctx is cancelled, then drains in-flight
// requests before returning.
func serve(ctx context.Context, server *http.Server, ln net.Listener, logger *zap.Logger) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

func newLogger(srv *config.Server) (*zap.Logger, error) {
	if srv.Debug || !srv.Production() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
