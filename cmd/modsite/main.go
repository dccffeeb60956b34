package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/modderpro/site/config"
	"github.com/modderpro/site/internal/adminapi"
	"github.com/modderpro/site/internal/app"
	"github.com/modderpro/site/internal/publicapi"
	"github.com/modderpro/site/internal/webserver"
)

var (
	confFile = flag.String("c", "modderpro.yml", "config file path")
	initDB   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()

	// Essential variables may live in a .env file during development; in
	// production they come from the process environment.
	_ = godotenv.Load()

	cfg := config.LoadConfig(*confFile)

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		zap.L().Fatal("application init failed", zap.Error(err))
	}
	defer application.Release()

	if *initDB {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	server := webserver.Init(application)
	adminapi.InitRouter()
	publicapi.InitRouter()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Listen(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		zap.L().Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	zap.L().Info("server stopped")
}
