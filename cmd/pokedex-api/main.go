package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aq2208/pokedex-api/cmd/pokedex-api/app"
	"github.com/aq2208/pokedex-api/configs"
	"github.com/aq2208/pokedex-api/internal/logging"
	"github.com/gin-gonic/gin"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}
	if env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	l := logging.Init(logging.Options{
		Component: cfg.App.Name,
		FilePath:  cfg.App.LogFile,
		Level:     cfg.App.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithCtx(ctx, logging.New("main"))

	a, cleanup, err := app.InitWithConfig(ctx, cfg, logging.New("http"))
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		l.Info("listening", "env", env, "addr", cfg.App.HTTPAddr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		l.Info("shutting down")
		if err := a.Shutdown(cfg); err != nil {
			l.Error("shutdown", "err", err)
		}
	case err := <-errCh:
		if err != nil {
			cleanup()
			log.Fatal(err)
		}
	}
}
