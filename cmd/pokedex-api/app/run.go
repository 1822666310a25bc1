package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aq2208/pokedex-api/configs"
	httpadapter "github.com/aq2208/pokedex-api/internal/adapter/http"
	"github.com/aq2208/pokedex-api/internal/adapter/http/middleware"
	"github.com/aq2208/pokedex-api/internal/entity"
	"github.com/aq2208/pokedex-api/internal/logging"
	"github.com/gin-gonic/gin"
)

type App struct {
	Router *gin.Engine
	Server *http.Server
}

// InitWithConfig wires the gate and handlers onto an http.Server. l is the
// component logger the request pipeline writes to, usually logging.New("http").
func InitWithConfig(ctx context.Context, cfg configs.Config, l *slog.Logger) (*App, func(), error) {
	logging.FromCtx(ctx).Info("pokedex-api: starting up", "addr", cfg.App.HTTPAddr)

	h := httpadapter.NewPokemonHandler(entity.Types, entity.Greeting)
	authz := middleware.NewAuthz(cfg.Security.APIToken)
	router := httpadapter.NewRouter(l, h, authz)

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	cleanup := func() {
		logging.FromCtx(ctx).Info("pokedex-api: stopped")
	}

	return &App{Router: router, Server: srv}, cleanup, nil
}

// Shutdown drains in-flight requests, bounded by the configured timeout.
func (a *App) Shutdown(cfg configs.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return a.Server.Shutdown(ctx)
}
