package http

import (
	"log/slog"

	"github.com/aq2208/pokedex-api/internal/adapter/http/middleware"
	"github.com/aq2208/pokedex-api/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stages returns the ordered pipeline every request runs through before
// route dispatch. The gate runs after logging and before any handler.
func Stages(l *slog.Logger, authz *middleware.Authz) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		gin.Recovery(),
		middleware.MetricsMiddleware(),
		middleware.Logging(l),
		authz.Require(),
	}
}

func NewRouter(l *slog.Logger, h *PokemonHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	// no redirects ahead of the gate: /types/ must be rejected, not 301'd
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(Stages(l, authz)...)

	r.GET("/types", h.GetTypes)
	r.GET("/pokemon", h.GetPokemon)

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Debug("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
