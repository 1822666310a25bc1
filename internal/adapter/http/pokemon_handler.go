package http

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

type PokemonHandler struct {
	types    []string
	greeting string
}

// NewPokemonHandler copies types so callers cannot mutate the served catalog.
func NewPokemonHandler(types []string, greeting string) *PokemonHandler {
	return &PokemonHandler{types: slices.Clone(types), greeting: greeting}
}

// GetTypes serves the catalog as a JSON array in declared order.
func (h *PokemonHandler) GetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.types)
}

func (h *PokemonHandler) GetPokemon(c *gin.Context) {
	c.String(http.StatusOK, h.greeting)
}
