package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/pokedex"
)

// handleListPokemons returns a paginated window of the catalog.
func (rs *RestServer) handleListPokemons(c *gin.Context) {
	params := pokedex.ParsePageParams(c.Query("page"), c.Query("limit"))
	ctx := c.Request.Context()

	pokemons, err := rs.pokemonRepo.List(ctx, params.Skip, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error retrieving pokemons.",
			Error:   err.Error(),
		})
		return
	}

	total, err := rs.pokemonRepo.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error retrieving pokemons.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pokemons":   pokemons,
		"total":      total,
		"page":       params.Page,
		"totalPages": pokedex.TotalPages(total, params.Limit),
	})
}

// handleGetTypes returns the closed elemental type set.
func (rs *RestServer) handleGetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": pokedex.Types})
}

// handleGetPokemon returns one entry by id.
func (rs *RestServer) handleGetPokemon(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Pokemon not found.",
		})
		return
	}

	pokemon, err := rs.pokemonRepo.GetByID(c.Request.Context(), id)
	if err == pokedex.ErrPokemonNotFound {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Pokemon not found.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error retrieving pokemon.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, pokemon)
}

// handleCreatePokemon inserts a new entry under a caller-supplied id.
func (rs *RestServer) handleCreatePokemon(c *gin.Context) {
	var pokemon pokedex.Pokemon
	if err := c.ShouldBindJSON(&pokemon); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body.",
			Error:   err.Error(),
		})
		return
	}

	if err := pokemon.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid pokemon.",
			Error:   err.Error(),
		})
		return
	}

	err := rs.pokemonRepo.Create(c.Request.Context(), &pokemon)
	if err == pokedex.ErrPokemonExists {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "A pokemon with this id already exists.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error creating pokemon.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, pokemon)
}

// handleUpdatePokemon applies a partial update; the id is immutable.
func (rs *RestServer) handleUpdatePokemon(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Pokemon not found.",
		})
		return
	}

	var upd pokedex.PokemonUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body.",
			Error:   err.Error(),
		})
		return
	}

	if upd.Name != nil && upd.Name.English == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid pokemon.",
			Error:   pokedex.ErrMissingName.Error(),
		})
		return
	}
	if upd.Type != nil {
		types, err := pokedex.NormalizeTypes(*upd.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid pokemon.",
				Error:   err.Error(),
			})
			return
		}
		upd.Type = &types
	}

	pokemon, err := rs.pokemonRepo.Update(c.Request.Context(), id, &upd)
	if err == pokedex.ErrPokemonNotFound {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Pokemon not found.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error updating pokemon.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, pokemon)
}

// handleDeletePokemon removes an entry and renumbers the ids above it.
func (rs *RestServer) handleDeletePokemon(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Pokemon not found.",
		})
		return
	}

	pokemon, err := rs.pokemonRepo.Delete(c.Request.Context(), id)
	if err == pokedex.ErrPokemonNotFound {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Pokemon not found.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error deleting pokemon.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pokemon deleted successfully and ids renumbered.",
		"pokemon": pokemon,
	})
}
