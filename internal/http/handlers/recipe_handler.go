// Package handlers provides the HTTP handler implementations for the public
// API. This file exposes the recipe endpoints: live search, cached detail
// lookup, favourite toggling, and the favourites/history projections.
//
// Handlers consume the first emission of the service's reactive streams;
// the request context cancels the underlying subscription when the client
// goes away.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/services"
	"github.com/tbourn/go-recipe-backend/internal/utils"
)

// Handler bundles the handler dependencies.
type Handler struct {
	Recipes *services.RecipeService
	// CDNBaseURL prefixes the relative image segments of instruction step
	// details in responses.
	CDNBaseURL string
}

// New constructs a Handler.
func New(recipes *services.RecipeService, cdnBaseURL string) *Handler {
	return &Handler{Recipes: recipes, CDNBaseURL: cdnBaseURL}
}

// SearchResponse is the payload returned by SearchRecipes.
type SearchResponse struct {
	Results []domain.SearchResult `json:"results"`
}

// FavouriteRequest is the body accepted by SetFavourite.
type FavouriteRequest struct {
	Favourite *bool `json:"favourite" binding:"required"`
}

// SearchRecipes handles GET /recipes/search?query=…
//
// Search is always live: every request performs exactly one remote call and
// nothing is cached.
func (h *Handler) SearchRecipes(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter is required")
		return
	}

	res, ok := <-h.Recipes.SearchRecipes(c.Request.Context(), query)
	if !ok {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "something went wrong")
		return
	}
	if res.IsFailure() {
		status, code, msg := failureResponse(res.Failure)
		fail(c, status, code, msg)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Results: res.Value})
}

// GetRecipeDetail handles GET /recipes/:id
//
// The first stream emission answers the request: a decoded cache hit, the
// result of the single fetch-and-fill on a miss, or the mapped failure.
func (h *Handler) GetRecipeDetail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a positive integer")
		return
	}

	res, open := <-h.Recipes.FetchRecipeDetail(c.Request.Context(), id)
	if !open {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "something went wrong")
		return
	}
	if res.IsFailure() {
		status, code, msg := failureResponse(res.Failure)
		fail(c, status, code, msg)
		return
	}

	c.JSON(http.StatusOK, h.withImageURLs(res.Value))
}

// SetFavourite handles PUT /recipes/:id/favourite
func (h *Handler) SetFavourite(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a positive integer")
		return
	}

	var req FavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Favourite == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body must contain a boolean favourite field")
		return
	}

	if err := h.Recipes.SetFavouriteRecipe(c.Request.Context(), id, *req.Favourite); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeStorageError, "the favourite flag could not be updated")
		return
	}
	noContent(c)
}

// ListFavourites handles GET /recipes/favourites
func (h *Handler) ListFavourites(c *gin.Context) {
	h.listProjection(c, h.Recipes.FavouriteRecipes(c.Request.Context()))
}

// ListHistory handles GET /recipes/history — every recipe detail ever
// cached, most recently updated first.
func (h *Handler) ListHistory(c *gin.Context) {
	h.listProjection(c, h.Recipes.RecipeHistory(c.Request.Context()))
}

func (h *Handler) listProjection(c *gin.Context, stream <-chan domain.Result[[]domain.RecipeDetail]) {
	res, open := <-stream
	if !open {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "something went wrong")
		return
	}
	if res.IsFailure() {
		status, code, msg := failureResponse(res.Failure)
		fail(c, status, code, msg)
		return
	}

	out := make([]domain.RecipeDetail, 0, len(res.Value))
	for _, d := range res.Value {
		out = append(out, h.withImageURLs(d))
	}
	ok(c, http.StatusOK, out)
}

// withImageURLs absolutizes the relative image segments carried by
// instruction step details against the configured CDN base.
func (h *Handler) withImageURLs(d domain.RecipeDetail) domain.RecipeDetail {
	if h.CDNBaseURL == "" {
		return d
	}
	instructions := make([]domain.Instruction, len(d.AnalyzedInstructions))
	for i, instr := range d.AnalyzedInstructions {
		steps := make([]domain.InstructionStep, len(instr.Steps))
		for j, step := range instr.Steps {
			step.Ingredients = absolutize(step.Ingredients, h.CDNBaseURL)
			step.Equipment = absolutize(step.Equipment, h.CDNBaseURL)
			steps[j] = step
		}
		instr.Steps = steps
		instructions[i] = instr
	}
	d.AnalyzedInstructions = instructions
	return d
}

func absolutize(details []domain.InstructionStepDetail, base string) []domain.InstructionStepDetail {
	out := make([]domain.InstructionStepDetail, len(details))
	for i, det := range details {
		det.Image = utils.IngredientImageURL(base, det.Image)
		out[i] = det
	}
	return out
}
