package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotable-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotable-api/internal/app"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// ListQuotes handles GET /quotes.
// Returns one page of quotes filtered by author, tags and length.
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Param author query string false "Author slugs separated by |"
// @Param tags query string false "Tags: a|b matches either, a,b matches both"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	params, err := dto.BindQuery(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	env, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(env, dto.NewQuoteResponse))
}

// GetQuoteByID handles GET /quotes/:id.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	path, err := dto.BindPath(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	quote, err := h.service.Get(c.Request.Context(), path.ID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// RandomQuotes handles GET /quotes/random.
// Returns an array of up to limit random quotes, or 404 when nothing matches.
//
// @Summary Get random quotes
// @Tags quotes
// @Produce json
// @Success 200 {array} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quotes/random [get]
func (h *QuoteHandler) RandomQuotes(c *gin.Context) {
	params, err := dto.BindQuery(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	quotes, err := h.service.Random(c.Request.Context(), params)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponses(quotes))
}

// RandomQuote handles GET /random.
// Returns a single random quote, or 404 when nothing matches.
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /random [get]
func (h *QuoteHandler) RandomQuote(c *gin.Context) {
	params, err := dto.BindQuery(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	quote, err := h.service.RandomOne(c.Request.Context(), params)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// SearchQuotes handles GET /search/quotes.
//
// @Summary Search quotes
// @Tags search
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /search/quotes [get]
func (h *QuoteHandler) SearchQuotes(c *gin.Context) {
	params, err := dto.BindQuery(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	env, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(env, dto.NewQuoteResponse))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg gin.IRoutes) {
	rg.GET("/quotes", h.ListQuotes)
	rg.GET("/quotes/random", h.RandomQuotes)
	rg.GET("/quotes/:id", h.GetQuoteByID)
	rg.GET("/random", h.RandomQuote)
	rg.GET("/search/quotes", h.SearchQuotes)
}
