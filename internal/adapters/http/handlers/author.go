package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotable-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotable-api/internal/app"
	"github.com/jsamuelsen/quotable-api/internal/domain"
)

// AuthorHandler handles author endpoints.
type AuthorHandler struct {
	service *app.AuthorService
}

// NewAuthorHandler creates a new author handler.
func NewAuthorHandler(service *app.AuthorService) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// ListAuthors handles GET /authors.
//
// @Summary List authors
// @Tags authors
// @Produce json
// @Param name query string false "Case-insensitive name fragment"
// @Param slug query string false "Author slugs separated by |"
// @Success 200 {object} dto.PaginatedResponse[dto.AuthorResponse]
// @Router /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(env, dto.NewAuthorResponse))
}

// GetAuthorByID handles GET /authors/:id.
//
// @Summary Get an author and their quotes
// @Tags authors
// @Produce json
// @Param id path string true "Author ID"
// @Success 200 {object} dto.AuthorProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /authors/{id} [get]
func (h *AuthorHandler) GetAuthorByID(c *gin.Context) {
	h.profile(c, func(p dto.PathParams) (*domain.AuthorProfile, error) {
		return h.service.GetByID(c.Request.Context(), p.ID)
	})
}

// GetAuthorBySlug handles GET /authors/slug/:slug.
//
// @Summary Get an author and their quotes by slug
// @Tags authors
// @Produce json
// @Param slug path string true "Author slug"
// @Success 200 {object} dto.AuthorProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /authors/slug/{slug} [get]
func (h *AuthorHandler) GetAuthorBySlug(c *gin.Context) {
	h.profile(c, func(p dto.PathParams) (*domain.AuthorProfile, error) {
		return h.service.GetBySlug(c.Request.Context(), p.Slug)
	})
}

func (h *AuthorHandler) profile(c *gin.Context, load func(dto.PathParams) (*domain.AuthorProfile, error)) {
	path, err := dto.BindPath(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	profile, err := load(path)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAuthorProfileResponse(profile))
}

// SearchAuthors handles GET /search/authors.
//
// @Summary Search authors by name
// @Tags search
// @Produce json
// @Param query query string true "Name or name fragment"
// @Param autocomplete query bool false "Match word prefixes"
// @Param matchThreshold query int false "Minimum matched terms"
// @Success 200 {object} dto.PaginatedResponse[dto.AuthorResponse]
// @Failure 422 {object} dto.ErrorResponse
// @Router /search/authors [get]
func (h *AuthorHandler) SearchAuthors(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(env, dto.NewAuthorResponse))
}

// RegisterAuthorRoutes registers author routes on the given router group.
func (h *AuthorHandler) RegisterAuthorRoutes(rg gin.IRoutes) {
	rg.GET("/authors", h.ListAuthors)
	rg.GET("/authors/slug/:slug", h.GetAuthorBySlug)
	rg.GET("/authors/:id", h.GetAuthorByID)
	rg.GET("/search/authors", h.SearchAuthors)
}
