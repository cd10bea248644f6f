package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotable-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotable-api/internal/app"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	service *app.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(service *app.TagService) *TagHandler {
	return &TagHandler{service: service}
}

// ListTags handles GET /tags.
// Returns every tag with the number of quotes carrying it.
//
// @Summary List tags
// @Tags tags
// @Produce json
// @Param sortBy query string false "name or quoteCount"
// @Success 200 {array} dto.TagResponse
// @Router /tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	params, err := dto.BindQuery(c)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	tags, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTagResponses(tags))
}

// RegisterTagRoutes registers tag routes on the given router group.
func (h *TagHandler) RegisterTagRoutes(rg gin.IRoutes) {
	rg.GET("/tags", h.ListTags)
}
