package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotable-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotable-api/internal/app"
)

// InfoHandler serves dataset information.
type InfoHandler struct {
	service *app.InfoService
}

// NewInfoHandler creates a new info handler.
func NewInfoHandler(service *app.InfoService) *InfoHandler {
	return &InfoHandler{service: service}
}

// GetInfo handles GET /info.
//
// @Summary Dataset version and collection sizes
// @Tags info
// @Produce json
// @Success 200 {object} dto.InfoResponse
// @Router /info [get]
func (h *InfoHandler) GetInfo(c *gin.Context) {
	info, err := h.service.Info(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInfoResponse(info))
}

// GetCount handles GET /info/count.
//
// @Summary Collection sizes
// @Tags info
// @Produce json
// @Success 200 {object} dto.CountResponse
// @Router /info/count [get]
func (h *InfoHandler) GetCount(c *gin.Context) {
	counts, err := h.service.Count(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCountResponse(*counts))
}

// RegisterInfoRoutes registers info routes on the given router group.
func (h *InfoHandler) RegisterInfoRoutes(rg gin.IRoutes) {
	rg.GET("/info", h.GetInfo)
	rg.GET("/info/count", h.GetCount)
}
