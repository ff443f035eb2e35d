package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-waste/internal/pkg/apperrors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) WasteByLocation(c *gin.Context) {
	out, err := h.service.WasteByLocation(c.Request.Context())
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"waste_by_location": out})
}

func (h *Handler) BinStatus(c *gin.Context) {
	out, err := h.service.BinStatusBreakdown(c.Request.Context())
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bin_status": out})
}
