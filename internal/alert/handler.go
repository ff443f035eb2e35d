package alert

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

func (h *Handler) ListAll(c *gin.Context) {
	alerts, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

func (h *Handler) ListUnreviewed(c *gin.Context) {
	alerts, err := h.service.ListUnreviewed(c.Request.Context())
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

func (h *Handler) GetByBin(c *gin.Context) {
	a, err := h.service.GetByBinID(c.Request.Context(), c.Param("binId"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) MarkReviewed(c *gin.Context) {
	a, err := h.service.MarkReviewed(c.Request.Context(), c.Param("binId"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
