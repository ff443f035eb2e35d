package sensor

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

type SetTypeRequest struct {
	Type string `json:"type" binding:"required"`
}

func (h *Handler) List(c *gin.Context) {
	var (
		sensors []*Sensor
		err     error
	)
	if c.Query("working") == "true" {
		sensors, err = h.service.ListWorking(c.Request.Context())
	} else {
		sensors, err = h.service.ListAll(c.Request.Context())
	}
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sensors": sensors, "count": len(sensors)})
}

func (h *Handler) GetByBin(c *gin.Context) {
	sn, err := h.service.GetByBinID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, sn)
}

func (h *Handler) SetType(c *gin.Context) {
	var req SetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}
	if err := h.service.SetType(c.Request.Context(), c.Param("id"), Type(req.Type)); err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sensor type updated"})
}
