package bin

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

type CreateBinRequest struct {
	Location  string  `json:"location" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Capacity  float64 `json:"capacity" binding:"required"`
}

type UpdateLevelRequest struct {
	CurrentLevel *float64 `json:"current_level" binding:"required"`
}

type BinResponse struct {
	*SmartBin
	Color string `json:"color"`
}

func toResponse(b *SmartBin) BinResponse {
	return BinResponse{SmartBin: b, Color: b.Color()}
}

func toResponses(bins []*SmartBin) []BinResponse {
	out := make([]BinResponse, 0, len(bins))
	for _, b := range bins {
		out = append(out, toResponse(b))
	}
	return out
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}

	b, err := h.service.Create(c.Request.Context(), req.Location, req.Latitude, req.Longitude, req.Capacity)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(b))
}

func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.service.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if statusParam := c.Query("status"); statusParam != "" {
		status, err := ParseStatus(statusParam)
		if err != nil {
			apperrors.ToHTTPError(c, err)
			return
		}
		bins, err := h.service.ListByStatus(ctx, status)
		if err != nil {
			apperrors.ToHTTPError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bins": toResponses(bins), "count": len(bins)})
		return
	}

	if location := c.Query("location"); location != "" {
		bins, err := h.service.ListByLocation(ctx, location)
		if err != nil {
			apperrors.ToHTTPError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bins": toResponses(bins), "count": len(bins)})
		return
	}

	bins, err := h.service.ListAll(ctx)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bins": toResponses(bins), "count": len(bins)})
}

func (h *Handler) UpdateLevel(c *gin.Context) {
	var req UpdateLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}

	b, err := h.service.UpdateLevel(c.Request.Context(), c.Param("id"), *req.CurrentLevel)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(b))
}

func (h *Handler) MarkCollected(c *gin.Context) {
	b, err := h.service.MarkCollected(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bin deleted"})
}
