package route

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smart-waste/internal/pkg/apperrors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Get(c *gin.Context) {
	rt, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if statusParam := c.Query("status"); statusParam != "" {
		status, err := ParseStatus(statusParam)
		if err != nil {
			apperrors.ToHTTPError(c, err)
			return
		}
		routes, err := h.service.ListByStatus(ctx, status)
		if err != nil {
			apperrors.ToHTTPError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"routes": routes, "count": len(routes)})
		return
	}

	if driverID := c.Query("driver_id"); driverID != "" {
		routes, err := h.service.ListByDriver(ctx, driverID)
		if err != nil {
			apperrors.ToHTTPError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"routes": routes, "count": len(routes)})
		return
	}

	if staffID := c.Query("staff_id"); staffID != "" {
		routes, err := h.service.ListByStaff(ctx, staffID)
		if err != nil {
			apperrors.ToHTTPError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"routes": routes, "count": len(routes)})
		return
	}

	if fromParam := c.Query("from"); fromParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": "from must be YYYY-MM-DD"}})
			return
		}
		to := from.AddDate(0, 0, 1)
		if toParam := c.Query("to"); toParam != "" {
			to, err = time.Parse("2006-01-02", toParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": "to must be YYYY-MM-DD"}})
				return
			}
		}
		routes, err := h.service.ListByDateRange(ctx, from, to)
		if err != nil {
			apperrors.ToHTTPError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"routes": routes, "count": len(routes)})
		return
	}

	routes, err := h.service.ListAll(ctx)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes, "count": len(routes)})
}

func (h *Handler) ListStops(c *gin.Context) {
	stops, err := h.service.ListStops(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stops": stops, "count": len(stops)})
}

func (h *Handler) GetStop(c *gin.Context) {
	st, err := h.service.GetStop(c.Request.Context(), c.Param("stopId"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
