package dispatch

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smart-waste/internal/pkg/apperrors"
	"smart-waste/internal/route"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CreateRouteBody struct {
	GroupIndex *int     `json:"group_index"`
	Date       string   `json:"date"` // YYYY-MM-DD, defaults to today
	TruckID    *string  `json:"truck_id"`
	DriverID   *string  `json:"driver_id"`
	StaffIDs   []string `json:"staff_ids"`
}

type AssignResourcesBody struct {
	TruckID  *string  `json:"truck_id"`
	DriverID *string  `json:"driver_id"`
	StaffIDs []string `json:"staff_ids"`
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) CreateRoute(c *gin.Context) {
	var body CreateRouteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}

	req := CreateRouteRequest{
		GroupIndex: body.GroupIndex,
		TruckID:    body.TruckID,
		DriverID:   body.DriverID,
		StaffIDs:   body.StaffIDs,
	}
	if body.Date != "" {
		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": "date must be YYYY-MM-DD"}})
			return
		}
		req.Date = date
	}

	rt, err := h.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}

func (h *Handler) AssignResources(c *gin.Context) {
	var body AssignResourcesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}

	rt, err := h.service.AssignResources(c.Request.Context(), c.Param("id"), body.TruckID, body.DriverID, body.StaffIDs)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}

	status, err := route.ParseStatus(body.Status)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}

	rt, err := h.service.UpdateRouteStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (h *Handler) CompleteStop(c *gin.Context) {
	st, err := h.service.CompleteStop(c.Request.Context(), c.Param("stopId"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
