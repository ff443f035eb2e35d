package fleet

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smart-waste/internal/pkg/apperrors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type RegisterTruckRequest struct {
	LicensePlate string  `json:"license_plate" binding:"required"`
	Capacity     float64 `json:"capacity" binding:"required"`
}

type RegisterDriverRequest struct {
	Name          string `json:"name" binding:"required"`
	LicenseNumber string `json:"license_number"`
}

type RegisterStaffRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role"`
}

func (h *Handler) RegisterTruck(c *gin.Context) {
	var req RegisterTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}
	t, err := h.service.RegisterTruck(c.Request.Context(), req.LicensePlate, req.Capacity)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) RegisterDriver(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}
	d, err := h.service.RegisterDriver(c.Request.Context(), req.Name, req.LicenseNumber)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) RegisterStaff(c *gin.Context) {
	var req RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}
	m, err := h.service.RegisterStaff(c.Request.Context(), req.Name, req.Role)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetTruck(c *gin.Context) {
	t, err := h.service.GetTruck(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) GetDriver(c *gin.Context) {
	d, err := h.service.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) GetStaff(c *gin.Context) {
	m, err := h.service.GetStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) ListTrucks(c *gin.Context) {
	// ?required_capacity= narrows to free trucks that can carry the load.
	if rc := c.Query("required_capacity"); rc != "" {
		capacity, err := strconv.ParseFloat(rc, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": "required_capacity must be a number"}})
			return
		}
		trucks, err := h.service.SuitableTrucks(c.Request.Context(), capacity)
		if err != nil {
			apperrors.ToHTTPError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"trucks": trucks, "count": len(trucks)})
		return
	}

	trucks, err := h.service.ListTrucks(c.Request.Context(), c.Query("free") == "true")
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trucks": trucks, "count": len(trucks)})
}

func (h *Handler) ListDrivers(c *gin.Context) {
	drivers, err := h.service.ListDrivers(c.Request.Context(), c.Query("available") == "true")
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers, "count": len(drivers)})
}

func (h *Handler) ListStaff(c *gin.Context) {
	staff, err := h.service.ListStaff(c.Request.Context(), c.Query("available") == "true")
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff, "count": len(staff)})
}
