package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/travelbook/holidaybooking/internal/domain"
	"github.com/travelbook/holidaybooking/internal/service/admin"
)

type AdminHandler struct {
	service admin.AdminUseCase
}

type upsertPackageRequest struct {
	PackageID    int64  `json:"package_id"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	LocationID   int64  `json:"location_id" binding:"required"`
	DurationDays int    `json:"duration_days" binding:"required"`
	PriceCents   int64  `json:"price_cents" binding:"required"`
}

type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewAdminHandler(service admin.AdminUseCase) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.PUT("/packages", h.upsertPackage)
	router.DELETE("/packages/:id", h.deletePackage)
	router.GET("/users", h.listUsers)
	router.PUT("/users/:email/admin", h.setUserAdmin)
	router.GET("/bookings", h.listBookings)
	router.PUT("/bookings/:id/status", h.setBookingStatus)
}

func (h *AdminHandler) upsertPackage(c *gin.Context) {
	var req upsertPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pkg, err := h.service.UpsertPackage(c.Request.Context(), admin.PackageInput{
		ID:           req.PackageID,
		Name:         req.Name,
		Description:  req.Description,
		LocationID:   req.LocationID,
		DurationDays: req.DurationDays,
		PriceCents:   req.PriceCents,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package_id": pkg.ID})
}

func (h *AdminHandler) deletePackage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.DeletePackage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) setUserAdmin(c *gin.Context) {
	var req setAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := claimsFrom(c)
	profile, err := h.service.SetUserAdmin(c.Request.Context(), claims.Email, c.Param("email"), *req.IsAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *AdminHandler) setBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.SetBookingStatus(c.Request.Context(), id, domain.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_id": booking.ID, "status": booking.Status})
}
