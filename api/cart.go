package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/travelbook/holidaybooking/internal/service/cart"
)

type CartHandler struct {
	service cart.CartUseCase
}

const dateLayout = "2006-01-02"

type addItemRequest struct {
	PackageID  int64  `json:"package_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	Travellers int    `json:"travellers" binding:"required"`
}

type updateItemRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Travellers int    `json:"travellers" binding:"required"`
}

type cartItemResponse struct {
	BookingID  int64  `json:"booking_id"`
	PackageID  int64  `json:"package_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Travellers int    `json:"travellers"`
	PriceCents int64  `json:"price_cents"`
	Status     string `json:"status"`
}

func NewCartHandler(service cart.CartUseCase) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.add)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *CartHandler) list(c *gin.Context) {
	claims := claimsFrom(c)
	items, err := h.service.Items(c.Request.Context(), claims.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_cents": cart.Total(items),
	})
}

func (h *CartHandler) add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}

	claims := claimsFrom(c)
	booking, err := h.service.AddItem(c.Request.Context(), cart.AddItemInput{
		Email:      claims.Email,
		PackageID:  req.PackageID,
		StartDate:  startDate,
		Travellers: req.Travellers,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCartItemResponse(booking.ID, booking.PackageID, booking.StartDate, booking.EndDate, booking.Travellers, booking.PriceCents, string(booking.Status)))
}

// update accepts exactly one of start_date/end_date as the
// authoritative end of the stay; the other is recomputed from the
// package duration.
func (h *CartHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := cart.UpdatePatch{Travellers: req.Travellers}
	if req.StartDate != "" {
		t, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		patch.StartDate = &t
	}
	if req.EndDate != "" {
		t, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		patch.EndDate = &t
	}

	claims := claimsFrom(c)
	booking, err := h.service.UpdateItem(c.Request.Context(), claims.Email, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartItemResponse(booking.ID, booking.PackageID, booking.StartDate, booking.EndDate, booking.Travellers, booking.PriceCents, string(booking.Status)))
}

func (h *CartHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	claims := claimsFrom(c)
	if err := h.service.RemoveItem(c.Request.Context(), claims.Email, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func toCartItemResponse(bookingID, packageID int64, start, end time.Time, travellers int, priceCents int64, status string) cartItemResponse {
	return cartItemResponse{
		BookingID:  bookingID,
		PackageID:  packageID,
		StartDate:  start.Format(dateLayout),
		EndDate:    end.Format(dateLayout),
		Travellers: travellers,
		PriceCents: priceCents,
		Status:     status,
	}
}
