package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/travelbook/holidaybooking/internal/domain"
	"github.com/travelbook/holidaybooking/internal/service/order"
)

type OrderHandler struct {
	service order.OrderUseCase
}

func NewOrderHandler(service order.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/checkout", h.checkout)
	router.POST("/:id/capture", h.capture)
}

func (h *OrderHandler) list(c *gin.Context) {
	claims := claimsFrom(c)
	orders, err := h.service.OrdersForUser(c.Request.Context(), claims.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) get(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if claims := claimsFrom(c); claims == nil || (!claims.IsAdmin && o.Email != claims.Email) {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) checkout(c *gin.Context) {
	claims := claimsFrom(c)
	o, err := h.service.Checkout(c.Request.Context(), claims.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// capture is called by the payment collaborator's callback once the
// payment settles.
func (h *OrderHandler) capture(c *gin.Context) {
	existing, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if claims := claimsFrom(c); claims == nil || (!claims.IsAdmin && existing.Email != claims.Email) {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrNotFound.Error()})
		return
	}

	o, err := h.service.MarkPaid(c.Request.Context(), existing.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
