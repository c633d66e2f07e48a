package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homechefs/backend/internal/catalog"
	"homechefs/backend/internal/models"
)

type placeOrderRequest struct {
	RecipeID int64  `json:"recipeId" binding:"required"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

// PlaceOrder records an order for a catalog recipe with its chef.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visitorID := currentUserID(c)
	visitor, err := h.Dir.UserByID(visitorID)
	if err != nil || visitor == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}

	order, err := h.Catalog.PlaceOrder(req.RecipeID, visitorID, visitor.DisplayName(), req.Quantity, req.Note)
	if errors.Is(err, catalog.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ChefOrders lists orders addressed to the calling chef.
func (h *Handler) ChefOrders(c *gin.Context) {
	if c.GetString("role") != string(models.RoleChef) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only chefs have orders"})
		return
	}

	orders, err := h.Catalog.OrdersForChef(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves one of the chef's orders to a new state.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Catalog.UpdateOrderStatus(uint(id), currentUserID(c), req.Status)
	if errors.Is(err, catalog.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}
