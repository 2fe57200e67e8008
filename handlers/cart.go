package handlers

import (
	"net/http"
	"strconv"

	"github.com/Tomm10100/el-dorado-ecommerce/analytics"
	"github.com/Tomm10100/el-dorado-ecommerce/cart"
	"github.com/Tomm10100/el-dorado-ecommerce/models"
	"github.com/Tomm10100/el-dorado-ecommerce/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB      *gorm.DB
	Persist cart.Persistence
	Sink    *analytics.Sink
}

// loadStore builds the cart store for the request's cart key. The key is set
// by the cart key middleware before any cart route runs.
func (h *CartHandler) loadStore(c *gin.Context) *cart.Store {
	key := c.GetString("cart_key")
	return cart.Load(key, h.Persist, h.Sink)
}

func cartResponse(s *cart.Store) gin.H {
	return gin.H{
		"items":      s.Lines(),
		"total":      s.Total(),
		"item_count": s.ItemCount(),
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	s := h.loadStore(c)
	c.JSON(http.StatusOK, cartResponse(s))
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ?", req.ProductID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	s := h.loadStore(c)
	if err := s.AddItem(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(s))
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	// Pointer so zero survives binding; quantities below one are clamped
	// to one by the store rather than rejected.
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	s := h.loadStore(c)
	if _, ok := s.Line(uint(productID)); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not in cart"})
		return
	}

	if err := s.UpdateQuantity(uint(productID), *req.Quantity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(s))
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	s := h.loadStore(c)
	if err := s.RemoveItem(uint(productID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	resp := cartResponse(s)
	resp["message"] = "Item removed from cart"
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	s := h.loadStore(c)
	if err := s.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}

	resp := cartResponse(s)
	resp["message"] = "Cart cleared"
	c.JSON(http.StatusOK, resp)
}
