package handlers

import (
	"fmt"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/Tomm10100/el-dorado-ecommerce/analytics"
	"github.com/Tomm10100/el-dorado-ecommerce/cart"
	"github.com/Tomm10100/el-dorado-ecommerce/config"

	"github.com/gin-gonic/gin"
)

// xrpUSDRate is the fixed demo conversion rate, 1 XRP = $0.50.
const xrpUSDRate = 0.50

type CheckoutHandler struct {
	Persist cart.Persistence
	Sink    *analytics.Sink
}

func (h *CheckoutHandler) loadStore(c *gin.Context) *cart.Store {
	key := c.GetString("cart_key")
	return cart.Load(key, h.Persist, h.Sink)
}

func checkoutItems(s *cart.Store) []analytics.Item {
	var items []analytics.Item
	for _, line := range s.Lines() {
		items = append(items, analytics.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return items
}

// CheckoutCard starts a card payment. The gateway is not wired to a real
// processor, so a missing or placeholder publishable key disables the flow
// instead of failing mid-payment.
func (h *CheckoutHandler) CheckoutCard(c *gin.Context) {
	s := h.loadStore(c)
	if s.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}

	publishableKey := os.Getenv("STRIPE_PUBLISHABLE_KEY")
	if publishableKey == "" || strings.Contains(publishableKey, "YOUR_") {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Card payments are not configured yet. Please use crypto checkout or try again later."})
		return
	}

	h.Sink.Track(analytics.Event{
		Name:    analytics.EventBeginCheckout,
		CartKey: s.Key(),
		Value:   s.Total(),
		Items:   checkoutItems(s),
	})

	c.JSON(http.StatusOK, gin.H{
		"publishable_key": publishableKey,
		"total":           s.Total(),
		"currency":        "USD",
		"message":         "Card checkout is in demo mode. No charge has been made.",
	})
}

// CheckoutCrypto quotes the cart in XRP at a fixed rate and returns the
// payment address with manual-confirmation instructions.
func (h *CheckoutHandler) CheckoutCrypto(c *gin.Context) {
	s := h.loadStore(c)
	if s.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}

	total := s.Total()
	xrpAmount := math.Round(total/xrpUSDRate*100) / 100

	address := config.GetEnv("XRP_ADDRESS", "rYOUR_XRP_ADDRESS_HERE")
	supportEmail := config.GetEnv("SUPPORT_EMAIL", "tommy@innovlead.ca")

	c.JSON(http.StatusOK, gin.H{
		"address":      address,
		"xrp_amount":   xrpAmount,
		"rate_usd":     xrpUSDRate,
		"total_usd":    total,
		"instructions": fmt.Sprintf("Send %.2f XRP to the address above, then email your transaction ID to %s so we can confirm your order.", xrpAmount, supportEmail),
	})
}
