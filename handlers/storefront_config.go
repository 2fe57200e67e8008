package handlers

import (
	"net/http"
	"os"
	"strings"

	"github.com/Tomm10100/el-dorado-ecommerce/config"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct{}

// GetConfig exposes the publishable settings the storefront needs at boot.
// Only values safe to ship to a browser appear here, never API secrets.
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	publishableKey := os.Getenv("STRIPE_PUBLISHABLE_KEY")
	cardEnabled := publishableKey != "" && !strings.Contains(publishableKey, "YOUR_")

	c.JSON(http.StatusOK, gin.H{
		"currency":                "USD",
		"card_checkout_enabled":   cardEnabled,
		"crypto_checkout_enabled": true,
		"ga_measurement_id":       os.Getenv("GA_MEASUREMENT_ID"),
		"fb_pixel_id":             os.Getenv("FB_PIXEL_ID"),
		"tawk_property_id":        os.Getenv("TAWK_PROPERTY_ID"),
		"xrp_address":             config.GetEnv("XRP_ADDRESS", "rYOUR_XRP_ADDRESS_HERE"),
	})
}
