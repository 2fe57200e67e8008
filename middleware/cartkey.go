package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartKeyCookie names the cookie carrying a visitor's cart key. The key
// identifies one browser profile's cart; it is not an authenticated
// identity.
const CartKeyCookie = "eldorado_cart"

// cartKeyMaxAge keeps the cart for a year of inactivity.
const cartKeyMaxAge = 365 * 24 * 60 * 60

// CartKeyMiddleware resolves the caller's cart key and stores it in the
// request context. Resolution order: X-Cart-Key header (non-browser
// clients), then cookie, otherwise a fresh key is issued and set as a
// cookie so the visitor gets a stable cart across page loads.
func CartKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Cart-Key")
		if key == "" {
			if cookie, err := c.Cookie(CartKeyCookie); err == nil {
				key = cookie
			}
		}
		if key == "" {
			key = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CartKeyCookie, key, cartKeyMaxAge, "/", "", false, true)
		}

		c.Set("cart_key", key)
		c.Next()
	}
}
