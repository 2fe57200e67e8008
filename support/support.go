// Package support implements the storefront's canned-response chatbot: an
// ordered keyword-to-reply lookup with a default fallback. It is not an AI;
// it answers the handful of questions a jewelry storefront actually gets.
package support

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Tomm10100/el-dorado-ecommerce/config"
	"github.com/Tomm10100/el-dorado-ecommerce/models"
)

type Responder struct {
	DB *gorm.DB
}

func NewResponder(db *gorm.DB) *Responder {
	return &Responder{DB: db}
}

// contains reports whether message matches any of the keywords.
func contains(message string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

// catalogListing renders the current collection as a reply fragment, one
// line per product. Falls back to a generic line when the catalog cannot be
// read, so the chatbot never errors at the visitor.
func (r *Responder) catalogListing() (string, int) {
	var products []models.Product
	if r.DB == nil || r.DB.Order("id").Find(&products).Error != nil || len(products) == 0 {
		return "", 0
	}
	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "%s — $%.0f\n", p.Name, p.Price)
	}
	return b.String(), len(products)
}

// Reply picks the first matching canned response for message. Rules are
// checked in order; the last rule always matches.
func (r *Responder) Reply(message string) string {
	m := strings.ToLower(message)

	switch {
	case contains(m, "product", "collection", "jewelry"):
		listing, n := r.catalogListing()
		if n == 0 {
			return "Our Lunar Elegance Collection features premium sterling silver pieces. Browse the shop section to see what is currently available."
		}
		return fmt.Sprintf("Our Lunar Elegance Collection features %d premium pieces:\n\n%s\nAll crafted in 925 sterling silver with 963Hz resonance. Which piece calls to you?", n, listing)

	case contains(m, "963", "frequency", "resonance"):
		return "963Hz is the 'Frequency of the Gods'. It promotes spiritual awakening, enhanced clarity, elevated consciousness and positive energy flow. Each El Dorado piece is designed to resonate at this frequency."

	case contains(m, "ship", "delivery", "how long"):
		return "We offer worldwide shipping. Standard: 5-7 business days ($15). Express: 2-3 business days ($25). Free shipping on orders over $400. All orders are insured and tracked."

	case contains(m, "material", "silver", "quality"):
		return "Premium 925 sterling silver: 92.5% pure silver content, hypoallergenic and skin-safe, tarnish-resistant coating, lifetime quality guarantee, ethically sourced. Every piece comes with an authentication certificate."

	case contains(m, "price", "cost", "how much"):
		listing, n := r.catalogListing()
		if n == 0 {
			return "Our collection ranges from $200 to $1,200. All prices include an authentication certificate and premium packaging."
		}
		return fmt.Sprintf("Current prices:\n\n%s\nAll prices include an authentication certificate and premium packaging.", listing)

	case contains(m, "payment", "pay", "stripe", "crypto"):
		return "We accept credit and debit cards (via Stripe) and XRP cryptocurrency. All transactions are secure and encrypted."

	case contains(m, "return", "refund", "guarantee"):
		return "30-day money-back guarantee. Not in love with your piece? Return it within 30 days for a full refund, no questions asked. Free return shipping and a lifetime warranty on craftsmanship."

	case contains(m, "contact", "email", "support"):
		return fmt.Sprintf("Contact us at %s. Response time: within 4 hours. Or keep chatting with me, I'm here 24/7.", config.GetEnv("SUPPORT_EMAIL", "tommy@innovlead.ca"))

	default:
		return "I'm here to help! Ask me about our products and prices, 963Hz resonance, shipping and delivery, payment options, or customer support."
	}
}
