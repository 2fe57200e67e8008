package handlers

import (
	"log"
	"net/http"

	"github.com/Tomm10100/el-dorado-ecommerce/models"
	"github.com/Tomm10100/el-dorado-ecommerce/support"
	"github.com/Tomm10100/el-dorado-ecommerce/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SupportHandler struct {
	DB        *gorm.DB
	Responder *support.Responder
}

// Chat answers a visitor message and records both sides of the exchange
// under the visitor's cart key.
func (h *SupportHandler) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	cartKey := c.GetString("cart_key")
	reply := h.Responder.Reply(req.Message)

	// History is best effort; a write failure should not eat the reply.
	messages := []models.ChatMessage{
		{CartKey: cartKey, Sender: "user", Text: req.Message},
		{CartKey: cartKey, Sender: "bot", Text: reply},
	}
	if err := h.DB.Create(&messages).Error; err != nil {
		log.Printf("Failed to save chat history for %s: %v", cartKey, err)
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (h *SupportHandler) History(c *gin.Context) {
	cartKey := c.GetString("cart_key")

	var messages []models.ChatMessage
	if err := h.DB.Where("cart_key = ?", cartKey).Order("created_at").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat history"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
