package handlers

import (
	"net/http"
	"strings"

	"github.com/Tomm10100/el-dorado-ecommerce/models"
	"github.com/Tomm10100/el-dorado-ecommerce/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubscriberHandler struct {
	DB *gorm.DB
}

// Subscribe captures a newsletter signup. Repeat signups with the same email
// are treated as success so the popup never shows an error to someone who is
// already on the list.
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email  string `json:"email" binding:"required,email"`
		Source string `json:"source"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	source := req.Source
	if source == "" {
		source = "popup"
	}

	var existing models.Subscriber
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"message": "You're already on the list"})
		return
	}

	subscriber := models.Subscriber{
		Email:  email,
		Source: source,
	}

	if err := h.DB.Create(&subscriber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}

	utils.SendWelcomeEmail(subscriber.Email)

	c.JSON(http.StatusCreated, gin.H{"message": "Welcome to El Dorado. Check your inbox for your discount code."})
}
