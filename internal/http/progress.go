package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"language-assistant-api/internal/database"
	"language-assistant-api/internal/models"
)

// POST /progressPoints
func (s *Server) addProgressPoints(c *gin.Context) {
	var input struct {
		UserID            uint `json:"userId" binding:"required"`
		ProgressIncrement int  `json:"progressIncrement" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"message": "userId and progressIncrement are required"})
		return
	}
	if input.ProgressIncrement < 0 {
		c.JSON(400, gin.H{"message": "progressIncrement must not be negative"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(404, gin.H{"message": "User not found"})
		return
	}

	// single-expression increment, so two concurrent awards both count
	err := database.DB.Model(&models.User{}).
		Where("id = ?", input.UserID).
		UpdateColumn("progress_points", gorm.Expr("progress_points + ?", input.ProgressIncrement)).Error
	if err != nil {
		logrus.WithError(err).Error("failed to add progress points")
		c.JSON(500, gin.H{"message": "error updating progress"})
		return
	}

	if err := database.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(500, gin.H{"message": "error updating progress"})
		return
	}

	c.JSON(200, gin.H{"progressPoints": user.ProgressPoints, "level": user.Level()})
}

// GET /progressPoints?userId=
func (s *Server) getProgressPoints(c *gin.Context) {
	id, ok := parseUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(404, gin.H{"message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"progressPoints": user.ProgressPoints, "level": user.Level()})
}
