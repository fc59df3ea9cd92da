package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"

	"language-assistant-api/internal/database"
	"language-assistant-api/internal/models"
)

// POST /detection
func (s *Server) saveDetection(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"message": "failed to read request body"})
		return
	}

	res, err := s.detectionSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		c.JSON(400, gin.H{"message": "invalid JSON body"})
		return
	}
	if !res.Valid() {
		details := []string{}
		for _, e := range res.Errors() {
			details = append(details, e.String())
		}
		c.JSON(400, gin.H{"message": "missing or invalid fields", "details": details})
		return
	}

	var input struct {
		UserID      uint    `json:"userId"`
		ClassName   string  `json:"className"`
		Probability float64 `json:"probability"`
		Image       string  `json:"image"`
	}
	if err := json.Unmarshal(body, &input); err != nil {
		c.JSON(400, gin.H{"message": "invalid JSON body"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(404, gin.H{"message": "User not found"})
		return
	}

	image, err := base64.StdEncoding.DecodeString(input.Image)
	if err != nil {
		c.JSON(400, gin.H{"message": "image must be base64 encoded"})
		return
	}

	var existing models.Detection
	err = database.DB.Where("user_id = ? AND class_name = ?", input.UserID, input.ClassName).
		First(&existing).Error
	if err == nil {
		c.JSON(409, gin.H{"message": "Class already detected"})
		return
	}

	detection := models.Detection{
		UserID:      input.UserID,
		ClassName:   input.ClassName,
		Probability: input.Probability,
		Image:       image,
	}
	if err := database.DB.Create(&detection).Error; err != nil {
		// the unique index catches concurrent submits of the same class
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(409, gin.H{"message": "Class already detected"})
			return
		}
		logrus.WithError(err).Error("failed to save detection")
		c.JSON(500, gin.H{"message": "error saving detection"})
		return
	}

	c.JSON(200, gin.H{"message": "Detection saved"})
}

// GET /detection?userId=
func (s *Server) listDetections(c *gin.Context) {
	id, ok := parseUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(404, gin.H{"message": "User not found"})
		return
	}

	var detections []models.Detection
	err := database.DB.Where("user_id = ?", id).
		Order("created_at desc, id desc").
		Find(&detections).Error
	if err != nil {
		logrus.WithError(err).Error("failed to list detections")
		c.JSON(500, gin.H{"message": "error listing detections"})
		return
	}

	items := make([]gin.H, 0, len(detections))
	for _, d := range detections {
		items = append(items, gin.H{
			"className":   d.ClassName,
			"probability": d.Probability,
			"image":       base64.StdEncoding.EncodeToString(d.Image),
			"createdAt":   d.CreatedAt,
		})
	}

	c.JSON(200, gin.H{"detectedImages": items})
}

// DELETE /deleteAllImages
func (s *Server) deleteAllImages(c *gin.Context) {
	var input struct {
		UserID uint `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"message": "userId is required"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(404, gin.H{"message": "User not found"})
		return
	}

	// deleting zero rows is fine, the call is idempotent
	if err := database.DB.Where("user_id = ?", input.UserID).Delete(&models.Detection{}).Error; err != nil {
		logrus.WithError(err).Error("failed to delete detections")
		c.JSON(500, gin.H{"message": "error deleting images"})
		return
	}

	c.JSON(200, gin.H{"message": "All images deleted"})
}

// POST /profilePicture
func (s *Server) setProfilePicture(c *gin.Context) {
	var input struct {
		UserID         uint   `json:"userId" binding:"required"`
		ProfilePicture string `json:"profilePicture" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"message": "userId and profilePicture are required"})
		return
	}

	picture, err := base64.StdEncoding.DecodeString(input.ProfilePicture)
	if err != nil {
		c.JSON(400, gin.H{"message": "profilePicture must be base64 encoded"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, input.UserID).Error; err != nil {
		c.JSON(404, gin.H{"message": "User not found"})
		return
	}

	if err := database.DB.Model(&user).Update("profile_picture", picture).Error; err != nil {
		logrus.WithError(err).Error("failed to store profile picture")
		c.JSON(500, gin.H{"message": "error updating profile picture"})
		return
	}

	c.JSON(200, gin.H{"message": "Profile picture updated"})
}
