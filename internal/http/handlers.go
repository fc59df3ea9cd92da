package http

import (
	_ "embed"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"language-assistant-api/internal/config"
	"language-assistant-api/internal/mail"
)

//go:embed detection_schema.json
var detectionSchemaJSON []byte

type Server struct {
	cfg             *config.Config
	mailer          *mail.Mailer
	detectionSchema *gojsonschema.Schema
}

func NewServer(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))
	r.Use(logging())

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(detectionSchemaJSON))
	if err != nil {
		panic(err)
	}

	s := &Server{
		cfg:             cfg,
		mailer:          mail.New(cfg.MailURL, time.Duration(cfg.MailTimeoutSec)*time.Second),
		detectionSchema: schema,
	}

	// Auth
	r.POST("/register", s.register)
	r.POST("/verify", s.verify)
	r.POST("/login", s.login)
	r.POST("/forgotpass", s.forgotPassword)
	r.POST("/resetpass", s.resetPassword)
	r.GET("/user/:userId", s.getUser)

	// Detection history
	r.POST("/detection", s.saveDetection)
	r.GET("/detection", s.listDetections)
	r.DELETE("/deleteAllImages", s.deleteAllImages)
	r.POST("/profilePicture", s.setProfilePicture)

	// Progress
	r.POST("/progressPoints", s.addProgressPoints)
	r.GET("/progressPoints", s.getProgressPoints)

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

// parseUserID converts a userId taken from a path or query parameter,
// answering 400 itself when the value is missing or not a positive integer.
func parseUserID(c *gin.Context, raw string) (uint, bool) {
	if raw == "" {
		c.JSON(400, gin.H{"message": "userId is required"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(400, gin.H{"message": "invalid userId"})
		return 0, false
	}
	return uint(id), true
}
