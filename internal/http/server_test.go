package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"language-assistant-api/internal/config"
	"language-assistant-api/internal/database"
	"language-assistant-api/internal/models"
)

var (
	testEngine *gin.Engine
	setupOnce  sync.Once
)

// setupTest builds the engine once over an in-memory database and truncates
// the tables before every test.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		logrus.SetOutput(io.Discard)

		database.ConnectTest()
		if err := database.DB.AutoMigrate(&models.User{}, &models.Detection{}); err != nil {
			panic(err)
		}

		cfg := &config.Config{
			Port:         "0",
			AllowOrigins: "*",
			JWTSecret:    []byte("test-secret"),
			BcryptCost:   bcrypt.MinCost,
		}
		testEngine = NewServer(cfg)
	})

	database.DB.Exec("DELETE FROM detections")
	database.DB.Exec("DELETE FROM users")
	return testEngine
}

func perform(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// createVerifiedUser seeds a user directly in the store, skipping the mail
// round-trip, for tests that are not about the registration flow.
func createVerifiedUser(t *testing.T, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:     "Test User",
		Username: username,
		Email:    email,
		Password: string(hash),
		Verified: true,
	}
	require.NoError(t, database.DB.Create(user).Error)
	return user
}

func storedCode(t *testing.T, userID uint) string {
	t.Helper()

	var user models.User
	require.NoError(t, database.DB.First(&user, userID).Error)
	return user.VerificationToken
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func userByUsername(t *testing.T, username string) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, database.DB.Where("username = ?", username).First(&user).Error)
	return &user
}
