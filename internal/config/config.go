package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Port           string
	AllowOrigins   string
	JWTSecret      []byte
	MailURL        string
	MailTimeoutSec int
	AnnounceURL    string
	BcryptCost     int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads the process configuration from the environment. The signing
// secret is read exactly once here; when JWT_SECRET is unset a random one is
// generated, so every issued session token dies with the process.
func Load() *Config {
	secret := getenv("JWT_SECRET", "")
	if secret == "" {
		secret = randomSecret()
		logrus.Warn("JWT_SECRET not set, generated a one-off signing secret; sessions will not survive a restart")
	}

	return &Config{
		Port:           getenv("PORT", "3001"),
		AllowOrigins:   getenv("ALLOW_ORIGINS", "*"),
		JWTSecret:      []byte(secret),
		MailURL:        getenv("MAIL_URL", ""),
		MailTimeoutSec: atoi("MAIL_TIMEOUT_SECONDS", 10),
		AnnounceURL:    getenv("ANNOUNCE_URL", ""),
		BcryptCost:     atoi("BCRYPT_COST", 10),
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
