package configs

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AppEnv   string
	LogLevel string

	DBDriver string
	DBSource string
	Port     string

	JWTSecret  string
	JWTTTL     time.Duration
	CookieName string

	CORSOrigins   []string
	PublicBaseURL string // prefix of the menu URL printed in table QR codes
	UploadDir     string

	RabbitMQURL string
	SeedFile    string

	OwnerUsername string
	OwnerPassword string
	OwnerName     string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn("no .env file, using environment only")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		logrus.WithError(err).Warn("invalid JWT_TTL, falling back to 24h")
		ttl = 24 * time.Hour
	}

	return &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBSource:      getEnv("DB_SOURCE", "restx.db"),
		Port:          getEnv("PORT", "8000"),
		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTTTL:        ttl,
		CookieName:    getEnv("COOKIE_NAME", "restx_token"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8000"), "/"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		SeedFile:      os.Getenv("SEED_FILE"),
		OwnerUsername: os.Getenv("OWNER_USERNAME"),
		OwnerPassword: os.Getenv("OWNER_PASSWORD"),
		OwnerName:     getEnv("OWNER_NAME", "RestX"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
