package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	AdminDBUrl  string // elevated-privilege connection, bypasses row-level policies
	FrontendURL string
	// JWT Configuration
	JWTSecret      string
	JWTExpiryHours int
	// AI Service (interview + resume parsing)
	AIServiceURL string
	// S3-compatible object storage
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3Endpoint        string
	S3PublicBaseURL   string
	// Redis Configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitAuthThreshold   int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; ignored in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		AdminDBUrl:  getEnv("DATABASE_ADMIN_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// JWT Configuration
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 168), // 7 days
		// AI Service
		AIServiceURL: strings.TrimRight(getEnv("AI_SERVICE_URL", "http://localhost:8000"), "/"),
		// S3 Configuration
		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "ap-southeast-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3PublicBaseURL:   strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	// The elevated handle falls back to the primary connection when a
	// dedicated role is not configured (single-role deployments).
	if cfg.AdminDBUrl == "" {
		cfg.AdminDBUrl = cfg.DBUrl
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Issued tokens will not survive restarts.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
