package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key"

// Config holds application configuration
type Config struct {
	Port          string
	JWTKey        string
	SaltRound     int
	TokenTTLHours int
	FrontendURL   string
	StaticDir     string
	LogMode       string
	RateLimitMax  int
	AuthLimitMax  int

	StoreDriver string // file, sqlite, postgres
	DBPath      string // flat-file document
	SQLitePath  string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	SeedFile    string

	RedisAddr     string
	RedisPassword string

	SendgridAPIKey string
	EmailSender    string
	WebhookURL     string

	BackupDir  string
	BackupCron string
	BackupKeep int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = FromEnv()

	if AppConfig.JWTKey == defaultJWTSecret {
		log.Println("Warning: Using default JWT_SECRET. Update it in your environment.")
	}
}

// FromEnv builds a Config from the current process environment.
func FromEnv() *Config {
	return &Config{
		Port:          getEnv("PORT", "10000"),
		JWTKey:        getEnv("JWT_SECRET", defaultJWTSecret),
		SaltRound:     getEnvInt("SALT_ROUND", 10),
		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 0),
		FrontendURL:   getEnv("FRONTEND_URL", "*"),
		StaticDir:     getEnv("STATIC_DIR", "public"),
		LogMode:       getEnv("LOG_MODE", "dev"),
		RateLimitMax:  getEnvInt("RATE_LIMIT_MAX", 100),
		AuthLimitMax:  getEnvInt("AUTH_RATE_LIMIT_MAX", 10),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", "file")),
		DBPath:      getEnv("DB_PATH", "db.json"),
		SQLitePath:  getEnv("SQLITE_PATH", "elearn.db"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBName:      getEnv("DB_NAME", "elearn"),
		DBPort:      getEnv("DB_PORT", "5432"),
		SeedFile:    getEnv("SEED_FILE", "seed/courses.yaml"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", ""),
		WebhookURL:     getEnv("WEBHOOK_URL", ""),

		BackupDir:  getEnv("BACKUP_DIR", "backups"),
		BackupCron: getEnv("BACKUP_CRON", "0 3 * * *"),
		BackupKeep: getEnvInt("BACKUP_KEEP", 7),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
