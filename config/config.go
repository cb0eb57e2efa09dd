package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppMode string

	DataFile           string
	ErrorLogFile       string
	ErrorLogMaxSizeMB  int
	ErrorLogMaxBackups int

	SMTPHost string
	SMTPPort int
	MailUser string
	MailPass string

	AlertEnabled     bool
	AlertWorkers     int
	AlertFromName    string
	AlertFromAddress string
	AlertTo          string

	AlertRedisAddr     string
	AlertRedisPassword string
	AlertRedisChannel  string
	AlertLimit         int
	AlertWindowSeconds int

	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string

	CORSOrigins []string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mailUser := getEnv("MAIL_USER", "")

	return &Config{
		AppPort:            getEnv("APP_PORT", "3000"),
		AppMode:            getEnv("APP_MODE", "debug"),
		DataFile:           getEnv("DATA_FILE", "data.json"),
		ErrorLogFile:       getEnv("ERROR_LOG_FILE", "errors.log"),
		ErrorLogMaxSizeMB:  getEnvAsInt("ERROR_LOG_MAX_SIZE_MB", 100),
		ErrorLogMaxBackups: getEnvAsInt("ERROR_LOG_MAX_BACKUPS", 3),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnvAsInt("SMTP_PORT", 587),
		MailUser:           mailUser,
		MailPass:           getEnv("MAIL_PASS", ""),
		AlertEnabled:       getEnvAsBool("ALERT_ENABLED", true),
		AlertWorkers:       getEnvAsInt("ALERT_WORKERS", 10),
		AlertFromName:      getEnv("ALERT_FROM_NAME", "User Gate Error Handling"),
		AlertFromAddress:   getEnv("ALERT_FROM_ADDRESS", mailUser),
		AlertTo:            getEnv("ALERT_TO", mailUser),
		AlertRedisAddr:     getEnv("ALERT_REDIS_ADDR", ""),
		AlertRedisPassword: getEnv("ALERT_REDIS_PASSWORD", ""),
		AlertRedisChannel:  getEnv("ALERT_REDIS_CHANNEL", "errors.alerts"),
		AlertLimit:         getEnvAsInt("ALERT_LIMIT", 5),
		AlertWindowSeconds: getEnvAsInt("ALERT_WINDOW_SECONDS", 60),
		S3Region:           getEnv("S3_REGION", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3AccessKey:        getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:        getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		CORSOrigins:        getEnvAsList("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
