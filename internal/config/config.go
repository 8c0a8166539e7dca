package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string

	JWTIssuer    string
	JWTSecretKey string

	S3Bucket    string
	S3Region    string
	S3BucketURL string

	ResendAPIKey string
	MailFrom     string
	MailReplyTo  string

	GinMode   string
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "muji"),
		DBPassword: getEnv("DB_PASSWORD", "muji"),
		DBName:     getEnv("DB_NAME", "team_match"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JWTIssuer:    getEnv("JWT_ISSUER", "team-match-api"),
		JWTSecretKey: getEnv("JWT_SECRET_KEY", "default-secret-key-change-me"),

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "ap-northeast-2"),
		S3BucketURL: getEnv("S3_BUCKET_URL", ""),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		MailFrom:     getEnv("MAIL_FROM", "Team Match <onboarding@resend.dev>"),
		MailReplyTo:  getEnv("MAIL_REPLY_TO", ""),

		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
