package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Discount  DiscountConfig
	WhatsApp  WhatsAppConfig
	Notify    NotifyConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	// Writer selects how settlement records are persisted:
	// "transactional" (default) or "staged".
	Writer string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type DiscountConfig struct {
	OTPExpiryMinutes int
}

type WhatsAppConfig struct {
	BaseURL  string
	Token    string
	SenderID string
	Timeout  time.Duration
	Enabled  bool
}

type NotifyConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "webbill-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "webbill")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_SETTLEMENT_WRITER", "transactional")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("DISCOUNT_OTP_EXPIRY_MINUTES", 5)
	viper.SetDefault("WHATSAPP_BASE_URL", "")
	viper.SetDefault("WHATSAPP_TOKEN", "")
	viper.SetDefault("WHATSAPP_SENDER_ID", "")
	viper.SetDefault("WHATSAPP_TIMEOUT_SECONDS", 10)
	viper.SetDefault("WHATSAPP_ENABLED", false)
	viper.SetDefault("NOTIFY_MAX_ATTEMPTS", 3)
	viper.SetDefault("NOTIFY_RETRY_DELAY_SECONDS", 1)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			Writer:   viper.GetString("DB_SETTLEMENT_WRITER"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			Enabled:  viper.GetBool("REDIS_ENABLED"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Discount: DiscountConfig{
			OTPExpiryMinutes: viper.GetInt("DISCOUNT_OTP_EXPIRY_MINUTES"),
		},
		WhatsApp: WhatsAppConfig{
			BaseURL:  viper.GetString("WHATSAPP_BASE_URL"),
			Token:    viper.GetString("WHATSAPP_TOKEN"),
			SenderID: viper.GetString("WHATSAPP_SENDER_ID"),
			Timeout:  time.Duration(viper.GetInt("WHATSAPP_TIMEOUT_SECONDS")) * time.Second,
			Enabled:  viper.GetBool("WHATSAPP_ENABLED"),
		},
		Notify: NotifyConfig{
			MaxAttempts: viper.GetInt("NOTIFY_MAX_ATTEMPTS"),
			RetryDelay:  time.Duration(viper.GetInt("NOTIFY_RETRY_DELAY_SECONDS")) * time.Second,
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
