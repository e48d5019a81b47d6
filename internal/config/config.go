package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int    `env:"DB_MAX_CONNS" envDefault:"10"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Webhook Config (оповещения о новых очагах)
	WebhookURL         string        `env:"WEBHOOK_URL"`
	WebhookSecret      string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout     time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries  int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay   time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`
	AlertMinConfidence int           `env:"ALERT_MIN_CONFIDENCE" envDefault:"80"`

	// Prediction Config
	PredictionCacheTTL time.Duration `env:"PREDICTION_CACHE_TTL" envDefault:"15m"`

	// Спутниковый фид
	Firms FirmsConfig

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// FirmsConfig - настройки клиента FIRMS. Передаётся в клиент явно при создании.
type FirmsConfig struct {
	BaseURL    string        `env:"FIRMS_BASE_URL" envDefault:"https://firms.modaps.eosdis.nasa.gov/mapserver/wfs/South_Asia"`
	MapKey     string        `env:"FIRMS_MAP_KEY"`
	Timeout    time.Duration `env:"FIRMS_TIMEOUT" envDefault:"30s"`
	MaxRetries int           `env:"FIRMS_MAX_RETRIES" envDefault:"4"`
	BaseDelay  time.Duration `env:"FIRMS_BASE_DELAY" envDefault:"1s"`
	MaxDelay   time.Duration `env:"FIRMS_MAX_DELAY" envDefault:"30s"`
	FetchCount int           `env:"FIRMS_FETCH_COUNT" envDefault:"5000"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMaxConns:         getEnvAsInt("DB_MAX_CONNS", 10),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		WebhookURL:         os.Getenv("WEBHOOK_URL"),
		WebhookSecret:      os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:     getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:  getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:   getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		AlertMinConfidence: getEnvAsInt("ALERT_MIN_CONFIDENCE", 80),
		PredictionCacheTTL: getEnvAsDuration("PREDICTION_CACHE_TTL", 15*time.Minute),
		Firms: FirmsConfig{
			BaseURL:    getEnv("FIRMS_BASE_URL", "https://firms.modaps.eosdis.nasa.gov/mapserver/wfs/South_Asia"),
			MapKey:     os.Getenv("FIRMS_MAP_KEY"),
			Timeout:    getEnvAsDuration("FIRMS_TIMEOUT", 30*time.Second),
			MaxRetries: getEnvAsInt("FIRMS_MAX_RETRIES", 4),
			BaseDelay:  getEnvAsDuration("FIRMS_BASE_DELAY", time.Second),
			MaxDelay:   getEnvAsDuration("FIRMS_MAX_DELAY", 30*time.Second),
			FetchCount: getEnvAsInt("FIRMS_FETCH_COUNT", 5000),
		},
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.Firms.MaxRetries < 1 {
		return nil, fmt.Errorf("FIRMS_MAX_RETRIES must be at least 1")
	}
	if cfg.AlertMinConfidence < 0 || cfg.AlertMinConfidence > 100 {
		return nil, fmt.Errorf("ALERT_MIN_CONFIDENCE must be within 0-100")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
